package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// PaymentMethod records how the customer chose to pay.
// It is immutable after order creation. Cash orders keep their payment
// status pending until staff confirms collection out of band.
type PaymentMethod int

const (
	// UnknownPaymentMethod represents an invalid or undefined payment method.
	UnknownPaymentMethod PaymentMethod = iota

	// Cash is paid on handover; no automatic confirmation ever arrives.
	Cash

	// Card is paid through the card gateway collaborator.
	Card

	// Wave is paid through the Wave mobile-money collaborator.
	Wave
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "Unknown",
		Cash:                 "Cash",
		Card:                 "Card",
		Wave:                 "Wave",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // UnknownPaymentMethod is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Cash: "Cash",
		Card: "Card",
		Wave: "Wave",
	}
}

// PaymentMethodFromString parses a payment method from its string representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getValidPaymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatus tracks money collection for an order.
// It is an axis fully independent from Status: a cash order may reach
// Preparing or even Delivering while payment is still pending, because
// cash is collected on handover.
type PaymentStatus int

const (
	// UnknownPaymentStatus represents an invalid or undefined payment status.
	UnknownPaymentStatus PaymentStatus = iota

	// PaymentPending means no payment confirmation has arrived yet.
	// This is the initial value for every order.
	PaymentPending

	// PaymentConfirmed means the payment collaborator (or staff, for cash)
	// confirmed the money was collected.
	PaymentConfirmed

	// PaymentFailed means the payment collaborator reported a failed charge.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "Unknown",
		PaymentPending:       "Pending",
		PaymentConfirmed:     "Confirmed",
		PaymentFailed:        "Failed",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // UnknownPaymentStatus is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "Pending",
		PaymentConfirmed: "Confirmed",
		PaymentFailed:    "Failed",
	}
}

// PaymentStatusFromString parses a payment status from its string representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getValidPaymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
