package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// DeliveryType classifies how an order reaches the customer.
// It is immutable after order creation and determines both the tail of the
// status state machine and whether a delivery fee applies.
type DeliveryType int

const (
	// UnknownDeliveryType represents an invalid or undefined delivery type.
	UnknownDeliveryType DeliveryType = iota

	// Delivery means a courier brings the order to the customer's address.
	// Delivery orders carry a distance-based delivery fee.
	Delivery

	// Pickup means the customer collects the order at the restaurant
	// using their pickup code. Pickup orders never carry a delivery fee.
	Pickup
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		UnknownDeliveryType: "Unknown",
		Delivery:            "Delivery",
		Pickup:              "Pickup",
	}
}

func getValidDeliveryTypeStrings() map[DeliveryType]string {
	//nolint:exhaustive // UnknownDeliveryType is intentionally excluded as it's invalid
	return map[DeliveryType]string{
		Delivery: "Delivery",
		Pickup:   "Pickup",
	}
}

// DeliveryTypeFromString parses a delivery type from its string representation.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	for deliveryType, name := range getValidDeliveryTypeStrings() {
		if name == s {
			return deliveryType, nil
		}
	}
	return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
		"delivery type is invalid",
		fmt.Errorf("%q is not a valid delivery type", s),
	)
}

// Validate checks if the DeliveryType value is valid.
func (d DeliveryType) Validate() error {
	if _, ok := getValidDeliveryTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery type is invalid",
			fmt.Errorf("%d is not a valid delivery type", d),
		)
	}
	return nil
}

// String returns the human-readable name of the delivery type.
func (d DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[d]; ok {
		return str
	}
	return "Unknown"
}
