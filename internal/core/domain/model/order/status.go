package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct kitchen and delivery workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──┬──> Delivering ──> Delivered   (delivery orders)
//	   │            │             │                 └──> Delivered                  (pickup orders)
//	   └────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no outgoing transitions exist.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status when an order is first placed.
	// Orders in this status are waiting for staff to confirm them with the customer.
	Pending

	// Confirmed indicates staff has verbally confirmed the order with the customer.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order is packed and waiting for handover:
	// to a courier for delivery orders, or to the customer for pickup orders.
	Ready

	// Delivering indicates a courier is on the way with the order.
	// Only delivery orders pass through this status.
	Delivering

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before completion.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Confirmed:     "Confirmed",
		Preparing:     "Preparing",
		Ready:         "Ready",
		Delivering:    "Delivering",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Preparing:  "Preparing",
		Ready:      "Ready",
		Delivering: "Delivering",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// StatusFromString parses a status from its string representation.
// Parsing accepts the exact names returned by String and fails for anything else,
// including "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// UnknownStatus (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no outgoing transitions.
// Delivered and Cancelled orders can never change status again.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the state machine allows moving from this
// status to target for an order of the given delivery type.
//
// The forward path is strictly sequential; Cancelled is reachable from
// Pending, Confirmed, and Preparing only. Ready forks on delivery type:
// delivery orders go out through Delivering, pickup orders are handed
// over directly as Delivered.
func (s Status) CanTransitionTo(target Status, deliveryType DeliveryType) bool {
	if s.IsTerminal() {
		return false
	}

	switch target {
	case Confirmed:
		return s == Pending
	case Preparing:
		return s == Confirmed
	case Ready:
		return s == Preparing
	case Delivering:
		return s == Ready && deliveryType == Delivery
	case Delivered:
		if s == Delivering {
			return true
		}
		return s == Ready && deliveryType == Pickup
	case Cancelled:
		return s == Pending || s == Confirmed || s == Preparing
	case UnknownStatus, Pending:
		return false
	default:
		return false
	}
}
