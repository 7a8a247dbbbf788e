// Package staff defines the acting roles recognized by the order lifecycle engine.
// A role is supplied by the authentication collaborator with every request;
// the engine trusts it and only decides what that role may do.
package staff

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Role represents the acting role behind an order mutation request.
// It is a value object consumed by the transition authorization rules;
// the engine never authenticates identities itself.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Client is a customer browsing the menu and placing orders.
	Client

	// Cook is a kitchen employee who confirms and prepares orders.
	Cook

	// Courier is a delivery employee who takes ready orders out and hands them over.
	Courier

	// GeneralEmployee is a front-of-house employee who can work both
	// kitchen-side transitions and pickup handover.
	GeneralEmployee

	// Owner is the restaurant owner with full staff capabilities.
	Owner

	// Admin is a platform administrator with full capabilities.
	Admin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:     "Unknown",
		Client:          "Client",
		Cook:            "Cook",
		Courier:         "Courier",
		GeneralEmployee: "GeneralEmployee",
		Owner:           "Owner",
		Admin:           "Admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Client:          "Client",
		Cook:            "Cook",
		Courier:         "Courier",
		GeneralEmployee: "GeneralEmployee",
		Owner:           "Owner",
		Admin:           "Admin",
	}
}

// RoleFromString parses a role from its string representation.
// Parsing is case-sensitive and accepts the exact names returned by String.
// Returns an error for unrecognized names.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
// UnknownRole (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the human-readable name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsKitchenStaff reports whether the role may work kitchen-side transitions
// (confirming orders and moving them through preparation).
func (r Role) IsKitchenStaff() bool {
	return r == Cook || r == GeneralEmployee || r == Owner || r == Admin
}

// IsStaff reports whether the role belongs to restaurant staff of any kind.
// Clients are not staff.
func (r Role) IsStaff() bool {
	return r.IsKitchenStaff() || r == Courier
}

// CanCancel reports whether the role may cancel a non-terminal order.
func (r Role) CanCancel() bool {
	return r == Cook || r == GeneralEmployee || r == Owner || r == Admin
}
