package order

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact instance was not created
// through one of its factory methods.
var ErrContactIsNotConstructed = errors.New(
	"Contact must be created via NewCustomerContact or NewGuestContact constructor")

// Contact captures who placed an order and how to reach them for fulfillment.
//
// An order carries either a registered customer reference or a guest snapshot,
// never both and never neither. The phone number is always collected, even for
// registered customers, because stored profile contact data may be stale.
// A Contact is immutable: an order is never mutated to change who placed it.
type Contact struct { //nolint:recvcheck //using for validation
	// customerID is the registered customer reference (nil for guest orders)
	customerID *kernel.UUID

	// name is the guest's name snapshot (empty for registered customers)
	name string

	// phone is the contact phone used for fulfillment confirmation
	phone string

	// address is the delivery address text (may be empty for pickup orders)
	address string

	guard guard.ConstructorGuard
}

// NewCustomerContact creates contact details for a registered customer.
// The phone is required even though the customer has a profile, because
// profile data may be stale at order time. The address may be empty for
// pickup orders; the Order constructor enforces its presence for delivery.
func NewCustomerContact(customerID kernel.UUID, phone string, address string) (Contact, error) {
	contact := Contact{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customerID.Validate(),
		contact.setPhone(phone),
	); err != nil {
		return Contact{}, err
	}

	contact.customerID = &customerID
	contact.address = address
	return contact, nil
}

// NewGuestContact creates snapshotted contact details for an order placed
// without an authenticated account. Name and phone are required.
func NewGuestContact(name string, phone string, address string) (Contact, error) {
	contact := Contact{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		contact.setName(name),
		contact.setPhone(phone),
	); err != nil {
		return Contact{}, err
	}

	contact.address = address
	return contact, nil
}

// Validate ensures the Contact instance was properly constructed.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// CustomerID returns the registered customer reference.
// Returns nil for guest orders.
func (c Contact) CustomerID() *kernel.UUID {
	return c.customerID
}

// IsGuest reports whether the order was placed without an authenticated account.
func (c Contact) IsGuest() bool {
	return c.customerID == nil
}

// Name returns the guest's snapshotted name. Empty for registered customers.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact phone used for fulfillment confirmation.
func (c Contact) Phone() string {
	return c.phone
}

// Address returns the delivery address text. Empty for pickup orders.
func (c Contact) Address() string {
	return c.address
}

func (c *Contact) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("guest name")
	}
	c.name = name
	return nil
}

func (c *Contact) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("contact phone")
	}
	c.phone = phone
	return nil
}
