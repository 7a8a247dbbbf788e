package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not created
// through the NewLineItem factory method.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem records one menu item inside an order: which item, how many,
// and the unit price at the moment the order was placed.
//
// The price is a snapshot taken from the menu catalog at creation time,
// never a live reference. Later menu price changes must not retroactively
// alter historical orders, so a LineItem is immutable after construction.
type LineItem struct { //nolint:recvcheck //using for validation
	// menuItemID references the menu catalog entry this line was priced from
	menuItemID kernel.UUID

	// name is the menu item name snapshotted for display on dashboards
	name string

	// unitPrice is the price per unit in currency units at order time
	unitPrice int64

	// quantity is the ordered count (always >= 1)
	quantity int

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item with a price snapshot.
// The menu item ID must be valid, the name non-empty, the unit price
// non-negative, and the quantity at least 1.
func NewLineItem(menuItemID kernel.UUID, name string, unitPrice int64, quantity int) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the LineItem instance was properly constructed through NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// MenuItemID returns the referenced menu catalog entry.
func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the menu item name snapshotted at order time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price snapshotted at order time.
func (i LineItem) UnitPrice() int64 {
	return i.unitPrice
}

// Quantity returns the ordered count.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Subtotal returns unit price times quantity.
func (i LineItem) Subtotal() int64 {
	return i.unitPrice * int64(i.quantity)
}

func (i *LineItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
