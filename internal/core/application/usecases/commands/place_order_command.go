package commands

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a request to place a new order.
// Carries everything the customer submitted at checkout: what to order,
// how it will be fulfilled, how it will be paid, and how to reach them.
//
// The delivery fee and the pickup code are NOT part of the command: both are
// derived server-side by the handler, so a client can never submit its own
// fee or code.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(
//	    orderID, order.Delivery, order.Cash, contact, &destination, items, nil,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, locator, pricer, codes, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	deliveryType  order.DeliveryType
	paymentMethod order.PaymentMethod
	contact       order.Contact
	destination   *kernel.GeoPoint
	items         []order.LineItem
	scheduledFor  *time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates the identifier, the enumerations, the contact, and that at least
// one line item is present; delivery orders must carry destination coordinates.
// Cross-field rules beyond that (address presence, schedule lead time) are
// enforced by the Order aggregate itself.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	deliveryType order.DeliveryType,
	paymentMethod order.PaymentMethod,
	contact order.Contact,
	destination *kernel.GeoPoint,
	items []order.LineItem,
	scheduledFor *time.Time,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrderID(orderID),
		placeCommand.setDeliveryType(deliveryType),
		placeCommand.setPaymentMethod(paymentMethod),
		placeCommand.setContact(contact),
		placeCommand.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	if err := placeCommand.setDestination(destination); err != nil {
		return PlaceOrderCommand{}, err
	}

	placeCommand.scheduledFor = scheduledFor
	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryType returns the requested fulfillment mode.
func (c PlaceOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// PaymentMethod returns how the customer chose to pay.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Contact returns who placed the order and how to reach them.
func (c PlaceOrderCommand) Contact() order.Contact {
	return c.contact
}

// Destination returns the delivery coordinates. Nil for pickup orders.
func (c PlaceOrderCommand) Destination() *kernel.GeoPoint {
	return c.destination
}

// Items returns the ordered line items.
func (c PlaceOrderCommand) Items() []order.LineItem {
	return c.items
}

// ScheduledFor returns the optional requested fulfillment time.
func (c PlaceOrderCommand) ScheduledFor() *time.Time {
	return c.scheduledFor
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *PlaceOrderCommand) setContact(contact order.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	c.contact = contact
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *PlaceOrderCommand) setDestination(destination *kernel.GeoPoint) error {
	if c.deliveryType == order.Delivery {
		if destination == nil {
			return errs.NewValueIsRequiredError("delivery destination")
		}
		if err := destination.Validate(); err != nil {
			return err
		}
	}

	c.destination = destination
	return nil
}
