package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Derives the delivery fee and the pickup code server-side, persists the new
// order transactionally, and announces it to live subscribers after commit.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, locator, pricer, codes, publisher)
//	cmd, _ := NewPlaceOrderCommand(orderID, order.Pickup, order.Cash, contact, nil, items, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now Pending on the kitchen board
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locator    services.StoreLocator
	pricer     services.DeliveryPricer
	codes      services.PickupCodeGenerator
	publisher  ports.OrderEventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence, the pricing
// collaborators for fee derivation, and a publisher for live sync.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locator services.StoreLocator,
	pricer services.DeliveryPricer,
	codes services.PickupCodeGenerator,
	publisher ports.OrderEventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		pricer:     pricer,
		codes:      codes,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
//
// For delivery orders the fee is priced from the store closest to the
// destination; pickup orders carry no fee. The pickup code is derived from
// the order id, so the same order always gets the same code. The creation
// event is published only after the transaction commits: subscribers never
// see an order that did not make it to storage.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	deliveryFee, err := h.deliveryFee(cmd)
	if err != nil {
		return err
	}

	pickupCode, err := h.codes.Generate(cmd.OrderID())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.DeliveryType(),
		cmd.PaymentMethod(),
		cmd.Contact(),
		cmd.Destination(),
		cmd.Items(),
		deliveryFee,
		pickupCode,
		cmd.ScheduledFor(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.OrderEvent{
		Order:      newOrder,
		Kind:       ports.OrderCreated,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

func (h PlaceOrderCommandHandler) deliveryFee(cmd PlaceOrderCommand) (int64, error) {
	if cmd.DeliveryType() != order.Delivery {
		return 0, nil
	}

	store, err := h.locator.Closest(*cmd.Destination())
	if err != nil {
		return 0, err
	}

	return h.pricer.Fee(store.Location, *cmd.Destination())
}
