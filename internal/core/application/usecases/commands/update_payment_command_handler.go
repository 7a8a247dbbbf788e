package commands

import (
	"context"
	"time"

	"restaurant/internal/core/ports"
)

// UpdatePaymentCommandHandler handles the business logic for payment-state
// changes. The payment axis is independent of fulfillment status: updating it
// never touches, and is never gated by, the order's lifecycle state.
type UpdatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewUpdatePaymentCommandHandler creates a handler for payment-state updates.
func NewUpdatePaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) UpdatePaymentCommandHandler {
	return UpdatePaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payment update command.
// Loads the order, records the new payment state, and persists it under the
// same optimistic concurrency check as status transitions.
func (h UpdatePaymentCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.SetPaymentStatus(cmd.PaymentStatus()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.OrderEvent{
		Order:      aggregate,
		Kind:       ports.OrderPaymentChanged,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
