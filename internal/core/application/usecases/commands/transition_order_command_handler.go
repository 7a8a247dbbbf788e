package commands

import (
	"context"
	"time"

	"restaurant/internal/core/ports"
)

// TransitionOrderCommandHandler handles the business logic for status changes.
// Loads the order, applies the transition through the aggregate's rules, and
// persists the result with an optimistic concurrency check.
//
// Concurrency: two actors racing on the same order both load the same version;
// the second write fails with errs.ErrConcurrentModification and surfaces to
// the caller as a conflict to retry against fresh state. Nothing is silently
// lost.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Confirmed, staff.Cook)
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // rejected by the state machine or role rules
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // lost the race, reload and retry
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order status transitions.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for live sync.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status transition command.
// The transition rules (reachability, delivery-type forks, role authorization)
// live entirely in the Order aggregate; the handler contributes transaction
// scope, the concurrency check via the repository, and post-commit publication.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor()); err != nil {
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
		Kind:       ports.OrderStatusChanged,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
