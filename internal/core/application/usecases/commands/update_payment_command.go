package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrUpdatePaymentCommandIsNotConstructed = errors.New(
	"UpdatePaymentCommand must be created via NewUpdatePaymentCommand constructor",
)

// UpdatePaymentCommand represents a payment-state report for an order:
// a confirmation from a payment collaborator for card and wave flows, or a
// staff-recorded settlement for cash handed over at the counter.
type UpdatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewUpdatePaymentCommand creates a command to record a payment-state change.
func NewUpdatePaymentCommand(
	orderID kernel.UUID,
	paymentStatus order.PaymentStatus,
) (UpdatePaymentCommand, error) {
	paymentCommand := UpdatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setPaymentStatus(paymentStatus),
	); err != nil {
		return UpdatePaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePaymentCommandIsNotConstructed if validation fails.
func (c UpdatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to update.
func (c UpdatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentStatus returns the reported payment state.
func (c UpdatePaymentCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

func (c *UpdatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdatePaymentCommand) setPaymentStatus(paymentStatus order.PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}

	c.paymentStatus = paymentStatus
	return nil
}
