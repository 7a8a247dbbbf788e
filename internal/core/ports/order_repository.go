// Package ports defines the contracts between the order lifecycle core and
// infrastructure. These interfaces establish boundaries for persistence and
// event delivery, enabling dependency inversion and testability.
package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The repository is the single source of truth for orders; every dashboard
// also polls it directly as the consistency backstop for missed events.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items as a
	// single atomic unit: both succeed or neither does. A failed write must
	// leave no partial state (order without items, or items without order)
	// visible to readers.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic concurrency check against the version the aggregate was
	// loaded with. If another writer committed in between, the update fails
	// with errs.ConcurrentModificationError and the caller must re-read and
	// retry or abort. Line items are immutable and are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// all line items. Returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveForKitchen retrieves orders the kitchen cares about:
	// status in {Pending, Confirmed, Preparing, Ready}.
	GetActiveForKitchen(ctx context.Context) ([]*order.Order, error)

	// GetActiveForDelivery retrieves delivery orders a courier cares about:
	// delivery type Delivery with status in {Ready, Delivering}.
	GetActiveForDelivery(ctx context.Context) ([]*order.Order, error)

	// GetByCustomer retrieves all orders placed by a registered customer,
	// newest first.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllActive retrieves every non-terminal order. Used by the admin
	// board and by the polling backstop.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
