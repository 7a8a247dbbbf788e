package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// OrderChangeKind classifies what happened to an order in a change event.
type OrderChangeKind int

const (
	// UnknownChange represents an invalid or undefined change kind.
	UnknownChange OrderChangeKind = iota

	// OrderCreated announces a freshly placed order.
	OrderCreated

	// OrderStatusChanged announces a fulfillment status transition.
	OrderStatusChanged

	// OrderPaymentChanged announces a payment status change.
	OrderPaymentChanged

	// OrderRefreshed announces a poll-driven re-publication of current state.
	// Consumers treat it like any other event: an idempotent upsert.
	OrderRefreshed
)

// String returns the human-readable name of the change kind.
func (k OrderChangeKind) String() string {
	switch k {
	case OrderCreated:
		return "Created"
	case OrderStatusChanged:
		return "StatusChanged"
	case OrderPaymentChanged:
		return "PaymentChanged"
	case OrderRefreshed:
		return "Refreshed"
	case UnknownChange:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// OrderEvent is a change notification for a single order.
//
// Events carry the full current state of the order, not a delta: the same
// change may reach a consumer twice (once from the live stream, once from
// the polling backstop), so consumers must apply events as idempotent
// upserts keyed by order id.
type OrderEvent struct {
	Order      *order.Order
	Kind       OrderChangeKind
	OccurredAt time.Time
}

// OrderEventFilter selects which orders a subscriber cares about.
// Filters are predicates over order fields, e.g. kitchen boards match
// statuses Pending through Ready, courier boards match delivery orders
// in Ready or Delivering, customer views match a customer id.
type OrderEventFilter func(*order.Order) bool

// OrderSubscription is a live feed of order-change events matching a filter.
// The feed is lazy and unbounded until cancelled.
type OrderSubscription interface {
	// Events returns the channel the subscription delivers on.
	// The channel is closed after Cancel.
	Events() <-chan OrderEvent

	// Cancel detaches the subscription and closes the event channel.
	// Safe to call more than once.
	Cancel()
}

// OrderEventPublisher is the engine-facing side of the live sync contract.
// Publish is called after every durable write, never before: no event may
// announce a write that did not commit.
type OrderEventPublisher interface {
	// Publish delivers the event to current subscribers on a best-effort
	// basis. It never blocks the triggering write; events for slow or
	// absent subscribers are dropped, because the polling backstop covers
	// that gap. Delivery is at-least-once over the combined stream+poll
	// contract, not over Publish alone.
	Publish(ctx context.Context, event OrderEvent)
}

// OrderEventBroker is the full live sync contract: the engine publishes,
// role-scoped dashboards subscribe.
type OrderEventBroker interface {
	OrderEventPublisher

	// Subscribe registers a filtered subscription and returns its handle.
	// The subscriber must also poll the order store on a fixed interval as
	// a correctness backstop; the subscription alone is best-effort.
	Subscribe(filter OrderEventFilter) OrderSubscription
}
