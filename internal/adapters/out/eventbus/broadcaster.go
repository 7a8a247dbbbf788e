// Package eventbus provides an in-process implementation of the order event
// broker. Dashboards inside the same process subscribe with a filter and
// receive change events over a channel; the polling backstop covers anything
// this best-effort fan-out drops.
package eventbus

import (
	"context"
	"sync"

	"restaurant/internal/core/ports"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind than this starts losing events to the poll backstop.
const subscriberBuffer = 16

// Broadcaster fans order events out to filtered in-process subscribers.
// Publish never blocks: a full or slow subscriber channel drops the event
// rather than stalling the write path that triggered it.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[*subscription]struct{}
	closed      bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*subscription]struct{}),
	}
}

// Publish delivers the event to every subscriber whose filter matches.
// Delivery is best-effort and non-blocking.
func (b *Broadcaster) Publish(_ context.Context, event ports.OrderEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		if sub.filter != nil && !sub.filter(event.Order) {
			continue
		}

		select {
		case sub.events <- event:
		default:
			// Subscriber is not keeping up; the next poll cycle repairs it.
		}
	}
}

// Subscribe registers a filtered subscription. A nil filter matches everything.
func (b *Broadcaster) Subscribe(filter ports.OrderEventFilter) ports.OrderSubscription {
	sub := &subscription{
		broadcaster: b,
		filter:      filter,
		events:      make(chan ports.OrderEvent, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.events)
		return sub
	}

	b.subscribers[sub] = struct{}{}
	return sub
}

// Close detaches and closes every subscription. Subsequent Publish calls are
// no-ops and subsequent Subscribe calls return already-closed subscriptions.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for sub := range b.subscribers {
		close(sub.events)
		delete(b.subscribers, sub)
	}
}

type subscription struct {
	broadcaster *Broadcaster
	filter      ports.OrderEventFilter
	events      chan ports.OrderEvent
	cancelOnce  sync.Once
}

// Events returns the channel the subscription delivers on.
func (s *subscription) Events() <-chan ports.OrderEvent {
	return s.events
}

// Cancel detaches the subscription and closes its channel.
// Safe to call more than once and safe to race with Publish.
func (s *subscription) Cancel() {
	s.cancelOnce.Do(func() {
		b := s.broadcaster

		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.subscribers[s]; ok {
			delete(b.subscribers, s)
			close(s.events)
		}
	})
}
