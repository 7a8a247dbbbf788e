package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepository struct {
	active []*order.Order
	byID   map[string]*order.Order
}

func (r *stubOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in stub")
}
func (r *stubOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in stub")
}
func (r *stubOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if aggregate, ok := r.byID[id.String()]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}
func (r *stubOrderRepository) GetActiveForKitchen(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in stub")
}
func (r *stubOrderRepository) GetActiveForDelivery(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in stub")
}
func (r *stubOrderRepository) GetByCustomer(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in stub")
}
func (r *stubOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return r.active, nil
}

type stubUoW struct{ repo *stubOrderRepository }

func (u *stubUoW) Begin(_ context.Context) error          { return nil }
func (u *stubUoW) Commit(_ context.Context) error         { return nil }
func (u *stubUoW) Rollback(_ context.Context) error       { return nil }
func (u *stubUoW) OrderRepository() ports.OrderRepository { return u.repo }

type stubUoWFactory struct{ uow *stubUoW }

func (f *stubUoWFactory) Create() commands.OrderUoW { return f.uow }

type recordingPublisher struct {
	events []ports.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) {
	p.events = append(p.events, event)
}

func newRefreshJob(repo *stubOrderRepository, publisher *recordingPublisher) *BoardRefreshJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := &stubUoWFactory{uow: &stubUoW{repo: repo}}
	return NewBoardRefreshJob(factory, publisher, logger)
}

func activePickupOrder(t *testing.T) *order.Order {
	t.Helper()

	contact, err := order.NewGuestContact("Awa Diop", "+221771234567", "")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Thiakry", 800, 2)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), order.Pickup, order.Cash, contact, nil,
		[]order.LineItem{item}, 0, "123456", nil,
	)
	require.NoError(t, err)
	return aggregate
}

func eventOrderIDs(events []ports.OrderEvent) []string {
	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.Order.ID().String()
	}
	return ids
}

func TestBoardRefreshJob_RepublishesActiveOrders(t *testing.T) {
	first := activePickupOrder(t)
	second := activePickupOrder(t)
	repo := &stubOrderRepository{active: []*order.Order{first, second}}
	publisher := &recordingPublisher{}
	job := newRefreshJob(repo, publisher)

	require.NoError(t, job.refresh(t.Context()))

	require.Len(t, publisher.events, 2)
	for _, event := range publisher.events {
		assert.Equal(t, ports.OrderRefreshed, event.Kind)
	}
	assert.ElementsMatch(t,
		[]string{first.ID().String(), second.ID().String()},
		eventOrderIDs(publisher.events),
	)
}

func TestBoardRefreshJob_RepublishesSettledOrdersOnce(t *testing.T) {
	aggregate := activePickupOrder(t)
	repo := &stubOrderRepository{
		active: []*order.Order{aggregate},
		byID:   map[string]*order.Order{aggregate.ID().String(): aggregate},
	}
	publisher := &recordingPublisher{}
	job := newRefreshJob(repo, publisher)

	require.NoError(t, job.refresh(t.Context()))
	require.Len(t, publisher.events, 1)

	// The order completes between cycles; its final live event may have been
	// dropped, so the next cycle must carry the terminal state once more.
	for _, target := range []order.Status{order.Confirmed, order.Preparing, order.Ready, order.Delivered} {
		require.NoError(t, aggregate.TransitionTo(target, staff.Owner))
	}
	repo.active = nil

	require.NoError(t, job.refresh(t.Context()))
	require.Len(t, publisher.events, 2)
	settled := publisher.events[1]
	assert.Equal(t, ports.OrderRefreshed, settled.Kind)
	assert.True(t, settled.Order.ID().IsEqual(aggregate.ID()))
	assert.Equal(t, order.Delivered, settled.Order.Status())

	// Settled once, gone for good: the third cycle is silent.
	require.NoError(t, job.refresh(t.Context()))
	assert.Len(t, publisher.events, 2)
}

func TestBoardRefreshJob_SkipsSettledOrderItCannotLoad(t *testing.T) {
	aggregate := activePickupOrder(t)
	repo := &stubOrderRepository{active: []*order.Order{aggregate}}
	publisher := &recordingPublisher{}
	job := newRefreshJob(repo, publisher)

	require.NoError(t, job.refresh(t.Context()))
	repo.active = nil

	// byID is empty, so the settled order cannot be reloaded; the cycle
	// still succeeds and simply moves on.
	require.NoError(t, job.refresh(t.Context()))
	assert.Len(t, publisher.events, 1)
}
