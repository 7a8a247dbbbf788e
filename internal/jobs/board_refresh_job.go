package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// BoardRefreshJob periodically republishes every active order as a refresh
// event. Subscribers that missed a live event (dropped buffer, reconnect)
// converge on the current state within one cycle.
//
// Orders that left the active set since the previous cycle are republished
// once more in their terminal state, so a dropped Delivered or Cancelled
// event is repaired through the stream too, not only through the boards.
type BoardRefreshJob struct {
	uowFactory commands.OrderUoWFactory
	publisher  ports.OrderEventPublisher
	cron       *cron.Cron
	logger     *slog.Logger

	mu         sync.Mutex
	lastActive map[string]struct{}
}

// NewBoardRefreshJob creates a job that refreshes dashboard state every 10 seconds.
func NewBoardRefreshJob(
	uowFactory commands.OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *BoardRefreshJob {
	return &BoardRefreshJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "board_refresh_job"),
	}
}

// Start begins the board refresh job to run every 10 seconds.
func (j *BoardRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Board refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board refresh job started (running every 10 seconds)")
	return nil
}

// Stop stops the board refresh job.
func (j *BoardRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Board refresh job stopped")
}

func (j *BoardRefreshJob) refresh(ctx context.Context) error {
	uow := j.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	activeOrders, err := orderRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	current := make(map[string]struct{}, len(activeOrders))
	for _, activeOrder := range activeOrders {
		current[activeOrder.ID().String()] = struct{}{}
		j.publisher.Publish(ctx, ports.OrderEvent{
			Order:      activeOrder,
			Kind:       ports.OrderRefreshed,
			OccurredAt: now,
		})
	}

	j.mu.Lock()
	previous := j.lastActive
	j.lastActive = current
	j.mu.Unlock()

	// Orders active last cycle but absent now reached a terminal state;
	// republish their final state once in case the live event was dropped.
	for idText := range previous {
		if _, stillActive := current[idText]; stillActive {
			continue
		}

		id, idErr := kernel.UUIDFromString(idText)
		if idErr != nil {
			continue
		}

		settled, getErr := orderRepo.Get(ctx, id)
		if getErr != nil {
			j.logger.ErrorContext(ctx, "Board refresh job failed to load settled order",
				"order_id", idText, "error", getErr)
			continue
		}

		j.publisher.Publish(ctx, ports.OrderEvent{
			Order:      settled,
			Kind:       ports.OrderRefreshed,
			OccurredAt: now,
		})
	}

	return nil
}
