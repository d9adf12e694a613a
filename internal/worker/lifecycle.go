package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	service "github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
	"github.com/Silvador/romanian-forest-auction-sub000/pkg/contextx"
)

// TypeLifecycleTick is the periodic task driving the auction state machine.
// Scheduling is at-least-once: redundant or overlapping ticks are harmless
// because every transition is an idempotent conditional write.
const TypeLifecycleTick = "auction:lifecycle:tick"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// NewLifecycleTickTask builds the task enqueued by the scheduler.
func NewLifecycleTickTask() *asynq.Task {
	return asynq.NewTask(TypeLifecycleTick, nil)
}

type LifecycleWorker struct {
	auctionService *service.AuctionService
}

func NewLifecycleWorker(auctionService *service.AuctionService) *LifecycleWorker {
	return &LifecycleWorker{auctionService: auctionService}
}

// HandleLifecycleTick runs one scan over due auctions.
func (w *LifecycleWorker) HandleLifecycleTick(ctx context.Context, _ *asynq.Task) error {
	transitions, err := w.auctionService.TickLifecycle(ctx)
	if err != nil {
		return fmt.Errorf("auctionService.TickLifecycle: %w", err)
	}

	if len(transitions) > 0 {
		logger(ctx).Info("lifecycle tick applied transitions", "count", len(transitions))
	}

	return nil
}
