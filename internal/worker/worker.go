package worker

import (
	"context"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/push"
	"go.uber.org/zap"
	"time"
)

type FeedService interface {
	Refresh(ctx context.Context) ([]models.Order, error)
	ConsumePush(ctx context.Context, msgs <-chan push.Message)
}

// FeedProcessor is worker keeps the working set in sync with backend
type FeedProcessor struct {
	svc      FeedService
	msgs     <-chan push.Message
	interval time.Duration
}

// NewFeedProcessor create new feed processor
func NewFeedProcessor(svc FeedService, msgs <-chan push.Message, interval time.Duration) *FeedProcessor {
	return &FeedProcessor{svc: svc, msgs: msgs, interval: interval}
}

// Run consumes pushed orders and refreshes snapshot periodically until ctx is done
func (fp *FeedProcessor) Run(ctx context.Context) {
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		fp.svc.ConsumePush(ctx, fp.msgs)
	}()

	fp.refresh(ctx)

	ticker := time.NewTicker(fp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			<-consumed
			logger.Log.Debug("feed processor is done")
			return
		case <-ticker.C:
			fp.refresh(ctx)
		}
	}
}

func (fp *FeedProcessor) refresh(ctx context.Context) {
	if _, err := fp.svc.Refresh(ctx); err != nil && ctx.Err() == nil {
		// transient failures are retried on the next tick
		logger.Log.Error("error refresh orders", zap.Error(err), zap.String("kind", models.KindOf(err).String()))
	}
}
