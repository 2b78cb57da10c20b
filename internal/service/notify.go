package service

import (
	"context"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"go.uber.org/zap"
)

// LogNotifier logs new orders
type LogNotifier struct{}

func (LogNotifier) NewOrder(_ context.Context, order models.Order) error {
	logger.Log.Info("new order",
		zap.String("id", order.ID),
		zap.String("status", string(order.Status)),
		zap.Time("created_at", order.CreatedAt))
	return nil
}

// NotificationRepository stores new order notifications
type NotificationRepository interface {
	SaveNotification(ctx context.Context, order models.Order) error
}

// JournalNotifier writes new orders to notification journal
type JournalNotifier struct {
	repo NotificationRepository
}

// NewJournalNotifier creates new JournalNotifier instance
func NewJournalNotifier(repo NotificationRepository) *JournalNotifier {
	return &JournalNotifier{repo: repo}
}

func (jn *JournalNotifier) NewOrder(ctx context.Context, order models.Order) error {
	return jn.repo.SaveNotification(ctx, order)
}
