package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/jackc/pgerrcode"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/repository/postgres"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

const (
	insertNotificationQuery = `
						INSERT INTO order_notifications (order_id, status, created_at, payload)
						VALUES ($1, $2, $3, $4)
						ON CONFLICT (order_id) DO NOTHING
`
	selectNotificationsQuery = `
						SELECT id, order_id, status, created_at, notified_at, payload FROM order_notifications
						ORDER BY notified_at DESC, id DESC
						LIMIT $1
`
)

// NotificationRepository stores new order notifications
type NotificationRepository struct {
	db *postgres.DB
}

// NewNotificationRepository creates new NotificationRepository instance
func NewNotificationRepository(db *postgres.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// SaveNotification inserts notification once per order id
func (nr *NotificationRepository) SaveNotification(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}

	var orderID *string
	if order.HasID() {
		orderID = &order.ID
	}

	_, err = nr.db.Exec(ctx, insertNotificationQuery, orderID, string(order.Status), order.CreatedAt, payload)
	if err != nil {
		return nr.wrap(err)
	}

	return nil
}

// ListNotifications returns latest notifications, newest first
func (nr *NotificationRepository) ListNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := nr.db.Query(ctx, selectNotificationsQuery, limit)
	if err != nil {
		return nil, nr.wrap(err)
	}
	defer rows.Close()

	notifications := []models.Notification{}

	for rows.Next() {
		n := models.Notification{}
		var status string
		err = rows.Scan(&n.ID, &n.OrderID, &status, &n.CreatedAt, &n.NotifiedAt, &n.Payload)
		if err != nil {
			return nil, err
		}
		n.Status = models.Status(status)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, nr.wrap(err)
	}

	return notifications, nil
}

func (nr *NotificationRepository) wrap(err error) error {
	code := nr.db.ErrorCode(err)
	if pgerrcode.IsConnectionException(code) || code == pgerrcode.AdminShutdown {
		return fmt.Errorf("%w: %v", models.ErrTransient, err)
	}
	return fmt.Errorf("notification journal: %w", err)
}
