package models

import (
	"encoding/json"
	"time"
)

// Notification is journal entry of order that entered working set from push
type Notification struct {
	ID         int64           `json:"id"`
	OrderID    *string         `json:"orderId"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	NotifiedAt time.Time       `json:"notifiedAt"`
	Payload    json.RawMessage `json:"payload"`
}
