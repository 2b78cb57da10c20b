package models

import (
	"encoding/json"
	"time"
)

// Pending — заказ создан и ожидает обработки;
// OutForDelivery — заказ передан курьеру;
// Delivered — заказ доставлен.
// Unknown — статус отсутствует или не распознан, сортируется после всех известных.

// Status is order status
type Status string

// order status
const (
	StatusPending        Status = "Pending"
	StatusOutForDelivery Status = "OutForDelivery"
	StatusDelivered      Status = "Delivered"
	StatusUnknown        Status = "Unknown"
)

// Priority returns sort priority of status, lower goes first
func (s Status) Priority() int {
	switch s {
	case StatusPending:
		return 0
	case StatusOutForDelivery, StatusDelivered:
		return 1
	default:
		return 2
	}
}

// Known reports whether status belongs to the closed enumeration
func (s Status) Known() bool {
	return s == StatusPending || s == StatusOutForDelivery || s == StatusDelivered
}

// Order is order entity
type Order struct {
	// ID is opaque order identity, empty when the payload carried none
	ID string
	// Status is normalized status
	Status Status
	// RawStatus is status as it came from the backend
	RawStatus string
	// CreatedAt is effective order timestamp, epoch when absent
	CreatedAt time.Time
	// Fields contains every key of the raw payload
	Fields map[string]json.RawMessage
}

// HasID reports whether order can be matched against other orders
func (o Order) HasID() bool {
	return o.ID != ""
}

// MarshalJSON writes raw payload with normalized id, status and createdAt
func (o Order) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(o.Fields)+3)
	for k, v := range o.Fields {
		out[k] = v
	}

	var err error
	if o.HasID() {
		if out["id"], err = json.Marshal(o.ID); err != nil {
			return nil, err
		}
	}
	if out["status"], err = json.Marshal(o.Status); err != nil {
		return nil, err
	}
	if out["createdAt"], err = json.Marshal(o.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

// InsertOutcome is result of single order ingestion
type InsertOutcome int

const (
	// Inserted means order was new and has been added
	Inserted InsertOutcome = iota + 1
	// Ignored means order with the same id already exists
	Ignored
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}
