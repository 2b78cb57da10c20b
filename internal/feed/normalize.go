package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"github.com/araddon/dateparse"
	"github.com/rookgm/orderfeed/internal/models"
	"math"
	"strings"
	"time"
)

// ErrNotObject is returned when payload is not a JSON object
var ErrNotObject = errors.New("order payload is not a JSON object")

// Epoch is effective timestamp of orders without a usable date
var Epoch = time.Unix(0, 0).UTC()

// unix values at or above this are treated as milliseconds
const millisThreshold = 1e12

var statusReplacer = strings.NewReplacer(" ", "", "_", "", "-", "")

// Normalize turns raw REST or push payload into an Order.
// It fails only when raw is not a JSON object.
func Normalize(raw []byte) (models.Order, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Order{}, errors.Join(ErrNotObject, err)
	}
	if fields == nil {
		return models.Order{}, ErrNotObject
	}
	return NormalizeFields(fields), nil
}

// NormalizeFields builds an Order from already decoded object fields
func NormalizeFields(fields map[string]json.RawMessage) models.Order {
	order := models.Order{
		ID:        parseID(fields["id"]),
		CreatedAt: Epoch,
		Fields:    fields,
	}
	if order.ID == "" {
		order.ID = parseID(fields["_id"])
	}

	order.RawStatus = parseString(fields["status"])
	order.Status = ParseStatus(order.RawStatus)

	if ts, ok := parseTime(fields["createdAt"]); ok {
		order.CreatedAt = ts
	} else if ts, ok := parseTime(fields["date"]); ok {
		order.CreatedAt = ts
	}

	return order
}

// ParseStatus maps backend status spelling to Status
func ParseStatus(s string) models.Status {
	switch strings.ToLower(statusReplacer.Replace(strings.TrimSpace(s))) {
	case "pending":
		return models.StatusPending
	case "outfordelivery":
		return models.StatusOutForDelivery
	case "delivered":
		return models.StatusDelivered
	default:
		return models.StatusUnknown
	}
}

func decodeAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func parseID(raw json.RawMessage) string {
	switch v := decodeAny(raw).(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case map[string]any:
		// mongo extended json
		if oid, ok := v["$oid"].(string); ok {
			return strings.TrimSpace(oid)
		}
	}
	return ""
}

func parseString(raw json.RawMessage) string {
	if s, ok := decodeAny(raw).(string); ok {
		return s
	}
	return ""
}

func parseTime(raw json.RawMessage) (time.Time, bool) {
	switch v := decodeAny(raw).(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		// timestamps without zone are UTC
		if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return t.UTC(), true
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return fromUnix(f)
		}
	case map[string]any:
		// mongo extended json
		if d, ok := v["$date"]; ok {
			b, err := json.Marshal(d)
			if err == nil {
				return parseTime(b)
			}
		}
	}
	return time.Time{}, false
}

func fromUnix(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if math.Abs(f) >= millisThreshold {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}
