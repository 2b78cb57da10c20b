package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rookgm/orderfeed/internal/feed"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"time"
)

// max accepted response body
const maxBodySize = 32 << 20

// TokenSource provides backend admin token
type TokenSource interface {
	Token() (string, error)
}

// Client represents HTTP client for backend order endpoints
type Client struct {
	client  *http.Client
	baseURL string
	tokens  TokenSource
}

// NewClient creates new Client instance
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		tokens:  tokens,
	}
}

// FetchSnapshot returns full order list
// 200 — успешная обработка запроса.
// 401, 403 — токен недействителен.
// 408, 429, 5xx — временная ошибка, запрос можно повторить.
func (c *Client) FetchSnapshot(ctx context.Context) ([]models.Order, error) {
	// GET /orders
	u, err := url.JoinPath(c.baseURL, "orders")
	if err != nil {
		return nil, models.NewFetchError(models.KindMalformed, 0, err)
	}

	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, models.NewFetchError(models.KindTransient, resp.StatusCode, err)
	}

	orders, err := decodeOrders(body)
	if err != nil {
		return nil, models.NewFetchError(models.KindMalformed, resp.StatusCode, err)
	}

	logger.Log.Debug("snapshot fetched", zap.Int("orders", len(orders)))

	return orders, nil
}

type updateStatusRequest struct {
	Status models.Status `json:"status"`
}

// UpdateStatus changes order status on backend
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if id == "" {
		return models.ErrInvalidOrderID
	}
	if !status.Known() {
		return models.ErrInvalidStatus
	}

	// PUT /orders/{id}/status
	u, err := url.JoinPath(c.baseURL, "orders", url.PathEscape(id), "status")
	if err != nil {
		return models.NewFetchError(models.KindMalformed, 0, err)
	}

	body, err := json.Marshal(updateStatusRequest{Status: status})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPut, u, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	logger.Log.Info("order status updated", zap.String("id", id), zap.String("status", string(status)))

	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, models.NewFetchError(models.KindUnauthorized, 0, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, models.NewFetchError(models.KindMalformed, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, models.NewFetchError(models.KindTransient, 0, err)
	}

	return resp, nil
}

func statusError(resp *http.Response) error {
	// drain a little of the body for the log
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("%s %s: %s", resp.Request.Method, resp.Request.URL.Path, bytes.TrimSpace(msg))

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return models.NewFetchError(models.KindUnauthorized, resp.StatusCode, err)
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		return models.NewFetchError(models.KindTransient, resp.StatusCode, err)
	default:
		return models.NewFetchError(models.KindMalformed, resp.StatusCode, err)
	}
}

// decodeOrders accepts a JSON array or an object wrapping it under "orders" or "data"
func decodeOrders(body []byte) ([]models.Order, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty response body")
	}

	var items []json.RawMessage
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, err
		}
		list, ok := wrapper["orders"]
		if !ok {
			list, ok = wrapper["data"]
		}
		if !ok {
			return nil, errors.New("response object has no orders list")
		}
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("response is not a JSON array or object")
	}

	orders := make([]models.Order, 0, len(items))
	for i, item := range items {
		order, err := feed.Normalize(item)
		if err != nil {
			return nil, fmt.Errorf("order #%d: %w", i, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}
