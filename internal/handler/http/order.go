package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/rookgm/orderfeed/internal/feed"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/push"
	"github.com/rookgm/orderfeed/internal/service"
	"go.uber.org/zap"
	"net/http"
	"strconv"
	"strings"
)

//go:generate mockgen -source=order.go -destination=mocks/mock_order.go -package=mocks

type FeedService interface {
	// View returns current sorted orders
	View() []models.Order
	// Refresh fetches snapshot from backend
	Refresh(ctx context.Context) ([]models.Order, error)
	// UpdateStatus changes order status and resyncs
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	// Stats returns feed activity counters
	Stats() service.Stats
}

// SubscriptionState reports push subscription state
type SubscriptionState interface {
	State() push.State
}

// TokenStore keeps backend token
type TokenStore interface {
	Set(token string)
}

// NotificationLister lists journaled new order notifications
type NotificationLister interface {
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)
}

// OrderHandler represents HTTP handler for order feed requests
type OrderHandler struct {
	svc           FeedService
	subscription  SubscriptionState
	tokens        TokenStore
	notifications NotificationLister
}

// NewOrderHandler creates new OrderHandler instance.
// notifications may be nil when the journal is disabled.
func NewOrderHandler(svc FeedService, subscription SubscriptionState, tokens TokenStore, notifications NotificationLister) *OrderHandler {
	return &OrderHandler{
		svc:           svc,
		subscription:  subscription,
		tokens:        tokens,
		notifications: notifications,
	}
}

type errorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", zap.Error(err))
	}
}

// writeError maps feed errors to status codes
// 400 — неверный формат запроса;
// 401 — токен бэкенда недействителен, нужна повторная авторизация;
// 409 — результат вытеснен более новым запросом;
// 502 — бэкенд недоступен или вернул неожиданный ответ;
// 500 — внутренняя ошибка сервера.
func writeError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	switch {
	case errors.Is(err, models.ErrInvalidOrderID), errors.Is(err, models.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
	case kind == models.KindUnauthorized:
		writeJSON(w, http.StatusUnauthorized, errorResp{Error: "backend credentials rejected", Kind: kind.String()})
	case errors.Is(err, models.ErrStaleSnapshot):
		writeJSON(w, http.StatusConflict, errorResp{Error: err.Error()})
	case kind == models.KindTransient, kind == models.KindMalformed:
		writeJSON(w, http.StatusBadGateway, errorResp{Error: err.Error(), Kind: kind.String()})
	default:
		logger.Log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}

// ListOrders returns current working set
// 200 — успешная обработка запроса.
func (oh *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, oh.svc.View())
	}
}

// RefreshOrders fetches snapshot and returns new working set
func (oh *OrderHandler) RefreshOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := oh.svc.Refresh(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateOrderStatus changes order status
// 204 — статус изменён, заказы синхронизированы.
func (oh *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, models.ErrInvalidOrderID)
			return
		}

		var req updateStatusReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad request"})
			return
		}
		defer r.Body.Close()

		status := feed.ParseStatus(req.Status)
		if !status.Known() {
			writeError(w, models.ErrInvalidStatus)
			return
		}

		if err := oh.svc.UpdateStatus(r.Context(), id, status); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type feedStatusResp struct {
	State string        `json:"state"`
	Stats service.Stats `json:"stats"`
}

// FeedStatus returns subscription state and feed counters
func (oh *OrderHandler) FeedStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, feedStatusResp{
			State: oh.subscription.State().String(),
			Stats: oh.svc.Stats(),
		})
	}
}

type setTokenReq struct {
	Token string `json:"token"`
}

// SetToken replaces backend token after re-authentication
func (oh *OrderHandler) SetToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setTokenReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" {
			writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad request"})
			return
		}
		defer r.Body.Close()

		oh.tokens.Set(strings.TrimSpace(req.Token))
		logger.Log.Info("backend token replaced")

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListNotifications returns journaled new order notifications
// 404 — журнал не настроен.
func (oh *OrderHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if oh.notifications == nil {
			writeJSON(w, http.StatusNotFound, errorResp{Error: models.ErrNotConfigured.Error()})
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid limit"})
				return
			}
			limit = n
		}

		list, err := oh.notifications.ListNotifications(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// Routes registers order feed routes
func (oh *OrderHandler) Routes(router chi.Router) {
	router.Get("/api/orders", oh.ListOrders())
	router.Post("/api/orders/refresh", oh.RefreshOrders())
	router.Put("/api/orders/{id}/status", oh.UpdateOrderStatus())
	router.Get("/api/feed", oh.FeedStatus())
	router.Put("/api/session/token", oh.SetToken())
	router.Get("/api/notifications", oh.ListNotifications())
}
