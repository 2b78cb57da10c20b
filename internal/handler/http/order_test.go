package handler

import (
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/orderfeed/internal/handler/http/mocks"
	"github.com/rookgm/orderfeed/internal/models"
	"github.com/rookgm/orderfeed/internal/push"
	"github.com/rookgm/orderfeed/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type handlerMocks struct {
	svc           *mocks.MockFeedService
	subscription  *mocks.MockSubscriptionState
	tokens        *mocks.MockTokenStore
	notifications *mocks.MockNotificationLister
}

func newHandlerMocks(t *testing.T) handlerMocks {
	ctrl := gomock.NewController(t)
	return handlerMocks{
		svc:           mocks.NewMockFeedService(ctrl),
		subscription:  mocks.NewMockSubscriptionState(ctrl),
		tokens:        mocks.NewMockTokenStore(ctrl),
		notifications: mocks.NewMockNotificationLister(ctrl),
	}
}

// serve routes request through chi so URL params are resolved
func serve(t *testing.T, oh *OrderHandler, method, target, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		t.Fatal("cannot create request", zap.Error(err))
	}

	router := chi.NewRouter()
	oh.Routes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w.Result()
}

func testOrders() []models.Order {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []models.Order{
		{
			ID:        "a1",
			Status:    models.StatusPending,
			CreatedAt: createdAt,
			Fields:    map[string]json.RawMessage{"amount": json.RawMessage(`120`)},
		},
		{
			ID:        "b2",
			Status:    models.StatusDelivered,
			CreatedAt: createdAt.Add(-time.Hour),
		},
	}
}

func decodeIDs(t *testing.T, body []byte) []string {
	t.Helper()

	var got []map[string]any
	require.NoError(t, json.Unmarshal(body, &got))

	ids := make([]string, 0, len(got))
	for _, o := range got {
		id, _ := o["id"].(string)
		ids = append(ids, id)
	}
	return ids
}

func TestOrderHandler_ListOrders(t *testing.T) {
	tests := []struct {
		name           string
		view           []models.Order
		wantStatusCode int
		wantIDs        []string
	}{
		{
			// 200 — успешная обработка запроса.
			name:           "orders_return_200",
			view:           testOrders(),
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{"a1", "b2"},
		},
		{
			name:           "empty_view_return_200",
			view:           []models.Order{},
			wantStatusCode: http.StatusOK,
			wantIDs:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			m.svc.EXPECT().View().Return(tt.view).Times(1)

			res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodGet, "/api/orders", "")
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantIDs, decodeIDs(t, body)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderHandler_ListOrdersKeepsPayload(t *testing.T) {
	m := newHandlerMocks(t)
	m.svc.EXPECT().View().Return(testOrders()[:1])

	res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodGet, "/api/orders", "")
	defer res.Body.Close()

	var got []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)

	want := map[string]any{
		"id":        "a1",
		"status":    "Pending",
		"createdAt": "2024-05-01T10:00:00Z",
		"amount":    float64(120),
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderHandler_RefreshOrders(t *testing.T) {
	tests := []struct {
		name           string
		view           []models.Order
		err            error
		wantStatusCode int
		wantKind       string
	}{
		{
			// 200 — снимок применён.
			name:           "refresh_return_200",
			view:           testOrders(),
			wantStatusCode: http.StatusOK,
		},
		{
			// 401 — токен бэкенда недействителен.
			name:           "unauthorized_return_401",
			err:            models.NewFetchError(models.KindUnauthorized, http.StatusUnauthorized, errors.New("denied")),
			wantStatusCode: http.StatusUnauthorized,
			wantKind:       "unauthorized",
		},
		{
			name:           "missing_token_return_401",
			err:            models.ErrUnauthorized,
			wantStatusCode: http.StatusUnauthorized,
			wantKind:       "unauthorized",
		},
		{
			// 502 — бэкенд недоступен.
			name:           "transient_return_502",
			err:            models.NewFetchError(models.KindTransient, http.StatusServiceUnavailable, errors.New("down")),
			wantStatusCode: http.StatusBadGateway,
			wantKind:       "transient",
		},
		{
			name:           "malformed_return_502",
			err:            models.NewFetchError(models.KindMalformed, http.StatusOK, errors.New("not json")),
			wantStatusCode: http.StatusBadGateway,
			wantKind:       "malformed",
		},
		{
			// 409 — результат вытеснен более новым запросом.
			name:           "stale_return_409",
			err:            models.ErrStaleSnapshot,
			wantStatusCode: http.StatusConflict,
		},
		{
			// 500 — внутренняя ошибка сервера.
			name:           "internal_error_return_500",
			err:            errors.New("boom"),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			m.svc.EXPECT().Refresh(gomock.Any()).Return(tt.view, tt.err).Times(1)

			res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodPost, "/api/orders/refresh", "")
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.err == nil {
				assert.Equal(t, []string{"a1", "b2"}, decodeIDs(t, body))
				return
			}

			var got errorResp
			require.NoError(t, json.Unmarshal(body, &got))
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		setup          func(m handlerMocks)
		wantStatusCode int
	}{
		{
			// 204 — статус изменён.
			name:   "valid_request_return_204",
			target: "/api/orders/a1/status",
			body:   `{"status":"out for delivery"}`,
			setup: func(m handlerMocks) {
				m.svc.EXPECT().UpdateStatus(gomock.Any(), "a1", models.StatusOutForDelivery).Return(nil).Times(1)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:   "escaped_id_return_204",
			target: "/api/orders/a%20b/status",
			body:   `{"status":"Delivered"}`,
			setup: func(m handlerMocks) {
				m.svc.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusDelivered).Return(nil).Times(1)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			// 400 — неверный формат запроса.
			name:           "bad_json_return_400",
			target:         "/api/orders/a1/status",
			body:           `{"status":`,
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown_status_return_400",
			target:         "/api/orders/a1/status",
			body:           `{"status":"cancelled"}`,
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "empty_status_return_400",
			target:         "/api/orders/a1/status",
			body:           `{}`,
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "unauthorized_return_401",
			target: "/api/orders/a1/status",
			body:   `{"status":"Delivered"}`,
			setup: func(m handlerMocks) {
				m.svc.EXPECT().UpdateStatus(gomock.Any(), "a1", models.StatusDelivered).
					Return(models.NewFetchError(models.KindUnauthorized, http.StatusForbidden, errors.New("denied"))).Times(1)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "backend_down_return_502",
			target: "/api/orders/a1/status",
			body:   `{"status":"Delivered"}`,
			setup: func(m handlerMocks) {
				m.svc.EXPECT().UpdateStatus(gomock.Any(), "a1", models.StatusDelivered).
					Return(models.NewFetchError(models.KindTransient, 0, errors.New("refused"))).Times(1)
			},
			wantStatusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			tt.setup(m)

			res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodPut, tt.target, tt.body)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_FeedStatus(t *testing.T) {
	m := newHandlerMocks(t)

	lastRefresh := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m.subscription.EXPECT().State().Return(push.StateConnected).Times(1)
	m.svc.EXPECT().Stats().Return(service.Stats{
		LastRefresh: lastRefresh,
		Refreshes:   3,
		Inserted:    2,
		Ignored:     1,
		Orders:      5,
	}).Times(1)

	res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodGet, "/api/feed", "")
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var got feedStatusResp
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))

	want := feedStatusResp{
		State: "connected",
		Stats: service.Stats{
			LastRefresh: lastRefresh,
			Refreshes:   3,
			Inserted:    2,
			Ignored:     1,
			Orders:      5,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderHandler_SetToken(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(m handlerMocks)
		wantStatusCode int
	}{
		{
			name: "valid_token_return_204",
			body: `{"token":" abc.def.ghi "}`,
			setup: func(m handlerMocks) {
				m.tokens.EXPECT().Set("abc.def.ghi").Times(1)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:           "empty_token_return_400",
			body:           `{"token":"  "}`,
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "bad_json_return_400",
			body:           `token`,
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			tt.setup(m)

			res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodPut, "/api/session/token", tt.body)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestOrderHandler_ListNotifications(t *testing.T) {
	orderID := "a1"
	notifiedAt := time.Date(2024, 5, 1, 10, 0, 1, 0, time.UTC)
	list := []models.Notification{
		{
			ID:         1,
			OrderID:    &orderID,
			Status:     models.StatusPending,
			CreatedAt:  notifiedAt.Add(-time.Second),
			NotifiedAt: notifiedAt,
			Payload:    json.RawMessage(`{"id":"a1"}`),
		},
	}

	tests := []struct {
		name           string
		target         string
		setup          func(m handlerMocks)
		wantStatusCode int
		wantLen        int
	}{
		{
			name:   "default_limit_return_200",
			target: "/api/notifications",
			setup: func(m handlerMocks) {
				m.notifications.EXPECT().ListNotifications(gomock.Any(), 0).Return(list, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
			wantLen:        1,
		},
		{
			name:   "limit_return_200",
			target: "/api/notifications?limit=10",
			setup: func(m handlerMocks) {
				m.notifications.EXPECT().ListNotifications(gomock.Any(), 10).Return(list, nil).Times(1)
			},
			wantStatusCode: http.StatusOK,
			wantLen:        1,
		},
		{
			name:           "bad_limit_return_400",
			target:         "/api/notifications?limit=-1",
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "not_number_limit_return_400",
			target:         "/api/notifications?limit=ten",
			setup:          func(m handlerMocks) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "db_down_return_502",
			target: "/api/notifications",
			setup: func(m handlerMocks) {
				m.notifications.EXPECT().ListNotifications(gomock.Any(), 0).Return(nil, models.ErrTransient).Times(1)
			},
			wantStatusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			tt.setup(m)

			res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, m.notifications), http.MethodGet, tt.target, "")
			defer res.Body.Close()

			require.Equal(t, tt.wantStatusCode, res.StatusCode)
			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var got []models.Notification
			require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestOrderHandler_ListNotificationsDisabled(t *testing.T) {
	m := newHandlerMocks(t)

	res := serve(t, NewOrderHandler(m.svc, m.subscription, m.tokens, nil), http.MethodGet, "/api/notifications", "")
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
