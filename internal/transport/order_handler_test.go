package transport

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderRouter(t *testing.T) chi.Router {
	t.Helper()

	orders := repository.LoadOrders(filepath.Join(t.TempDir(), "orders.json"), zap.NewNop())

	router := chi.NewRouter()
	NewOrderHandler(service.NewOrderService(orders), zap.NewNop()).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router chi.Router, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderMinimal(t *testing.T) {
	router := newOrderRouter(t)
	before := time.Now().UTC()

	w := postJSON(t, router, "/orders", `{"userId": "u1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody[domain.Order](t, w)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "pending", order.Status)
	assert.NotNil(t, order.Items)
	assert.WithinDuration(t, before, order.CreatedAt, 5*time.Second)

	// The new order is visible through the user listing.
	lw := doGet(t, router, "/users/u1/orders")
	require.Equal(t, http.StatusOK, lw.Code)
	mine := decodeBody[[]domain.Order](t, lw)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}

func TestCreateOrderFullPayload(t *testing.T) {
	router := newOrderRouter(t)

	w := postJSON(t, router, "/orders", `{
		"userId": "u2",
		"items": [
			{"productId": "p1", "quantity": 2, "price": 9.99},
			{"productId": "p2"}
		],
		"totalAmount": 29.97,
		"status": "paid",
		"notes": "gift wrap",
		"metadata": {"channel": "web"}
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody[domain.Order](t, w)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, *order.Items[0].Quantity)
	assert.Equal(t, 1, *order.Items[1].Quantity, "quantity defaults to 1")
	assert.Equal(t, 29.97, *order.TotalAmount)
	assert.Equal(t, "paid", order.Status)
	assert.Equal(t, "gift wrap", *order.Notes)
	assert.Equal(t, "web", order.Metadata["channel"])
}

func TestCreateOrderValidationFailure(t *testing.T) {
	router := newOrderRouter(t)

	w := postJSON(t, router, "/orders", `{"items": [{"productId": "p1"}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[middleware.ErrorResponse](t, w)
	assert.Equal(t, "validation failed", resp.Error.Message)
	assert.Contains(t, resp.Error.Details, "validation_errors")
}

func TestCreateOrderBadQuantity(t *testing.T) {
	router := newOrderRouter(t)

	w := postJSON(t, router, "/orders", `{"userId": "u1", "items": [{"productId": "p1", "quantity": 0}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	router := newOrderRouter(t)

	w := postJSON(t, router, "/orders", `{"userId": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody[middleware.ErrorResponse](t, w)
	assert.Equal(t, "invalid request body", resp.Error.Message)
}

func TestListOrdersAcrossUsers(t *testing.T) {
	router := newOrderRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, router, "/orders", `{"userId": "u1"}`).Code)
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/orders", `{"userId": "u2"}`).Code)

	w := doGet(t, router, "/orders")
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeBody[[]domain.Order](t, w)
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].UserID)
	assert.Equal(t, "u2", all[1].UserID)
}

func TestListOrdersByUnknownUserIsEmpty(t *testing.T) {
	router := newOrderRouter(t)

	w := doGet(t, router, "/users/ghost/orders")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(w.Body.Bytes())))
}
