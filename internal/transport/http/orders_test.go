package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/catalog"
	"github.com/vladislavdragonenkov/orders/internal/service/enrichment"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
	"github.com/vladislavdragonenkov/orders/internal/service/users"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	transport "github.com/vladislavdragonenkov/orders/internal/transport/http"
)

type apiFixture struct {
	server     *httptest.Server
	userDir    *users.MockDirectory
	productCat *catalog.MockCatalog
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	repo := memory.NewOrderRepository()
	userDir := users.NewMockDirectory()
	productCat := catalog.NewMockCatalog()
	engine := enrichment.NewEngine(userDir, productCat, nil)
	svc := orders.NewService(repo, userDir, productCat, engine, nil)
	handler := transport.NewHandler(svc, nil)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)

	userDir.Add(domain.UserView{ID: 1, Name: "Alice", Email: "alice@example.com"})
	productCat.Add(domain.ProductView{ID: 2, Name: "Keyboard", Price: decimal.RequireFromString("19.99")})

	return &apiFixture{server: server, userDir: userDir, productCat: productCat}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (f *apiFixture) createOrder(t *testing.T) map[string]any {
	t.Helper()

	resp, body := f.do(t, http.MethodPost, "/api/orders", `{"user_id":1,"product_id":2,"quantity":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func TestAPI_Health(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestAPI_CreateOrder(t *testing.T) {
	f := newAPIFixture(t)

	body := f.createOrder(t)
	require.Equal(t, float64(1), body["id"])
	require.Equal(t, "59.97", body["total_price"])
	require.Equal(t, "pending", body["status"])
	require.NotEmpty(t, body["created_at"])
}

func TestAPI_CreateOrderRejections(t *testing.T) {
	f := newAPIFixture(t)

	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"missing quantity", `{"user_id":1,"product_id":2}`, "quantity must be greater than zero"},
		{"missing user_id", `{"product_id":2,"quantity":1}`, "user_id is required"},
		{"unknown user", `{"user_id":42,"product_id":2,"quantity":1}`, "User not found"},
		{"unknown product", `{"user_id":1,"product_id":42,"quantity":1}`, "Product not found"},
		{"malformed body", `{"user_id":`, "invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := f.do(t, http.MethodPost, "/api/orders", tc.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.Equal(t, tc.wantErr, body["error"])
		})
	}

	// Ни один отказ не оставил записи.
	resp, _ := f.do(t, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_GetOrderEnriched(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	resp, body := f.do(t, http.MethodGet, "/api/orders/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, created["id"], body["id"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected embedded user view")
	require.Equal(t, "Alice", user["name"])

	product, ok := body["product"].(map[string]any)
	require.True(t, ok, "expected embedded product view")
	require.Equal(t, "Keyboard", product["name"])
}

func TestAPI_GetOrderNotFound(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/orders/999", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Order not found", body["error"])

	// 404 не должен стоить ни одной резолюции.
	require.Zero(t, f.userDir.CallCount())
	require.Zero(t, f.productCat.CallCount())
}

func TestAPI_GetOrderBadID(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/orders/abc", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Order not found", body["error"])
}

func TestAPI_ListOrdersDegraded(t *testing.T) {
	f := newAPIFixture(t)
	f.createOrder(t)
	f.createOrder(t)

	// User Directory гаснет после создания: список всё равно отдаётся.
	f.userDir.Unreachable = true

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/orders", nil)
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 2)

	for i, row := range rows {
		require.Equal(t, float64(i+1), row["id"], "rows must keep ascending id order")
		user := row["user"].(map[string]any)
		require.Equal(t, "Unknown User", user["name"])
		require.Equal(t, float64(1), user["id"], "placeholder must carry the original reference")
		product := row["product"].(map[string]any)
		require.Equal(t, "Keyboard", product["name"])
	}
}

func TestAPI_UpdateStatus(t *testing.T) {
	f := newAPIFixture(t)
	f.createOrder(t)

	resp, body := f.do(t, http.MethodPut, "/api/orders/1", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "shipped", body["status"])
	require.Equal(t, "59.97", body["total_price"], "other fields must be unchanged")

	resp, body = f.do(t, http.MethodPut, "/api/orders/1", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "status is required", body["error"])

	resp, body = f.do(t, http.MethodPut, "/api/orders/999", `{"status":"shipped"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Order not found", body["error"])
}

func TestAPI_DeleteOrderTwice(t *testing.T) {
	f := newAPIFixture(t)
	f.createOrder(t)

	resp, body := f.do(t, http.MethodDelete, "/api/orders/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Order deleted successfully", body["message"])

	order, ok := body["order"].(map[string]any)
	require.True(t, ok, "delete confirmation must carry the prior row")
	require.Equal(t, float64(1), order["id"])

	resp, body = f.do(t, http.MethodDelete, "/api/orders/1", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Order not found", body["error"])
}

func TestAPI_RequestIDHeader(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.do(t, http.MethodGet, "/health", "")
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "test-id-1")
	resp2, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	require.Equal(t, "test-id-1", resp2.Header.Get("X-Request-Id"))
}
