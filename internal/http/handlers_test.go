package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pickpoint/internal/auth"
	"pickpoint/internal/commission"
	"pickpoint/internal/domain"
	"pickpoint/internal/metrics"
	"pickpoint/internal/repository"
	"pickpoint/internal/service"
)

const testCode = "123456"

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	internsRepo := repository.NewMemoryInterns(store)
	tx := repository.NewMemoryTx(store)
	m := metrics.New()
	engine := commission.NewEngine(commission.DefaultRates())

	return NewServer(Deps{
		Orders:  service.NewOrderService(ordersRepo, internsRepo, store, tx, engine, service.WithRecorder(m)),
		Roster:  service.NewRosterService(internsRepo, tx, service.WithRecorder(m)),
		Ledger:  service.NewLedgerService(store, tx, service.WithRecorder(m)),
		Gate:    auth.NewGate(testCode, "test-secret", time.Hour),
		Metrics: m,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, token ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token[0])
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func curatorToken(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/session/curator", map[string]any{"code": testCode})
	if w.Code != http.StatusOK {
		t.Fatalf("session code %v", w.Code)
	}
	return decode[sessionResp](t, w).Token
}

func createOrder(t *testing.T, s *Server, price string) domain.Order {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_name": "Ivan Petrov",
		"items":         []map[string]any{{"name": "Lamp", "quantity": 1, "unit_price": price}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order %v: %s", w.Code, w.Body.String())
	}
	return decode[domain.Order](t, w)
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t)
	o := createOrder(t, s, "250")
	if o.Status != domain.OrderStatusWaiting || o.Barcode == "" {
		t.Fatalf("unexpected order %+v", o)
	}
	// get
	w := doJSON(t, s, http.MethodGet, "/api/v1/orders/"+o.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/barcode/"+o.Barcode, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("barcode code %v", w.Code)
	}
	// issue
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/issue", map[string]any{"actor": "curator"})
	if w.Code != http.StatusOK {
		t.Fatalf("issue code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/ledger", nil)
	if got := decode[ledgerResp](t, w).CuratorBalance; !got.Equal(decimal.RequireFromString("62.5")) {
		t.Fatalf("balance %s", got)
	}
	// second issue is rejected
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/issue", map[string]any{"actor": "curator"})
	if w.Code != http.StatusConflict {
		t.Fatalf("reissue code %v", w.Code)
	}
	// return
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/return", map[string]any{"reason": "damaged"})
	if w.Code != http.StatusOK {
		t.Fatalf("return code %v", w.Code)
	}
	if got := decode[domain.Order](t, w); got.Status != domain.OrderStatusReturned || got.ReturnReason != "damaged" {
		t.Fatalf("unexpected returned order %+v", got)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/ledger", nil)
	if got := decode[ledgerResp](t, w).CuratorBalance; !got.IsZero() {
		t.Fatalf("balance after return %s", got)
	}
	// stats
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/stats", nil)
	if st := decode[domain.Stats](t, w); st.Total != 1 || st.Returned != 1 {
		t.Fatalf("stats %+v", st)
	}
}

func TestOrderErrors(t *testing.T) {
	s := setupServer(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{"bad json", http.MethodPost, "/api/v1/orders", "nope", http.StatusBadRequest},
		{"blank customer", http.MethodPost, "/api/v1/orders", map[string]any{"customer_name": " "}, http.StatusBadRequest},
		{"unknown order", http.MethodGet, "/api/v1/orders/missing", nil, http.StatusNotFound},
		{"issue unknown order", http.MethodPost, "/api/v1/orders/missing/issue", map[string]any{"actor": "curator"}, http.StatusConflict},
		{"empty actor", http.MethodPost, "/api/v1/orders/missing/issue", map[string]any{"actor": ""}, http.StatusBadRequest},
		{"bad status filter", http.MethodGet, "/api/v1/orders?status=lost", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, s, tc.method, tc.path, tc.body)
			if w.Code != tc.code {
				t.Fatalf("code %v, want %v: %s", w.Code, tc.code, w.Body.String())
			}
		})
	}

	o := createOrder(t, s, "100")
	w := doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/issue", map[string]any{"actor": "ghost"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown intern code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/return", map[string]any{"reason": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing reason code %v", w.Code)
	}
}

func TestCuratorGate(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/v1/interns", map[string]any{"name": "Anna", "surname": "Smirnova"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/session/curator", map[string]any{"code": "000000"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/ledger/withdraw", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("withdraw without token %v", w.Code)
	}
}

func TestInternFlow(t *testing.T) {
	s := setupServer(t)
	token := curatorToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/interns", map[string]any{"name": "Anna", "surname": "Smirnova"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add intern code %v", w.Code)
	}
	in := decode[internResp](t, w)
	if in.Efficiency.Level != domain.EfficiencyNew {
		t.Fatalf("fresh intern level %v", in.Efficiency.Level)
	}

	// intern hands off an order
	o := createOrder(t, s, "1000")
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders/"+o.ID+"/issue", map[string]any{"actor": in.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("issue code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/interns/"+in.ID, nil)
	got := decode[internResp](t, w)
	if !got.Salary.Equal(decimal.NewFromInt(100)) || got.IssuedOrders != 1 {
		t.Fatalf("intern after issue %+v", got.Intern)
	}

	// warnings
	w = doJSON(t, s, http.MethodPost, "/api/v1/interns/"+in.ID+"/warnings", map[string]any{"reason": "late"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("warn code %v", w.Code)
	}
	warn := decode[domain.Warning](t, w)
	w = doJSON(t, s, http.MethodDelete, "/api/v1/interns/"+in.ID+"/warnings/"+warn.ID, nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("remove warning code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodDelete, "/api/v1/interns/"+in.ID+"/warnings/"+warn.ID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("remove warning twice code %v", w.Code)
	}

	// salary
	w = doJSON(t, s, http.MethodPost, "/api/v1/interns/"+in.ID+"/withdraw", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("withdraw code %v", w.Code)
	}
	if amount := decode[withdrawResp](t, w).Amount; !amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("withdrawn %s", amount)
	}

	// curator payout
	w = doJSON(t, s, http.MethodPost, "/api/v1/ledger/withdraw", nil, token)
	if amount := decode[withdrawResp](t, w).Amount; !amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("curator withdrawn %s", amount)
	}

	// remove
	w = doJSON(t, s, http.MethodDelete, "/api/v1/interns/"+in.ID, nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("remove intern code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/interns", nil)
	if list := decode[[]internResp](t, w); len(list) != 0 {
		t.Fatalf("interns left %d", len(list))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t)
	createOrder(t, s, "10")
	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics code %v", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("pickpoint_orders_created_total 1")) {
		t.Fatalf("metrics body missing counter")
	}
}
