package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/events"
	"github.com/telalestate/propertydesk/internal/handler"
	"github.com/telalestate/propertydesk/internal/idgen"
	"github.com/telalestate/propertydesk/internal/infrastructure/logger"
	"github.com/telalestate/propertydesk/internal/repository"
	"github.com/telalestate/propertydesk/internal/security/auth"
	"github.com/telalestate/propertydesk/internal/service"
	"github.com/telalestate/propertydesk/internal/store"
	"github.com/telalestate/propertydesk/pkg/cache"
)

// TestServerHelper wires the full API onto an httptest server backed by a
// throwaway data directory. Auth middleware is left off so tests can hit
// the resource endpoints directly.
type TestServerHelper struct {
	Server *httptest.Server
	Store  *store.Store
}

func NewTestServer(t *testing.T) *TestServerHelper {
	t.Helper()

	log := logger.NewLogger("error")
	st := store.New(t.TempDir(), log)
	if _, err := st.Load(); err != nil {
		t.Fatalf("initial store load: %v", err)
	}

	hub := events.NewHub(log)
	ids := idgen.UUID{}

	propertyRepo := repository.NewPropertyRepository(st, ids, hub, log)
	customerRepo := repository.NewCustomerRepository(st, ids, hub, log)
	receiptRepo := repository.NewReceiptRepository(st, ids, hub, log)
	rentalRepo := repository.NewRentalRepository(st, ids, hub, log)
	contractRepo := repository.NewRentalContractRepository(st, ids, hub, log)
	documentRepo := repository.NewDocumentRepository(st, ids, hub, log)
	userRepo := repository.NewUserRepository(st, ids, log)

	joinService := service.NewJoinService(st, log)
	aggregationService := service.NewAggregationService(st, log)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens, log)

	propertiesHandler := handler.NewPropertiesHandler(propertyRepo, log)
	customersHandler := handler.NewCustomersHandler(customerRepo, log)
	receiptsHandler := handler.NewReceiptsHandler(receiptRepo, joinService, log)
	rentalsHandler := handler.NewRentalsHandler(rentalRepo, log)
	contractsHandler := handler.NewContractsHandler(contractRepo, log)
	documentsHandler := handler.NewDocumentsHandler(documentRepo, log)
	dashboardHandler := handler.NewDashboardHandler(aggregationService, cache.New(), time.Second, log)
	remindersHandler := handler.NewRemindersHandler(aggregationService, nil, log)
	uploadHandler := handler.NewUploadHandler(t.TempDir(), log)
	authHandler := handler.NewAuthHandler(authService, log)
	healthHandler := handler.NewHealthHandler(st, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/properties", propertiesHandler.List)
	mux.HandleFunc("POST /api/properties", propertiesHandler.Create)
	mux.HandleFunc("GET /api/properties/{id}", propertiesHandler.Get)
	mux.HandleFunc("PUT /api/properties/{id}", propertiesHandler.Update)
	mux.HandleFunc("DELETE /api/properties/{id}", propertiesHandler.Delete)

	mux.HandleFunc("GET /api/customers", customersHandler.List)
	mux.HandleFunc("POST /api/customers", customersHandler.Create)
	mux.HandleFunc("GET /api/customers/{id}", customersHandler.Get)
	mux.HandleFunc("PUT /api/customers/{id}", customersHandler.Update)
	mux.HandleFunc("DELETE /api/customers/{id}", customersHandler.Delete)

	mux.HandleFunc("GET /api/receipts", receiptsHandler.List)
	mux.HandleFunc("POST /api/receipts", receiptsHandler.Create)
	mux.HandleFunc("GET /api/receipts/{id}", receiptsHandler.Get)
	mux.HandleFunc("PUT /api/receipts/{id}", receiptsHandler.Update)
	mux.HandleFunc("DELETE /api/receipts/{id}", receiptsHandler.Delete)

	mux.HandleFunc("GET /api/rentals", rentalsHandler.List)
	mux.HandleFunc("POST /api/rentals", rentalsHandler.Create)
	mux.HandleFunc("GET /api/rentals/{id}", rentalsHandler.Get)
	mux.HandleFunc("PUT /api/rentals/{id}", rentalsHandler.Update)
	mux.HandleFunc("DELETE /api/rentals/{id}", rentalsHandler.Delete)

	mux.HandleFunc("GET /api/rental-contracts", contractsHandler.List)
	mux.HandleFunc("POST /api/rental-contracts", contractsHandler.Create)
	mux.HandleFunc("GET /api/rental-contracts/{id}", contractsHandler.Get)
	mux.HandleFunc("PUT /api/rental-contracts/{id}", contractsHandler.Update)
	mux.HandleFunc("DELETE /api/rental-contracts/{id}", contractsHandler.Delete)

	mux.HandleFunc("GET /api/documents", documentsHandler.List)
	mux.HandleFunc("POST /api/documents", documentsHandler.Create)
	mux.HandleFunc("GET /api/documents/{id}", documentsHandler.Get)
	mux.HandleFunc("PUT /api/documents/{id}", documentsHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", documentsHandler.Delete)

	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Summary)
	mux.HandleFunc("GET /api/reminders/overdue", remindersHandler.Overdue)

	mux.HandleFunc("POST /api/upload", uploadHandler.Upload)
	mux.HandleFunc("DELETE /api/upload", uploadHandler.Delete)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &TestServerHelper{Server: server, Store: st}
}

func (h *TestServerHelper) URL() string {
	return h.Server.URL
}

// PostJSON sends body as JSON and decodes the response into out (when non-nil).
func (h *TestServerHelper) PostJSON(t *testing.T, path string, body any, out any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(h.URL()+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	decodeResponse(t, resp, out)
	return resp
}

// GetJSON fetches path and decodes the response into out (when non-nil).
func (h *TestServerHelper) GetJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(h.URL() + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	decodeResponse(t, resp, out)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode response %q: %v", string(data), err)
		}
	}
}

// AssertStatusCode helper function
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}
