package test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/service"
)

func TestHealthEndpoint(t *testing.T) {
	server := NewTestServer(t)

	var body map[string]string
	resp := server.GetJSON(t, "/healthz", &body)
	AssertStatusCode(t, resp, http.StatusOK)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestReadinessEndpoint(t *testing.T) {
	server := NewTestServer(t)

	var body map[string]any
	resp := server.GetJSON(t, "/readyz", &body)
	AssertStatusCode(t, resp, http.StatusOK)
	if body["status"] != "ready" {
		t.Errorf("Expected status ready, got %v", body["status"])
	}
}

// TestReceiptJoinFlow creates a customer, a property and a receipt over the
// API and verifies the receipt list returns both records inlined.
func TestReceiptJoinFlow(t *testing.T) {
	server := NewTestServer(t)

	var customer domain.Customer
	resp := server.PostJSON(t, "/api/customers", map[string]any{
		"name":  "Aisha Al-Harthy",
		"type":  "individual",
		"phone": "+968 9123 4567",
		"email": "aisha@example.com",
	}, &customer)
	AssertStatusCode(t, resp, http.StatusCreated)
	if customer.ID == "" {
		t.Fatalf("expected customer id to be assigned")
	}

	var property domain.Property
	resp = server.PostJSON(t, "/api/properties", map[string]any{
		"name":     "Seafront Flat 2",
		"type":     "apartment",
		"location": "Muscat",
		"price":    450,
		"area":     95,
	}, &property)
	AssertStatusCode(t, resp, http.StatusCreated)

	var receipt domain.Receipt
	resp = server.PostJSON(t, "/api/receipts", map[string]any{
		"type":          "rent",
		"amount":        450,
		"paidBy":        "Aisha Al-Harthy",
		"customerId":    customer.ID,
		"propertyId":    property.ID,
		"paymentMethod": "cash",
		"description":   "June rent",
	}, &receipt)
	AssertStatusCode(t, resp, http.StatusCreated)
	if receipt.ReceiptNo != "TPL-0001" {
		t.Errorf("expected first receipt number TPL-0001, got %q", receipt.ReceiptNo)
	}

	var listed []service.JoinedReceipt
	resp = server.GetJSON(t, "/api/receipts", &listed)
	AssertStatusCode(t, resp, http.StatusOK)
	if len(listed) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(listed))
	}
	if listed[0].Customer == nil || listed[0].Customer.Name != "Aisha Al-Harthy" {
		t.Errorf("expected customer joined onto receipt, got %+v", listed[0].Customer)
	}
	if listed[0].Property == nil || listed[0].Property.Name != "Seafront Flat 2" {
		t.Errorf("expected property joined onto receipt, got %+v", listed[0].Property)
	}
}

func TestReceiptNumbersAreSequential(t *testing.T) {
	server := NewTestServer(t)

	for i := 1; i <= 3; i++ {
		var receipt domain.Receipt
		resp := server.PostJSON(t, "/api/receipts", map[string]any{
			"type":          "rent",
			"amount":        100,
			"paidBy":        "Tenant",
			"paymentMethod": "cash",
		}, &receipt)
		AssertStatusCode(t, resp, http.StatusCreated)
		want := fmt.Sprintf("TPL-%04d", i)
		if receipt.ReceiptNo != want {
			t.Errorf("receipt %d: expected number %s, got %s", i, want, receipt.ReceiptNo)
		}
	}
}

func TestCreateValidationErrors(t *testing.T) {
	server := NewTestServer(t)

	var errBody map[string]string
	resp := server.PostJSON(t, "/api/properties", map[string]any{}, &errBody)
	AssertStatusCode(t, resp, http.StatusBadRequest)
	if !strings.Contains(errBody["error"], "Property name is required") {
		t.Errorf("expected aggregated validation message, got %q", errBody["error"])
	}
}

func TestGetUnknownResourceReturns404(t *testing.T) {
	server := NewTestServer(t)

	resp := server.GetJSON(t, "/api/properties/missing", nil)
	AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestDashboardRejectsInvalidPeriod(t *testing.T) {
	server := NewTestServer(t)

	resp := server.GetJSON(t, "/api/dashboard?period=fortnight", nil)
	AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestDashboardSummary(t *testing.T) {
	server := NewTestServer(t)

	var property domain.Property
	server.PostJSON(t, "/api/properties", map[string]any{
		"name":     "Garden Villa 7",
		"type":     "villa",
		"location": "Seeb",
		"price":    900,
		"area":     240,
	}, &property)

	var summary service.DashboardSummary
	resp := server.GetJSON(t, "/api/dashboard?period=all", &summary)
	AssertStatusCode(t, resp, http.StatusOK)
	if summary.Period != "all" {
		t.Errorf("expected period all, got %q", summary.Period)
	}
	if summary.Properties.Total != 1 || summary.Properties.Available != 1 {
		t.Errorf("expected 1 available property counted, got %+v", summary.Properties)
	}
}

func TestOverdueRentalsEndpoint(t *testing.T) {
	server := NewTestServer(t)

	var customer domain.Customer
	server.PostJSON(t, "/api/customers", map[string]any{
		"name":  "Salim",
		"type":  "individual",
		"phone": "+968 9000 0000",
	}, &customer)

	var property domain.Property
	server.PostJSON(t, "/api/properties", map[string]any{
		"name":     "Shop 12",
		"type":     "shop",
		"location": "Ruwi",
		"price":    300,
		"area":     40,
	}, &property)

	past := time.Now().AddDate(0, 0, -10).Format(domain.DateOnly)
	var rental domain.Rental
	resp := server.PostJSON(t, "/api/rentals", map[string]any{
		"tenantId":    customer.ID,
		"propertyId":  property.ID,
		"monthlyRent": 300,
		"paidUntil":   past,
	}, &rental)
	AssertStatusCode(t, resp, http.StatusCreated)

	var overdue []service.OverdueRental
	resp = server.GetJSON(t, "/api/reminders/overdue", &overdue)
	AssertStatusCode(t, resp, http.StatusOK)
	if len(overdue) != 1 {
		t.Fatalf("expected 1 overdue rental, got %d", len(overdue))
	}
	if overdue[0].DaysOverdue != 10 {
		t.Errorf("expected 10 days overdue, got %d", overdue[0].DaysOverdue)
	}
	if overdue[0].TenantName != "Salim" {
		t.Errorf("expected tenant name joined, got %q", overdue[0].TenantName)
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	server := NewTestServer(t)

	var registered map[string]any
	resp := server.PostJSON(t, "/api/auth/register", map[string]any{
		"name":     "Admin",
		"email":    "admin@telalestate.com",
		"password": "super-secret-1",
		"role":     "admin",
	}, &registered)
	AssertStatusCode(t, resp, http.StatusCreated)
	if registered["token"] == "" || registered["token"] == nil {
		t.Fatalf("expected token in register response, got %v", registered)
	}

	var login map[string]any
	resp = server.PostJSON(t, "/api/auth/login", map[string]any{
		"email":    "admin@telalestate.com",
		"password": "super-secret-1",
	}, &login)
	AssertStatusCode(t, resp, http.StatusOK)
	if login["token_type"] != "Bearer" {
		t.Errorf("expected Bearer token type, got %v", login["token_type"])
	}

	resp = server.PostJSON(t, "/api/auth/login", map[string]any{
		"email":    "admin@telalestate.com",
		"password": "wrong",
	}, nil)
	AssertStatusCode(t, resp, http.StatusUnauthorized)
}
