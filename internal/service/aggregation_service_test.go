package service

import (
	"testing"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(t.TempDir(), nil)
}

func fixedNow() time.Time {
	// Wednesday.
	return time.Date(2026, 6, 17, 12, 0, 0, 0, time.UTC)
}

func TestDaysOverdue(t *testing.T) {
	today := fixedNow()

	cases := []struct {
		paidUntil string
		want      int
	}{
		{"2026-06-12", 5},
		{"2026-06-16", 1},
		{"2026-06-17", 0},
		{"2026-07-01", 0},
		{"not-a-date", 0},
	}
	for _, tc := range cases {
		if got := DaysOverdue(tc.paidUntil, today); got != tc.want {
			t.Errorf("DaysOverdue(%q) = %d, want %d", tc.paidUntil, got, tc.want)
		}
	}
}

func TestListOverdue(t *testing.T) {
	st := newTestStore(t)
	err := st.Update(func(db *domain.Database) error {
		db.Customers = []domain.Customer{
			{ID: "c1", Name: "Aisha", Email: "aisha@example.com"},
		}
		db.Properties = []domain.Property{
			{ID: "p1", Name: "Seafront Flat 2"},
		}
		db.Rentals = []domain.Rental{
			{ID: "r1", TenantID: "c1", PropertyID: "p1", MonthlyRent: 300, PaidUntil: "2026-06-10"},
			{ID: "r2", TenantID: "missing", PropertyID: "missing", MonthlyRent: 200, PaidUntil: "2026-06-01"},
			{ID: "r3", TenantID: "c1", PropertyID: "p1", MonthlyRent: 400, PaidUntil: "2026-06-17"},
			{ID: "r4", TenantID: "c1", PropertyID: "p1", MonthlyRent: 500, PaidUntil: "2026-09-01"},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAggregationService(st, nil).WithClock(fixedNow)
	overdue, err := svc.ListOverdue()
	if err != nil {
		t.Fatalf("list overdue failed: %v", err)
	}

	if len(overdue) != 2 {
		t.Fatalf("expected 2 overdue rentals, got %d", len(overdue))
	}

	first := overdue[0]
	if first.RentalID != "r1" || first.TenantName != "Aisha" || first.PropertyName != "Seafront Flat 2" {
		t.Errorf("unexpected join result: %+v", first)
	}
	if first.DaysOverdue != 7 {
		t.Errorf("expected 7 days overdue, got %d", first.DaysOverdue)
	}

	second := overdue[1]
	if second.TenantName != "Unknown" || second.PropertyName != "Unknown" {
		t.Errorf("dangling references must render Unknown: %+v", second)
	}
}

func TestSummaryCounts(t *testing.T) {
	st := newTestStore(t)
	err := st.Update(func(db *domain.Database) error {
		db.Properties = []domain.Property{
			{ID: "p1", Status: "available"},
			{ID: "p2", Status: "rented"},
			{ID: "p3", Status: "rented"},
			{ID: "p4", Status: "sold"},
		}
		db.Rentals = []domain.Rental{
			{ID: "r1", PaidUntil: "2026-09-01"},
			{ID: "r2", PaidUntil: "2026-06-01"},
			{ID: "r3", PaidUntil: ""},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAggregationService(st, nil).WithClock(fixedNow)
	summary, err := svc.Summary(PeriodAll)
	if err != nil {
		t.Fatal(err)
	}

	p := summary.Properties
	if p.Total != 4 || p.Available != 1 || p.Rented != 2 || p.Sold != 1 {
		t.Errorf("property counts wrong: %+v", p)
	}
	r := summary.Rentals
	if r.Total != 3 || r.Paid != 1 || r.Overdue != 1 || r.Unpaid != 1 {
		t.Errorf("rental counts wrong: %+v", r)
	}
}

func TestSummaryFinancials(t *testing.T) {
	st := newTestStore(t)
	err := st.Update(func(db *domain.Database) error {
		db.Receipts = []domain.Receipt{
			{ID: "a", Type: "rent", Amount: 500, Date: "2026-06-05"},
			{ID: "b", Type: "sale", Amount: 1500, Date: "2026-06-10"},
			{ID: "c", Type: "expense", Amount: 200, Date: "2026-06-12"},
			{ID: "d", Type: "rent", Amount: 1000, Date: "2026-05-20"},
			{ID: "e", Type: "expense", Amount: 100, Date: "2026-05-02"},
			{ID: "f", Type: "rent", Amount: 9999, Date: "2025-01-01"},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAggregationService(st, nil).WithClock(fixedNow)
	summary, err := svc.Summary(PeriodThisMonth)
	if err != nil {
		t.Fatal(err)
	}

	f := summary.Financial
	if f.Revenue != 2000 {
		t.Errorf("expected revenue 2000, got %v", f.Revenue)
	}
	if f.Expenses != 200 {
		t.Errorf("expected expenses 200, got %v", f.Expenses)
	}
	if f.RevenueChange != 100 {
		t.Errorf("expected revenue change 100, got %v", f.RevenueChange)
	}
	if f.ExpenseChange != 100 {
		t.Errorf("expected expense change 100, got %v", f.ExpenseChange)
	}
}

func TestSummaryAllPeriodReportsNoChange(t *testing.T) {
	st := newTestStore(t)
	err := st.Update(func(db *domain.Database) error {
		db.Receipts = []domain.Receipt{
			{ID: "a", Type: "rent", Amount: 500, Date: "2024-01-01"},
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAggregationService(st, nil).WithClock(fixedNow)
	summary, err := svc.Summary(PeriodAll)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Financial.RevenueChange != 0 || summary.Financial.ExpenseChange != 0 {
		t.Errorf("period all must not report change: %+v", summary.Financial)
	}
}
