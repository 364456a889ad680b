package service

import (
	"log/slog"
	"math"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/observability/metrics"
	"github.com/telalestate/propertydesk/internal/store"
)

// Periods accepted by the dashboard summary.
const (
	PeriodThisWeek  = "this_week"
	PeriodThisMonth = "this_month"
	PeriodThisYear  = "this_year"
	PeriodAll       = "all"
)

// OverdueRental is one line of the overdue listing, joined with tenant and
// property for display and reminder delivery.
type OverdueRental struct {
	RentalID     string  `json:"rentalId"`
	TenantName   string  `json:"tenantName"`
	TenantEmail  string  `json:"tenantEmail,omitempty"`
	PropertyName string  `json:"propertyName"`
	MonthlyRent  float64 `json:"monthlyRent"`
	PaidUntil    string  `json:"paidUntil"`
	DaysOverdue  int     `json:"daysOverdue"`
}

// DashboardSummary is the aggregated view behind the landing page.
type DashboardSummary struct {
	Financial  FinancialSummary `json:"financial"`
	Properties PropertyCounts   `json:"properties"`
	Rentals    RentalCounts     `json:"rentals"`
	Period     string           `json:"period"`
}

type FinancialSummary struct {
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	RevenueChange float64 `json:"revenueChange"` // percent vs previous window
	ExpenseChange float64 `json:"expenseChange"`
}

type PropertyCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Rented    int `json:"rented"`
	Sold      int `json:"sold"`
}

type RentalCounts struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Overdue int `json:"overdue"`
	Unpaid  int `json:"unpaid"`
}

// AggregationService computes derived views over the store's collections.
// The clock is injectable so date arithmetic is testable.
type AggregationService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewAggregationService(st *store.Store, logger *slog.Logger) *AggregationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregationService{store: st, logger: logger, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *AggregationService) WithClock(now func() time.Time) *AggregationService {
	s.now = now
	return s
}

// DaysOverdue returns how many whole days paidUntil lies before today,
// clamped to zero. An unparseable date counts as not overdue.
func DaysOverdue(paidUntil string, today time.Time) int {
	due, err := time.Parse(domain.DateOnly, paidUntil)
	if err != nil {
		return 0
	}
	days := int(today.Truncate(24*time.Hour).Sub(due) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// isOverdue reports whether paidUntil is strictly before today's date.
func isOverdue(paidUntil string, today time.Time) bool {
	due, err := time.Parse(domain.DateOnly, paidUntil)
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ListOverdue returns every rental past its paid-until date with joined
// tenant and property names. Missing references render as "Unknown" rather
// than failing the listing.
func (s *AggregationService) ListOverdue() ([]OverdueRental, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	customers := make(map[string]*domain.Customer, len(db.Customers))
	for i := range db.Customers {
		customers[db.Customers[i].ID] = &db.Customers[i]
	}
	properties := make(map[string]*domain.Property, len(db.Properties))
	for i := range db.Properties {
		properties[db.Properties[i].ID] = &db.Properties[i]
	}

	out := []OverdueRental{}
	for _, rental := range db.Rentals {
		if !isOverdue(rental.PaidUntil, today) {
			continue
		}
		row := OverdueRental{
			RentalID:     rental.ID,
			TenantName:   "Unknown",
			PropertyName: "Unknown",
			MonthlyRent:  rental.MonthlyRent,
			PaidUntil:    rental.PaidUntil,
			DaysOverdue:  DaysOverdue(rental.PaidUntil, today),
		}
		if t, ok := customers[rental.TenantID]; ok {
			row.TenantName = t.Name
			row.TenantEmail = t.Email
		}
		if p, ok := properties[rental.PropertyID]; ok {
			row.PropertyName = p.Name
		}
		out = append(out, row)
	}

	metrics.SetOverdueRentals(len(out))
	return out, nil
}

// Summary computes the dashboard aggregation for one period.
func (s *AggregationService) Summary(period string) (*DashboardSummary, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	summary := &DashboardSummary{Period: period}

	summary.Properties.Total = len(db.Properties)
	for _, p := range db.Properties {
		switch p.Status {
		case "available":
			summary.Properties.Available++
		case "rented":
			summary.Properties.Rented++
		case "sold":
			summary.Properties.Sold++
		}
	}

	summary.Rentals.Total = len(db.Rentals)
	for _, r := range db.Rentals {
		switch {
		case r.PaidUntil == "":
			summary.Rentals.Unpaid++
		case isOverdue(r.PaidUntil, now):
			summary.Rentals.Overdue++
		default:
			summary.Rentals.Paid++
		}
	}

	curStart, curEnd, prevStart, prevEnd := periodWindows(period, now)
	var prevRevenue, prevExpenses float64
	for _, r := range db.Receipts {
		at := receiptTime(r)
		switch {
		case inWindow(at, curStart, curEnd):
			if r.Type == "expense" {
				summary.Financial.Expenses += r.Amount
			} else {
				summary.Financial.Revenue += r.Amount
			}
		case inWindow(at, prevStart, prevEnd):
			if r.Type == "expense" {
				prevExpenses += r.Amount
			} else {
				prevRevenue += r.Amount
			}
		}
	}
	if period != PeriodAll {
		summary.Financial.RevenueChange = percentChange(summary.Financial.Revenue, prevRevenue)
		summary.Financial.ExpenseChange = percentChange(summary.Financial.Expenses, prevExpenses)
	}

	return summary, nil
}

// receiptTime prefers the receipt's business date over its creation time.
func receiptTime(r domain.Receipt) time.Time {
	if t, err := time.Parse(domain.DateOnly, r.Date); err == nil {
		return t
	}
	return r.CreatedAt
}

// periodWindows returns the current window and the previous window of equal
// length. For "all" both windows are unbounded and the change is zero.
func periodWindows(period string, now time.Time) (curStart, curEnd, prevStart, prevEnd time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	curEnd = today.AddDate(0, 0, 1)

	switch period {
	case PeriodThisWeek:
		// Weeks start on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		curStart = today.AddDate(0, 0, -offset)
		prevStart = curStart.AddDate(0, 0, -7)
		prevEnd = curStart
	case PeriodThisMonth:
		curStart = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(0, -1, 0)
		prevEnd = curStart
	case PeriodThisYear:
		curStart = time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(-1, 0, 0)
		prevEnd = curStart
	default: // PeriodAll
		curStart = time.Time{}
		prevStart = time.Time{}
		prevEnd = time.Time{}
	}
	return curStart, curEnd, prevStart, prevEnd
}

func inWindow(t, start, end time.Time) bool {
	if start.IsZero() && end.IsZero() {
		return false
	}
	if start.IsZero() {
		return t.Before(end)
	}
	return !t.Before(start) && t.Before(end)
}

// percentChange returns the period-over-period change rounded to one
// decimal. A previous total of zero reports 100 when the current total is
// positive and 0 otherwise, avoiding a division blowup.
func percentChange(cur, prev float64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	change := (cur - prev) / prev * 100
	return math.Round(change*10) / 10
}
