package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/notify"
	"github.com/telalestate/propertydesk/internal/store"
)

// ReminderResult reports a delivered payment reminder.
type ReminderResult struct {
	RentalID  string `json:"rentalId"`
	Recipient string `json:"recipient"`
	EmailID   string `json:"emailId"`
}

// ReminderService renders and sends late-payment reminder emails.
type ReminderService struct {
	store  *store.Store
	sender notify.Sender
	logger *slog.Logger
	now    func() time.Time
}

func NewReminderService(st *store.Store, sender notify.Sender, logger *slog.Logger) *ReminderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{store: st, sender: sender, logger: logger, now: time.Now}
}

// WithClock overrides the service clock; tests only.
func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// SendReminder emails the tenant of the given rental. The rental, tenant and
// property must resolve; a tenant without an email address is a validation
// failure, not a missing record.
func (s *ReminderService) SendReminder(ctx context.Context, rentalID string) (*ReminderResult, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var rental *domain.Rental
	for i := range db.Rentals {
		if db.Rentals[i].ID == rentalID {
			rental = &db.Rentals[i]
			break
		}
	}
	if rental == nil {
		return nil, fmt.Errorf("rental %s: %w", rentalID, domain.ErrNotFound)
	}

	var tenant *domain.Customer
	for i := range db.Customers {
		if db.Customers[i].ID == rental.TenantID {
			tenant = &db.Customers[i]
			break
		}
	}
	if tenant == nil {
		return nil, fmt.Errorf("tenant %s: %w", rental.TenantID, domain.ErrNotFound)
	}
	if tenant.Email == "" {
		return nil, domain.NewValidationError([]string{"Tenant has no email address"})
	}

	var property *domain.Property
	for i := range db.Properties {
		if db.Properties[i].ID == rental.PropertyID {
			property = &db.Properties[i]
			break
		}
	}
	if property == nil {
		return nil, fmt.Errorf("property %s: %w", rental.PropertyID, domain.ErrNotFound)
	}

	today := s.now().UTC()
	dueDate := rental.PaidUntil
	if due, err := time.Parse(domain.DateOnly, rental.PaidUntil); err == nil {
		dueDate = due.Format("02 January 2006")
	}

	html, err := notify.RenderReminder(notify.ReminderParams{
		TenantName:   tenant.Name,
		PropertyName: property.Name,
		AmountDue:    rental.MonthlyRent,
		DaysOverdue:  DaysOverdue(rental.PaidUntil, today),
		DueDate:      dueDate,
	})
	if err != nil {
		return nil, err
	}

	emailID, err := s.sender.Send(ctx, notify.Message{
		To:      tenant.Email,
		Subject: fmt.Sprintf("Payment Reminder - %s", property.Name),
		HTML:    html,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment reminder sent",
		slog.String("rental_id", rentalID),
		slog.String("recipient", tenant.Email),
		slog.String("email_id", emailID),
	)
	return &ReminderResult{RentalID: rentalID, Recipient: tenant.Email, EmailID: emailID}, nil
}
