package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/telalestate/propertydesk/internal/domain"
	"github.com/telalestate/propertydesk/internal/notify"
	"github.com/telalestate/propertydesk/internal/store"
)

type captureSender struct {
	sent []notify.Message
	err  error
}

func (c *captureSender) Send(_ context.Context, msg notify.Message) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.sent = append(c.sent, msg)
	return "<test@propertydesk.local>", nil
}

func seedRentalData(t *testing.T, st *store.Store, email string) {
	t.Helper()
	err := st.Update(func(db *domain.Database) error {
		db.Customers = []domain.Customer{{ID: "c1", Name: "Nasser", Email: email}}
		db.Properties = []domain.Property{{ID: "p1", Name: "Garden Villa 7"}}
		db.Rentals = []domain.Rental{{ID: "r1", TenantID: "c1", PropertyID: "p1", MonthlyRent: 450, PaidUntil: "2026-06-10"}}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSendReminder(t *testing.T) {
	st := newTestStore(t)
	seedRentalData(t, st, "nasser@example.com")

	sender := &captureSender{}
	svc := NewReminderService(st, sender, nil).WithClock(fixedNow)

	result, err := svc.SendReminder(context.Background(), "r1")
	if err != nil {
		t.Fatalf("send reminder failed: %v", err)
	}
	if result.Recipient != "nasser@example.com" {
		t.Errorf("unexpected recipient %q", result.Recipient)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.Subject != "Payment Reminder - Garden Villa 7" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"Nasser", "Garden Villa 7", "OMR 450.000", "10 June 2026"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestSendReminderUnknownRental(t *testing.T) {
	svc := NewReminderService(newTestStore(t), &captureSender{}, nil)
	_, err := svc.SendReminder(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendReminderTenantWithoutEmail(t *testing.T) {
	st := newTestStore(t)
	seedRentalData(t, st, "")

	svc := NewReminderService(st, &captureSender{}, nil)
	_, err := svc.SendReminder(context.Background(), "r1")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "no email address") {
		t.Errorf("unexpected message %q", verr.Error())
	}
}

func TestSendReminderDeliveryFailure(t *testing.T) {
	st := newTestStore(t)
	seedRentalData(t, st, "nasser@example.com")

	boom := errors.New("smtp down")
	svc := NewReminderService(st, &captureSender{err: boom}, nil)
	_, err := svc.SendReminder(context.Background(), "r1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected sender error, got %v", err)
	}
}
