package notify

import (
	"context"
	"strings"
	"testing"
)

func TestRenderReminder(t *testing.T) {
	html, err := RenderReminder(ReminderParams{
		TenantName:   "Khalid",
		PropertyName: "Marina Apartment 12",
		AmountDue:    275.5,
		DaysOverdue:  9,
		DueDate:      "01 June 2026",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"Khalid",
		"Marina Apartment 12",
		"OMR 275.500",
		"01 June 2026",
		"9 days",
		"Telal Al-Bidaya",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderReminderEscapesHTML(t *testing.T) {
	html, err := RenderReminder(ReminderParams{
		TenantName: "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("tenant name must be escaped")
	}
}

func TestAmountDisplayUsesThreeDecimals(t *testing.T) {
	p := ReminderParams{AmountDue: 100}
	if got := p.AmountDisplay(); got != "OMR 100.000" {
		t.Errorf("got %q", got)
	}
}

func TestLogSenderReturnsMessageID(t *testing.T) {
	s := &LogSender{}
	id, err := s.Send(context.Background(), Message{To: "x@example.com", Subject: "hi"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, ">") {
		t.Errorf("expected angle-bracketed message id, got %q", id)
	}
}

func TestBuildPayloadHeaders(t *testing.T) {
	cfg := SMTPConfig{From: "Telal Al-Bidaya <noreply@telalestate.com>", ReplyTo: "office@telalestate.com"}
	m := NewSMTPMailer(cfg, nil)

	msgID := "<abc123@telalestate.com>"
	payload := m.buildPayload(Message{To: "tenant@example.com", Subject: "Payment Reminder", HTML: "<p>hi</p>"}, msgID)
	body := string(payload)

	for _, want := range []string{
		"From: Telal Al-Bidaya <noreply@telalestate.com>",
		"To: tenant@example.com",
		"Reply-To: office@telalestate.com",
		"Subject: Payment Reminder",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"Message-ID: " + msgID,
		"<p>hi</p>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("payload missing %q", want)
		}
	}
}

func TestDomainOf(t *testing.T) {
	if got := domainOf("Telal Al-Bidaya <noreply@telalestate.com>"); got != "telalestate.com" {
		t.Errorf("got %q", got)
	}
	if got := domainOf("plain-not-an-address"); got != "propertydesk.local" {
		t.Errorf("fallback domain wrong: %q", got)
	}
}
