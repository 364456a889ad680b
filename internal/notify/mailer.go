package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telalestate/propertydesk/internal/reliability/circuitbreaker"
	"github.com/telalestate/propertydesk/internal/reliability/retry"
)

// Message is a fully rendered outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message and returns a message identifier.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SMTPConfig holds delivery settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReplyTo  string
}

// SMTPMailer sends mail over SMTP. Delivery runs behind a circuit breaker so
// a dead relay fails fast, and each attempt is retried with backoff.
type SMTPMailer struct {
	cfg      SMTPConfig
	logger   *slog.Logger
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg *retry.Config
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		cfg:      cfg,
		logger:   logger,
		breaker:  circuitbreaker.NewCircuitBreaker(3, 1, time.Minute),
		retryCfg: retry.DefaultConfig(),
	}
}

// Send delivers msg and returns the generated Message-ID.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	if !m.breaker.AllowRequest() {
		return "", fmt.Errorf("email relay %s unavailable (circuit open)", m.cfg.Host)
	}

	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(m.cfg.From))
	payload := m.buildPayload(msg, msgID)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	err := retry.Do(ctx, m.retryCfg, m.logger, "send_email", func(context.Context) error {
		return smtp.SendMail(addr, auth, addressOf(m.cfg.From), []string{msg.To}, payload)
	})
	if err != nil {
		m.breaker.RecordFailure()
		return "", fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	m.breaker.RecordSuccess()
	m.logger.Info("email sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("message_id", msgID),
	)
	return msgID, nil
}

func (m *SMTPMailer) buildPayload(msg Message, msgID string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if m.cfg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", m.cfg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Message-ID: %s\r\n", msgID)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// addressOf strips an optional display name from "Name <addr>" forms.
func addressOf(from string) string {
	if i := strings.Index(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}

func domainOf(from string) string {
	addr := addressOf(from)
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return "propertydesk.local"
}

// LogSender is used when no SMTP relay is configured: it logs the message
// and reports success so development setups work end to end.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	msgID := fmt.Sprintf("<%s@propertydesk.local>", uuid.NewString())
	logger.Info("email delivery skipped: SMTP not configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("message_id", msgID),
	)
	return msgID, nil
}
