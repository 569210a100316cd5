package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrNoRecipients is returned when a message has no To address
	ErrNoRecipients = errors.New("mail: no recipients")

	// ErrCircuitOpen is returned while the SMTP breaker rejects calls
	ErrCircuitOpen = errors.New("mail: smtp circuit open")
)

// Message is a plain-text email
type Message struct {
	To      []string
	Subject string
	Body    string
}

// SendFunc delivers a prepared message to an SMTP server
type SendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Option configures an SMTPMailer
type Option func(*SMTPMailer)

// WithSendFunc replaces the SMTP transport
func WithSendFunc(fn SendFunc) Option {
	return func(m *SMTPMailer) {
		m.send = fn
	}
}

// WithBreakerSettings overrides the circuit breaker thresholds
func WithBreakerSettings(maxFailures uint32, openTimeout time.Duration) Option {
	return func(m *SMTPMailer) {
		m.maxFailures = maxFailures
		m.openTimeout = openTimeout
	}
}

// SMTPMailer sends mail through net/smtp guarded by a circuit breaker
type SMTPMailer struct {
	cfg         config.MailConfig
	send        SendFunc
	breaker     *gobreaker.CircuitBreaker
	maxFailures uint32
	openTimeout time.Duration
	logger      *zap.Logger
}

// NewSMTPMailer creates a mailer for cfg
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger, opts ...Option) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &SMTPMailer{
		cfg:         cfg,
		maxFailures: 3,
		openTimeout: time.Minute,
		logger:      logger,
	}
	m.send = m.dialAndSend
	for _, opt := range opts {
		opt(m)
	}

	maxFailures := m.maxFailures
	m.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: m.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return m
}

// Send delivers msg to every recipient
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	raw := Compose(m.cfg.From, msg, time.Now())

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.send(ctx, addr, auth, m.cfg.From, msg.To, raw)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Info("Mail sent",
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.To)),
	)
	return nil
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return err
		}
	}
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// Compose renders msg as an RFC 5322 text/plain message with CRLF line endings
func Compose(from string, msg Message, date time.Time) []byte {
	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	buf.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return buf.Bytes()
}

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer is used when no SMTP host is configured
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.logger.Info("Mail not sent, SMTP disabled",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
