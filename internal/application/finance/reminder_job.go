package finance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/mail"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tenantConcurrency caps how many tenant digests are built at once
const tenantConcurrency = 4

// Mailer delivers reminder digests
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// ReminderSummary reports one reminder run
type ReminderSummary struct {
	Tenants      int       `json:"tenants"`
	Transactions int       `json:"transactions"`
	Sent         int       `json:"sent"`
	Cutoff       time.Time `json:"cutoff"`
}

// ReminderJob emails a daily digest of AP/AR transactions coming due
type ReminderJob struct {
	repo       finance.TransactionRepository
	mailer     Mailer
	recipients []string
	leadDays   int
	metrics    *telemetry.Metrics
	printer    *message.Printer
	unit       currency.Unit
	logger     *zap.Logger
}

// NewReminderJob creates the job. metrics may be nil.
func NewReminderJob(repo finance.TransactionRepository, mailer Mailer, cfg config.ReminderConfig, metrics *telemetry.Metrics, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		repo:       repo,
		mailer:     mailer,
		recipients: cfg.Recipients,
		leadDays:   cfg.LeadDays,
		metrics:    metrics,
		printer:    message.NewPrinter(language.Indonesian),
		unit:       currency.IDR,
		logger:     logger,
	}
}

// Name implements scheduler.Job
func (j *ReminderJob) Name() string {
	return "due-reminder"
}

// Run implements scheduler.Job
func (j *ReminderJob) Run(ctx context.Context, now time.Time) error {
	_, err := j.Send(ctx, now)
	return err
}

// Send builds and mails one digest per tenant holding transactions due by
// now plus the lead days. A failing tenant does not stop the others.
func (j *ReminderJob) Send(ctx context.Context, now time.Time) (*ReminderSummary, error) {
	cutoff := today(now).AddDate(0, 0, j.leadDays)
	summary := &ReminderSummary{Cutoff: cutoff}

	if len(j.recipients) == 0 {
		j.logger.Warn("Due reminder skipped, no recipients configured")
		return summary, nil
	}

	tenants, err := j.repo.TenantsWithDue(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants with due transactions: %w", err)
	}
	summary.Tenants = len(tenants)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(tenantConcurrency)
	for _, tenantID := range tenants {
		g.Go(func() error {
			count, err := j.remindTenant(ctx, tenantID, now, cutoff)
			j.metrics.ObserveReminder(err)
			if err != nil {
				j.logger.Error("Due reminder failed", zap.String("tenant_id", tenantID.String()), zap.Error(err))
				return err
			}
			if count > 0 {
				mu.Lock()
				summary.Transactions += count
				summary.Sent++
				mu.Unlock()
			}
			return nil
		})
	}
	err = g.Wait()

	j.logger.Info("Due reminders processed",
		zap.Int("tenants", summary.Tenants),
		zap.Int("sent", summary.Sent),
		zap.Int("transactions", summary.Transactions))
	return summary, err
}

func (j *ReminderJob) remindTenant(ctx context.Context, tenantID uuid.UUID, now, cutoff time.Time) (int, error) {
	var payables, receivables []finance.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payables, err = j.repo.FindDue(gctx, tenantID, finance.TransactionKindAP, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		receivables, err = j.repo.FindDue(gctx, tenantID, finance.TransactionKindAR, cutoff)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	count := len(payables) + len(receivables)
	if count == 0 {
		return 0, nil
	}
	msg := mail.Message{
		To:      j.recipients,
		Subject: fmt.Sprintf("[ERP] %d transaction(s) due by %s", count, cutoff.Format("2006-01-02")),
		Body:    j.digest(tenantID, now, payables, receivables),
	}
	if err := j.mailer.Send(ctx, msg); err != nil {
		return 0, err
	}
	return count, nil
}

func (j *ReminderJob) digest(tenantID uuid.UUID, now time.Time, payables, receivables []finance.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tenant: %s\nDate: %s\n", tenantID, now.Format("2006-01-02"))
	j.section(&b, "Payables (AP)", now, payables)
	j.section(&b, "Receivables (AR)", now, receivables)
	return b.String()
}

func (j *ReminderJob) section(b *strings.Builder, title string, now time.Time, txns []finance.Transaction) {
	if len(txns) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	total := decimal.Zero
	for i := range txns {
		t := &txns[i]
		outstanding := t.Outstanding()
		total = total.Add(outstanding)

		state := j.printer.Sprintf("due in %d day(s)", t.DaysUntilDue(now))
		if t.IsOverdue(now) {
			state = j.printer.Sprintf("OVERDUE %d day(s)", -t.DaysUntilDue(now))
		}
		fmt.Fprintf(b, "- %s  %s  %s  %s  (%s)\n",
			t.Number, t.PartnerName, t.DueDate.Format("2006-01-02"), j.money(outstanding), state)
	}
	fmt.Fprintf(b, "Total outstanding: %s\n", j.money(total))
}

// money rounds to cents before the float conversion used for locale grouping
func (j *ReminderJob) money(amount decimal.Decimal) string {
	return j.printer.Sprintf("%v %.2f", j.unit, amount.Round(2).InexactFloat64())
}
