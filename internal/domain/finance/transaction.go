package finance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionKind tells payables from receivables
type TransactionKind string

const (
	TransactionKindAP TransactionKind = "AP"
	TransactionKindAR TransactionKind = "AR"
)

// IsValid checks the kind
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindAP || k == TransactionKindAR
}

// TransactionStatus is the settlement state of an AP/AR transaction
type TransactionStatus string

const (
	TransactionStatusOpen      TransactionStatus = "OPEN"
	TransactionStatusPartial   TransactionStatus = "PARTIAL"
	TransactionStatusPaid      TransactionStatus = "PAID"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// IsTerminal returns true for PAID and CANCELLED
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusPaid || s == TransactionStatusCancelled
}

// Transaction is an amount owed to a vendor (AP) or by a customer (AR)
type Transaction struct {
	shared.TenantAggregateRoot
	Kind          TransactionKind      `gorm:"type:varchar(2);not null;index"`
	Number        string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_transaction_tenant_number,priority:2"`
	PartnerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	PartnerName   string               `gorm:"type:varchar(200);not null"`
	ReferenceType string               `gorm:"type:varchar(30)"`
	ReferenceID   *uuid.UUID           `gorm:"type:uuid;index"`
	Amount        decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	IssueDate     time.Time            `gorm:"type:date;not null"`
	DueDate       time.Time            `gorm:"type:date;not null;index"`
	Status        TransactionStatus    `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Note          string               `gorm:"type:varchar(500)"`
	Payments      []TransactionPayment `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionPayment records one settlement of a transaction
type TransactionPayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt        time.Time       `gorm:"not null"`
	BankAccountID *uuid.UUID      `gorm:"type:uuid"`
	Note          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TransactionPayment) TableName() string {
	return "transaction_payments"
}

// NewTransaction opens an AP or AR transaction
func NewTransaction(tenantID uuid.UUID, kind TransactionKind, number string, partnerID uuid.UUID, partnerName string,
	amount decimal.Decimal, issueDate, dueDate time.Time) (*Transaction, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Kind must be AP or AR")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if issueDate.IsZero() || dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Issue and due dates are required")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		Number:              number,
		PartnerID:           partnerID,
		PartnerName:         strings.TrimSpace(partnerName),
		Amount:              amount,
		PaidAmount:          decimal.Zero,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Status:              TransactionStatusOpen,
	}, nil
}

// SetReference links the document the transaction was raised from
func (t *Transaction) SetReference(refType string, refID uuid.UUID) {
	t.ReferenceType = refType
	if refID != uuid.Nil {
		t.ReferenceID = &refID
	}
	t.IncrementVersion()
}

// Update changes due date and note of an unpaid transaction
func (t *Transaction) Update(dueDate time.Time, note string) error {
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify transaction in %s status", t.Status))
	}
	if dueDate.Before(t.IssueDate) {
		return shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	t.DueDate = dueDate
	t.Note = strings.TrimSpace(note)
	t.IncrementVersion()
	return nil
}

// Outstanding returns the unpaid amount
func (t *Transaction) Outstanding() decimal.Decimal {
	return t.Amount.Sub(t.PaidAmount)
}

// ApplyPayment settles part or all of the outstanding amount
func (t *Transaction) ApplyPayment(amount decimal.Decimal, paidAt time.Time, bankAccountID *uuid.UUID, note string) (*TransactionPayment, error) {
	if t.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to transaction in %s status", t.Status))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(t.Outstanding()) {
		return nil, shared.NewDomainError("OVERPAYMENT",
			fmt.Sprintf("Payment %s exceeds outstanding amount %s", amount, t.Outstanding()))
	}
	payment := TransactionPayment{
		ID:            uuid.New(),
		TransactionID: t.ID,
		Amount:        amount,
		PaidAt:        paidAt,
		BankAccountID: bankAccountID,
		Note:          strings.TrimSpace(note),
	}
	t.Payments = append(t.Payments, payment)
	t.PaidAmount = t.PaidAmount.Add(amount)
	if t.Outstanding().IsZero() {
		t.Status = TransactionStatusPaid
	} else {
		t.Status = TransactionStatusPartial
	}
	t.IncrementVersion()
	return &payment, nil
}

// Cancel voids a transaction with no payments
func (t *Transaction) Cancel() error {
	if t.Status != TransactionStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open transactions without payments can be cancelled")
	}
	t.Status = TransactionStatusCancelled
	t.IncrementVersion()
	return nil
}

// IsOverdue reports whether the due date passed with money outstanding
func (t *Transaction) IsOverdue(at time.Time) bool {
	if t.Status.IsTerminal() {
		return false
	}
	return dateOnly(at).After(dateOnly(t.DueDate))
}

// DaysUntilDue returns calendar days to the due date; negative when overdue
func (t *Transaction) DaysUntilDue(at time.Time) int {
	return int(math.Round(dateOnly(t.DueDate).Sub(dateOnly(at)).Hours() / 24))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
