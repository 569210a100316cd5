package finance

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultDueWindowDays = 7

// TransactionService handles accounts payable and receivable
type TransactionService struct {
	repo         finance.TransactionRepository
	vendorRepo   partner.VendorRepository
	customerRepo partner.CustomerRepository
	bankRepo     finance.BankAccountRepository
	txManager    shared.TransactionManager
	logger       *zap.Logger
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	repo finance.TransactionRepository,
	vendorRepo partner.VendorRepository,
	customerRepo partner.CustomerRepository,
	bankRepo finance.BankAccountRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		repo:         repo,
		vendorRepo:   vendorRepo,
		customerRepo: customerRepo,
		bankRepo:     bankRepo,
		txManager:    txManager,
		logger:       logger,
		now:          time.Now,
	}
}

// Create opens a manual AP (vendor) or AR (customer) transaction. Without a
// due date the partner's payment terms apply.
func (s *TransactionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	kind := finance.TransactionKind(req.Kind)
	name, termDays, err := s.partner(ctx, tenantID, kind, req.PartnerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	issue := today(now)
	if req.IssueDate != nil && !req.IssueDate.IsZero() {
		issue = *req.IssueDate
	}
	due := issue.AddDate(0, 0, termDays)
	if req.DueDate != nil && !req.DueDate.IsZero() {
		due = *req.DueDate
	}

	txn, err := finance.NewTransaction(tenantID, kind, shared.GenerateNumber(string(kind), now), req.PartnerID, name, req.Amount, issue, due)
	if err != nil {
		return nil, err
	}
	if req.Note != "" {
		if err := txn.Update(txn.DueDate, req.Note); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, txn); err != nil {
		return nil, err
	}
	s.logger.Info("Transaction opened",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("kind", string(txn.Kind)),
		zap.String("amount", txn.Amount.String()))

	response := ToTransactionResponse(txn, now)
	return &response, nil
}

// GetByID retrieves a transaction with its payments
func (s *TransactionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn, s.now())
	return &response, nil
}

// List retrieves a page of transactions
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := filter.toFilter()

	txns, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i], now)
	}
	return responses, total, nil
}

// Update changes the due date and note of an unsettled transaction
func (s *TransactionService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	txn, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := txn.Update(req.DueDate, req.Note); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, txn); err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn, s.now())
	return &response, nil
}

// ApplyPayment records a payment. With a bank account, AP payments withdraw
// from it and AR payments deposit into it, atomically with the payment.
func (s *TransactionService) ApplyPayment(ctx context.Context, tenantID, id uuid.UUID, req PaymentRequest) (*TransactionResponse, error) {
	paidAt := s.now()
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = *req.PaidAt
	}
	bankID := req.BankAccountID
	if bankID != nil && *bankID == uuid.Nil {
		bankID = nil
	}

	var txn *finance.Transaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		txn, err = s.repo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if _, err := txn.ApplyPayment(req.Amount, paidAt, bankID, req.Note); err != nil {
			return err
		}
		if bankID != nil {
			withdraw := txn.Kind == finance.TransactionKindAP
			if err := adjustBalance(ctx, s.bankRepo, tenantID, *bankID, withdraw, req.Amount); err != nil {
				return err
			}
		}
		return s.repo.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Payment applied",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("status", string(txn.Status)))

	response := ToTransactionResponse(txn, s.now())
	return &response, nil
}

// Cancel voids an open transaction without payments
func (s *TransactionService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := txn.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, txn); err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn, s.now())
	return &response, nil
}

// Delete removes a cancelled or unreferenced open transaction
func (s *TransactionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	txn, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if txn.ReferenceID != nil && txn.Status != finance.TransactionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Transactions raised from orders are cancelled with the order")
	}
	if len(txn.Payments) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Transactions with payments cannot be deleted")
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}

// ListDue returns unsettled transactions due within the window, overdue ones
// first, ordered by due date.
func (s *TransactionService) ListDue(ctx context.Context, tenantID uuid.UUID, filter DueFilter) ([]TransactionResponse, error) {
	days := filter.Days
	if days == 0 {
		days = defaultDueWindowDays
	}
	now := s.now()
	cutoff := today(now).AddDate(0, 0, days)

	kinds := []finance.TransactionKind{finance.TransactionKindAP, finance.TransactionKindAR}
	if filter.Kind != "" {
		kinds = []finance.TransactionKind{finance.TransactionKind(filter.Kind)}
	}

	var due []finance.Transaction
	for _, kind := range kinds {
		txns, err := s.repo.FindDue(ctx, tenantID, kind, cutoff)
		if err != nil {
			return nil, err
		}
		due = append(due, txns...)
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})

	responses := make([]TransactionResponse, len(due))
	for i := range due {
		responses[i] = ToTransactionResponse(&due[i], now)
	}
	return responses, nil
}

// partner resolves the vendor or customer behind a transaction
func (s *TransactionService) partner(ctx context.Context, tenantID uuid.UUID, kind finance.TransactionKind, id uuid.UUID) (string, int, error) {
	switch kind {
	case finance.TransactionKindAP:
		vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return "", 0, shared.NewDomainError("INVALID_PARTNER", "Vendor does not exist")
			}
			return "", 0, err
		}
		return vendor.Name, vendor.PaymentTermDays, nil
	case finance.TransactionKindAR:
		customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return "", 0, shared.NewDomainError("INVALID_PARTNER", "Customer does not exist")
			}
			return "", 0, err
		}
		return customer.Name, customer.PaymentTermDays, nil
	default:
		return "", 0, shared.NewDomainError("INVALID_KIND", "Kind must be AP or AR")
	}
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
