package finance

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/application/upload"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService records expenses and pays them out of bank accounts
type ExpenseService struct {
	repo        finance.ExpenseRepository
	accountRepo finance.AccountRepository
	bankRepo    finance.BankAccountRepository
	taxRepo     catalog.TaxRepository
	files       upload.FileStore
	txManager   shared.TransactionManager
	logger      *zap.Logger
	now         func() time.Time
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	repo finance.ExpenseRepository,
	accountRepo finance.AccountRepository,
	bankRepo finance.BankAccountRepository,
	taxRepo catalog.TaxRepository,
	files upload.FileStore,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		repo:        repo,
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
		taxRepo:     taxRepo,
		files:       files,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Create records a draft expense
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.ensureAccount(ctx, tenantID, req.AccountID); err != nil {
		return nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	expense, err := finance.NewExpense(tenantID, shared.GenerateNumber("EXP", now), date, req.AccountID, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.applyRefs(ctx, tenantID, expense, req.BankAccountID, req.TaxID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("number", expense.Number),
		zap.String("total", expense.Total().String()))

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves a page of expenses
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := filter.toFilter()

	expenses, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, total, nil
}

// Update changes a draft expense
func (s *ExpenseService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAccount(ctx, tenantID, req.AccountID); err != nil {
		return nil, err
	}
	if err := expense.Update(req.Date, req.AccountID, req.Amount, req.Description); err != nil {
		return nil, err
	}
	if err := s.applyRefs(ctx, tenantID, expense, req.BankAccountID, req.TaxID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, expense); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// UploadReceipt attaches a receipt scan, replacing any previous one
func (s *ExpenseService) UploadReceipt(ctx context.Context, tenantID, id uuid.UUID, filename string, r io.Reader) (*ExpenseResponse, error) {
	expense, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	file, err := upload.Replace(ctx, s.files, s.logger, tenantID, upload.CategoryReceipts, filename, r, expense.ReceiptPath)
	if err != nil {
		return nil, err
	}
	expense.AttachReceipt(file.Path)

	if err := s.repo.Save(ctx, expense); err != nil {
		if derr := s.files.DeleteByPath(ctx, tenantID, file.Path); derr != nil {
			s.logger.Warn("Failed to remove orphaned receipt", zap.String("path", file.Path), zap.Error(derr))
		}
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// Post finalizes an expense. When it is paid from a bank account the total is
// withdrawn in the same transaction.
func (s *ExpenseService) Post(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	var expense *finance.Expense
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		expense, err = s.repo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := expense.Post(s.now()); err != nil {
			return err
		}
		if expense.BankAccountID != nil {
			if err := adjustBalance(ctx, s.bankRepo, tenantID, *expense.BankAccountID, true, expense.Total()); err != nil {
				return err
			}
		}
		return s.repo.Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Expense posted", zap.String("expense_id", expense.ID.String()), zap.String("number", expense.Number))

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete deletes a draft expense and its receipt
func (s *ExpenseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	expense, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !expense.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Posted expenses cannot be deleted")
	}
	if err := s.repo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if expense.ReceiptPath != "" {
		if err := s.files.DeleteByPath(ctx, tenantID, expense.ReceiptPath); err != nil {
			s.logger.Warn("Failed to remove receipt", zap.String("path", expense.ReceiptPath), zap.Error(err))
		}
	}
	return nil
}

func (s *ExpenseService) applyRefs(ctx context.Context, tenantID uuid.UUID, expense *finance.Expense, bankAccountID, taxID *uuid.UUID) error {
	if bankAccountID != nil && *bankAccountID != uuid.Nil {
		bank, err := s.bankRepo.FindByIDForTenant(ctx, tenantID, *bankAccountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account does not exist")
			}
			return err
		}
		if !bank.IsActive {
			return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account is inactive")
		}
	}
	if err := expense.SetBankAccount(bankAccountID); err != nil {
		return err
	}

	taxAmount := decimal.Zero
	if taxID != nil && *taxID != uuid.Nil {
		tax, err := s.taxRepo.FindByIDForTenant(ctx, tenantID, *taxID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_TAX", "Tax does not exist")
			}
			return err
		}
		if !tax.IsActive || !tax.AppliesToPurchases() {
			return shared.NewDomainError("INVALID_TAX", "Tax cannot be applied to expenses")
		}
		taxAmount = tax.Apply(expense.Amount)
	}
	return expense.SetTax(taxID, taxAmount)
}

func (s *ExpenseService) ensureAccount(ctx context.Context, tenantID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ACCOUNT", "Expense account does not exist")
		}
		return err
	}
	if !account.IsActive {
		return shared.NewDomainError("INVALID_ACCOUNT", "Expense account is inactive")
	}
	return nil
}
