package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BankAccountService handles bank accounts and their balances
type BankAccountService struct {
	repo        finance.BankAccountRepository
	accountRepo finance.AccountRepository
	txManager   shared.TransactionManager
	logger      *zap.Logger
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(
	repo finance.BankAccountRepository,
	accountRepo finance.AccountRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *BankAccountService {
	return &BankAccountService{
		repo:        repo,
		accountRepo: accountRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create creates a bank account, optionally with an opening balance
func (s *BankAccountService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	bank, err := finance.NewBankAccount(tenantID, req.Code, req.BankName, req.AccountNumber, req.HolderName, req.Currency)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(ctx, tenantID, bank.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bank account with this code already exists")
	}

	if req.AccountID != nil {
		if err := s.ensureAssetAccount(ctx, tenantID, *req.AccountID); err != nil {
			return nil, err
		}
		bank.LinkAccount(req.AccountID)
	}
	if req.OpeningBalance != nil && req.OpeningBalance.IsPositive() {
		if err := bank.Deposit(*req.OpeningBalance); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, bank); err != nil {
		return nil, err
	}
	s.logger.Info("Bank account created", zap.String("bank_account_id", bank.ID.String()), zap.String("code", bank.Code))

	response := ToBankAccountResponse(bank)
	return &response, nil
}

// GetByID retrieves a bank account by ID
func (s *BankAccountService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BankAccountResponse, error) {
	bank, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(bank)
	return &response, nil
}

// List retrieves a page of bank accounts
func (s *BankAccountService) List(ctx context.Context, tenantID uuid.UUID, filter BankAccountListFilter) ([]BankAccountResponse, int64, error) {
	domainFilter := filter.toFilter()

	banks, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BankAccountResponse, len(banks))
	for i := range banks {
		responses[i] = ToBankAccountResponse(&banks[i])
	}
	return responses, total, nil
}

// Update updates bank details. The balance only moves through Deposit, Withdraw and payments.
func (s *BankAccountService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBankAccountRequest) (*BankAccountResponse, error) {
	bank, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := bank.Update(req.BankName, req.AccountNumber, req.HolderName, req.Currency); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if *req.AccountID != uuid.Nil {
			if err := s.ensureAssetAccount(ctx, tenantID, *req.AccountID); err != nil {
				return nil, err
			}
		}
		bank.LinkAccount(req.AccountID)
	}
	if req.IsActive != nil {
		bank.SetActive(*req.IsActive)
	}

	if err := s.repo.Save(ctx, bank); err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(bank)
	return &response, nil
}

// Delete deletes a bank account
func (s *BankAccountService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	bank, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !bank.Balance.IsZero() {
		return shared.ErrInUse
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}

// Deposit adds money to a bank account
func (s *BankAccountService) Deposit(ctx context.Context, tenantID, id uuid.UUID, req MoneyRequest) (*BankAccountResponse, error) {
	return s.move(ctx, tenantID, id, func(b *finance.BankAccount) error {
		return b.Deposit(req.Amount)
	})
}

// Withdraw takes money out of a bank account
func (s *BankAccountService) Withdraw(ctx context.Context, tenantID, id uuid.UUID, req MoneyRequest) (*BankAccountResponse, error) {
	return s.move(ctx, tenantID, id, func(b *finance.BankAccount) error {
		return b.Withdraw(req.Amount)
	})
}

func (s *BankAccountService) move(ctx context.Context, tenantID, id uuid.UUID, apply func(*finance.BankAccount) error) (*BankAccountResponse, error) {
	var bank *finance.BankAccount
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bank, err = s.repo.FindForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := apply(bank); err != nil {
			return err
		}
		return s.repo.Save(ctx, bank)
	})
	if err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(bank)
	return &response, nil
}

func (s *BankAccountService) ensureAssetAccount(ctx context.Context, tenantID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ACCOUNT", "Ledger account does not exist")
		}
		return err
	}
	if account.Type != finance.AccountTypeAsset {
		return shared.NewDomainError("INVALID_ACCOUNT", "Bank accounts must link to an asset account")
	}
	return nil
}

// adjustBalance moves money on a bank account inside the caller's transaction
func adjustBalance(ctx context.Context, repo finance.BankAccountRepository, tenantID, id uuid.UUID, withdraw bool, amount decimal.Decimal) error {
	bank, err := repo.FindForUpdate(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account does not exist")
		}
		return err
	}
	if withdraw {
		err = bank.Withdraw(amount)
	} else {
		err = bank.Deposit(amount)
	}
	if err != nil {
		return err
	}
	return repo.Save(ctx, bank)
}
