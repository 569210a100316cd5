package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// AccountService handles the chart of accounts
type AccountService struct {
	repo   finance.AccountRepository
	logger *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(repo finance.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// Create creates a new ledger account
func (s *AccountService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := finance.NewAccount(tenantID, req.Code, req.Name, finance.AccountType(req.Type))
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(ctx, tenantID, account.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Account with this code already exists")
	}

	if req.ParentID != nil {
		if err := s.setParent(ctx, tenantID, account, *req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("Account created", zap.String("account_id", account.ID.String()), zap.String("code", account.Code))

	response := ToAccountResponse(account)
	return &response, nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// List retrieves a page of accounts
func (s *AccountService) List(ctx context.Context, tenantID uuid.UUID, filter AccountListFilter) ([]AccountResponse, int64, error) {
	domainFilter := filter.toFilter()

	accounts, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses, total, nil
}

// Update updates an account
func (s *AccountService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := account.Update(req.Name, finance.AccountType(req.Type)); err != nil {
		return nil, err
	}

	switch {
	case req.ClearParent:
		if err := account.SetParent(nil); err != nil {
			return nil, err
		}
	case req.ParentID != nil:
		if err := s.setParent(ctx, tenantID, account, *req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		account.SetActive(*req.IsActive)
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Delete deletes an account
func (s *AccountService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}

func (s *AccountService) setParent(ctx context.Context, tenantID uuid.UUID, account *finance.Account, parentID uuid.UUID) error {
	parent, err := s.repo.FindByIDForTenant(ctx, tenantID, parentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_PARENT", "Parent account does not exist")
		}
		return err
	}
	return account.SetParent(parent)
}
