package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ---- accounts ----

// CreateAccountRequest represents a request to create a ledger account
type CreateAccountRequest struct {
	Code     string     `json:"code" binding:"required,min=1,max=50" example:"6100"`
	Name     string     `json:"name" binding:"required,min=1,max=200" example:"Office Supplies"`
	Type     string     `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE" example:"EXPENSE"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateAccountRequest represents a request to update a ledger account
type UpdateAccountRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Type        string     `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ClearParent bool       `json:"clear_parent"`
	IsActive    *bool      `json:"is_active"`
}

// AccountResponse represents a ledger account in API responses
type AccountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Search   string     `form:"search"`
	Type     string     `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID *uuid.UUID `form:"parent_id"`
	IsActive *bool      `form:"is_active"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f AccountListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("type", f.Type).
		With("parent_id", f.ParentID).
		With("is_active", f.IsActive)
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *finance.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		ParentID:  a.ParentID,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
}

// ---- bank accounts ----

// CreateBankAccountRequest represents a request to create a bank account
type CreateBankAccountRequest struct {
	Code           string           `json:"code" binding:"required,min=1,max=50" example:"BCA-01"`
	BankName       string           `json:"bank_name" binding:"required,max=100" example:"BCA"`
	AccountNumber  string           `json:"account_number" binding:"required,max=50" example:"1234567890"`
	HolderName     string           `json:"holder_name" binding:"required,max=200" example:"PT Kain Nova"`
	Currency       string           `json:"currency" binding:"omitempty,len=3" example:"IDR"`
	AccountID      *uuid.UUID       `json:"account_id"`
	OpeningBalance *decimal.Decimal `json:"opening_balance" binding:"omitempty,decimal_gte0" swaggertype:"string"`
}

// UpdateBankAccountRequest represents a request to update a bank account
type UpdateBankAccountRequest struct {
	BankName      string     `json:"bank_name" binding:"required,max=100"`
	AccountNumber string     `json:"account_number" binding:"required,max=50"`
	HolderName    string     `json:"holder_name" binding:"required,max=200"`
	Currency      string     `json:"currency" binding:"omitempty,len=3"`
	AccountID     *uuid.UUID `json:"account_id"`
	IsActive      *bool      `json:"is_active"`
}

// MoneyRequest carries an amount to deposit or withdraw
type MoneyRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"decimal_gte0" swaggertype:"string" example:"250000"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance" swaggertype:"string"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// BankAccountListFilter represents filter options for the bank account list
type BankAccountListFilter struct {
	Search   string `form:"search"`
	Currency string `form:"currency"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f BankAccountListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("currency", f.Currency).
		With("is_active", f.IsActive)
}

// ToBankAccountResponse converts a domain BankAccount to BankAccountResponse
func ToBankAccountResponse(b *finance.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            b.ID,
		Code:          b.Code,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		HolderName:    b.HolderName,
		Currency:      b.Currency,
		Balance:       b.Balance,
		AccountID:     b.AccountID,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Version:       b.Version,
	}
}

// ---- expenses ----

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Date          *time.Time      `json:"date"`
	AccountID     uuid.UUID       `json:"account_id" binding:"required"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gte0" swaggertype:"string" example:"150000"`
	TaxID         *uuid.UUID      `json:"tax_id"`
	Description   string          `json:"description" binding:"max=2000" example:"Printer paper"`
}

// UpdateExpenseRequest represents a request to update a draft expense
type UpdateExpenseRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	AccountID     uuid.UUID       `json:"account_id" binding:"required"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gte0" swaggertype:"string"`
	TaxID         *uuid.UUID      `json:"tax_id"`
	Description   string          `json:"description" binding:"max=2000"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	AccountID     uuid.UUID       `json:"account_id"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	TaxID         *uuid.UUID      `json:"tax_id,omitempty"`
	TaxAmount     decimal.Decimal `json:"tax_amount" swaggertype:"string"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	Description   string          `json:"description"`
	ReceiptPath   string          `json:"receipt_path,omitempty"`
	Status        string          `json:"status"`
	PostedAt      *time.Time      `json:"posted_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	AccountID     *uuid.UUID `form:"account_id"`
	BankAccountID *uuid.UUID `form:"bank_account_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ExpenseListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("account_id", f.AccountID).
		With("bank_account_id", f.BankAccountID).
		With("from", f.From).
		With("to", f.To)
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Number:        e.Number,
		Date:          e.Date,
		AccountID:     e.AccountID,
		BankAccountID: e.BankAccountID,
		Amount:        e.Amount,
		TaxID:         e.TaxID,
		TaxAmount:     e.TaxAmount,
		Total:         e.Total(),
		Description:   e.Description,
		ReceiptPath:   e.ReceiptPath,
		Status:        string(e.Status),
		PostedAt:      e.PostedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Version:       e.Version,
	}
}

// ---- assets ----

// AssetRequest represents a request to register or update a fixed asset
type AssetRequest struct {
	Code             string          `json:"code" binding:"omitempty,max=50" example:"FA-001"`
	Name             string          `json:"name" binding:"required,min=1,max=200" example:"Delivery Van"`
	Category         string          `json:"category" binding:"max=100" example:"Vehicles"`
	AcquisitionDate  time.Time       `json:"acquisition_date" binding:"required"`
	Cost             decimal.Decimal `json:"cost" binding:"decimal_gte0" swaggertype:"string" example:"240000000"`
	SalvageValue     decimal.Decimal `json:"salvage_value" binding:"decimal_gte0" swaggertype:"string" example:"0"`
	UsefulLifeMonths int             `json:"useful_life_months" binding:"required,min=1,max=600" example:"96"`
}

// DisposeAssetRequest represents a request to dispose an asset
type DisposeAssetRequest struct {
	Date     *time.Time      `json:"date"`
	Proceeds decimal.Decimal `json:"proceeds" binding:"decimal_gte0" swaggertype:"string"`
}

// AssetResponse represents a fixed asset in API responses. Depreciation
// figures are as of the request time.
type AssetResponse struct {
	ID                      uuid.UUID       `json:"id"`
	Code                    string          `json:"code"`
	Name                    string          `json:"name"`
	Category                string          `json:"category"`
	AcquisitionDate         time.Time       `json:"acquisition_date"`
	Cost                    decimal.Decimal `json:"cost" swaggertype:"string"`
	SalvageValue            decimal.Decimal `json:"salvage_value" swaggertype:"string"`
	UsefulLifeMonths        int             `json:"useful_life_months"`
	MonthlyDepreciation     decimal.Decimal `json:"monthly_depreciation" swaggertype:"string"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation" swaggertype:"string"`
	BookValue               decimal.Decimal `json:"book_value" swaggertype:"string"`
	Status                  string          `json:"status"`
	DisposedAt              *time.Time      `json:"disposed_at,omitempty"`
	DisposalValue           decimal.Decimal `json:"disposal_value" swaggertype:"string"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
	Version                 int             `json:"version"`
}

// DepreciationEntryResponse is one month of a depreciation schedule
type DepreciationEntryResponse struct {
	Period       int             `json:"period"`
	Date         time.Time       `json:"date"`
	Depreciation decimal.Decimal `json:"depreciation" swaggertype:"string"`
	Accumulated  decimal.Decimal `json:"accumulated" swaggertype:"string"`
	BookValue    decimal.Decimal `json:"book_value" swaggertype:"string"`
}

// DisposalResponse reports the outcome of a disposal
type DisposalResponse struct {
	Asset AssetResponse   `json:"asset"`
	Gain  decimal.Decimal `json:"gain" swaggertype:"string"`
}

// AssetListFilter represents filter options for the asset list
type AssetListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE DISPOSED"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f AssetListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("status", f.Status).
		With("category", f.Category)
}

// ToAssetResponse converts a domain Asset to AssetResponse valued at the given time
func ToAssetResponse(a *finance.Asset, at time.Time) AssetResponse {
	return AssetResponse{
		ID:                      a.ID,
		Code:                    a.Code,
		Name:                    a.Name,
		Category:                a.Category,
		AcquisitionDate:         a.AcquisitionDate,
		Cost:                    a.Cost,
		SalvageValue:            a.SalvageValue,
		UsefulLifeMonths:        a.UsefulLifeMonths,
		MonthlyDepreciation:     a.MonthlyDepreciation(),
		AccumulatedDepreciation: a.AccumulatedDepreciation(at),
		BookValue:               a.BookValue(at),
		Status:                  string(a.Status),
		DisposedAt:              a.DisposedAt,
		DisposalValue:           a.DisposalValue,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
		Version:                 a.Version,
	}
}

// ---- AP/AR transactions ----

// CreateTransactionRequest represents a request to open a manual AP/AR transaction
type CreateTransactionRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=AP AR" example:"AR"`
	PartnerID uuid.UUID       `json:"partner_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"decimal_gte0" swaggertype:"string" example:"1500000"`
	IssueDate *time.Time      `json:"issue_date"`
	DueDate   *time.Time      `json:"due_date"`
	Note      string          `json:"note" binding:"max=500"`
}

// UpdateTransactionRequest represents a request to update an unsettled transaction
type UpdateTransactionRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
	Note    string    `json:"note" binding:"max=500"`
}

// PaymentRequest represents a payment against a transaction. When a bank
// account is given, AP payments withdraw from it and AR payments deposit into it.
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gte0" swaggertype:"string" example:"500000"`
	PaidAt        *time.Time      `json:"paid_at"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	Note          string          `json:"note" binding:"max=500"`
}

// PaymentResponse represents a transaction payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	PaidAt        time.Time       `json:"paid_at"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// TransactionResponse represents an AP/AR transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID         `json:"id"`
	Kind          string            `json:"kind"`
	Number        string            `json:"number"`
	PartnerID     uuid.UUID         `json:"partner_id"`
	PartnerName   string            `json:"partner_name"`
	ReferenceType string            `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID        `json:"reference_id,omitempty"`
	Amount        decimal.Decimal   `json:"amount" swaggertype:"string"`
	PaidAmount    decimal.Decimal   `json:"paid_amount" swaggertype:"string"`
	Outstanding   decimal.Decimal   `json:"outstanding" swaggertype:"string"`
	IssueDate     time.Time         `json:"issue_date"`
	DueDate       time.Time         `json:"due_date"`
	DaysUntilDue  int               `json:"days_until_due"`
	IsOverdue     bool              `json:"is_overdue"`
	Status        string            `json:"status"`
	Note          string            `json:"note,omitempty"`
	Payments      []PaymentResponse `json:"payments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Version       int               `json:"version"`
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	Search        string     `form:"search"`
	Kind          string     `form:"kind" binding:"omitempty,oneof=AP AR"`
	Status        string     `form:"status" binding:"omitempty,oneof=OPEN PARTIAL PAID CANCELLED"`
	PartnerID     *uuid.UUID `form:"partner_id"`
	ReferenceType string     `form:"reference_type"`
	ReferenceID   *uuid.UUID `form:"reference_id"`
	DueFrom       *time.Time `form:"due_from" time_format:"2006-01-02"`
	DueTo         *time.Time `form:"due_to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f TransactionListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("kind", f.Kind).
		With("status", f.Status).
		With("partner_id", f.PartnerID).
		With("reference_type", f.ReferenceType).
		With("reference_id", f.ReferenceID).
		With("due_from", f.DueFrom).
		With("due_to", f.DueTo)
}

// DueFilter selects unsettled transactions due within Days from today, overdue ones included
type DueFilter struct {
	Kind string `form:"kind" binding:"omitempty,oneof=AP AR"`
	Days int    `form:"days" binding:"omitempty,min=0,max=365"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse as of at
func ToTransactionResponse(t *finance.Transaction, at time.Time) TransactionResponse {
	payments := make([]PaymentResponse, len(t.Payments))
	for i, p := range t.Payments {
		payments[i] = PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			PaidAt:        p.PaidAt,
			BankAccountID: p.BankAccountID,
			Note:          p.Note,
		}
	}
	return TransactionResponse{
		ID:            t.ID,
		Kind:          string(t.Kind),
		Number:        t.Number,
		PartnerID:     t.PartnerID,
		PartnerName:   t.PartnerName,
		ReferenceType: t.ReferenceType,
		ReferenceID:   t.ReferenceID,
		Amount:        t.Amount,
		PaidAmount:    t.PaidAmount,
		Outstanding:   t.Outstanding(),
		IssueDate:     t.IssueDate,
		DueDate:       t.DueDate,
		DaysUntilDue:  t.DaysUntilDue(at),
		IsOverdue:     t.IsOverdue(at),
		Status:        string(t.Status),
		Note:          t.Note,
		Payments:      payments,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
}
