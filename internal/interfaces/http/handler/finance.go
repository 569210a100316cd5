package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/finance"
)

// FinanceHandler serves the chart of accounts, bank accounts, expenses,
// fixed assets and AP/AR transactions
type FinanceHandler struct {
	BaseHandler
	accounts     *financeapp.AccountService
	bankAccounts *financeapp.BankAccountService
	expenses     *financeapp.ExpenseService
	assets       *financeapp.AssetService
	transactions *financeapp.TransactionService
	reminders    *financeapp.ReminderJob
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	accounts *financeapp.AccountService,
	bankAccounts *financeapp.BankAccountService,
	expenses *financeapp.ExpenseService,
	assets *financeapp.AssetService,
	transactions *financeapp.TransactionService,
	reminders *financeapp.ReminderJob,
) *FinanceHandler {
	return &FinanceHandler{
		accounts:     accounts,
		bankAccounts: bankAccounts,
		expenses:     expenses,
		assets:       assets,
		transactions: transactions,
		reminders:    reminders,
	}
}


// CreateAccount godoc
// @ID           createAccount
// @Summary      Create an account
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateAccountRequest true "Account"
// @Success      201 {object} APIResponse[financeapp.AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/accounts [post]
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req financeapp.CreateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.accounts.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetAccount godoc
// @ID           getAccount
// @Summary      Get an account
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.AccountResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/accounts/{id} [get]
func (h *FinanceHandler) GetAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "account")
	if !ok {
		return
	}
	account, err := h.accounts.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListAccounts godoc
// @ID           listAccounts
// @Summary      List accounts
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.AccountListFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.AccountResponse]
// @Router       /finance/accounts [get]
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.AccountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.accounts.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateAccount godoc
// @ID           updateAccount
// @Summary      Update an account
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body financeapp.UpdateAccountRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.AccountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/accounts/{id} [put]
func (h *FinanceHandler) UpdateAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "account")
	if !ok {
		return
	}
	var req financeapp.UpdateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.accounts.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteAccount godoc
// @ID           deleteAccount
// @Summary      Delete an account
// @Tags         finance
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Account ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/accounts/{id} [delete]
func (h *FinanceHandler) DeleteAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "account")
	if !ok {
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateBankAccount godoc
// @ID           createBankAccount
// @Summary      Create a bank account
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateBankAccountRequest true "Bank account"
// @Success      201 {object} APIResponse[financeapp.BankAccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/bank-accounts [post]
func (h *FinanceHandler) CreateBankAccount(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req financeapp.CreateBankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.bankAccounts.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetBankAccount godoc
// @ID           getBankAccount
// @Summary      Get a bank account
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.BankAccountResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/bank-accounts/{id} [get]
func (h *FinanceHandler) GetBankAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "bank account")
	if !ok {
		return
	}
	account, err := h.bankAccounts.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListBankAccounts godoc
// @ID           listBankAccounts
// @Summary      List bank accounts
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.BankAccountListFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.BankAccountResponse]
// @Router       /finance/bank-accounts [get]
func (h *FinanceHandler) ListBankAccounts(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.BankAccountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.bankAccounts.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateBankAccount godoc
// @ID           updateBankAccount
// @Summary      Update a bank account
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body financeapp.UpdateBankAccountRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.BankAccountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/bank-accounts/{id} [put]
func (h *FinanceHandler) UpdateBankAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "bank account")
	if !ok {
		return
	}
	var req financeapp.UpdateBankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.bankAccounts.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteBankAccount godoc
// @ID           deleteBankAccount
// @Summary      Delete a bank account
// @Tags         finance
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/bank-accounts/{id} [delete]
func (h *FinanceHandler) DeleteBankAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "bank account")
	if !ok {
		return
	}
	if err := h.bankAccounts.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DepositBankAccount godoc
// @ID           depositBankAccount
// @Summary      Deposit into a bank account
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body financeapp.MoneyRequest true "Request"
// @Success      200 {object} APIResponse[financeapp.BankAccountResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/bank-accounts/{id}/deposit [post]
func (h *FinanceHandler) DepositBankAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "bank account")
	if !ok {
		return
	}
	var req financeapp.MoneyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.bankAccounts.Deposit(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// WithdrawBankAccount godoc
// @ID           withdrawBankAccount
// @Summary      Withdraw from a bank account
// @Description  Fails with INSUFFICIENT_BALANCE when the balance would go negative.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body financeapp.MoneyRequest true "Request"
// @Success      200 {object} APIResponse[financeapp.BankAccountResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/bank-accounts/{id}/withdraw [post]
func (h *FinanceHandler) WithdrawBankAccount(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "bank account")
	if !ok {
		return
	}
	var req financeapp.MoneyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.bankAccounts.Withdraw(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// CreateExpense godoc
// @ID           createExpense
// @Summary      Create an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/expenses [post]
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req financeapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.expenses.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetExpense godoc
// @ID           getExpense
// @Summary      Get an expense
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/expenses/{id} [get]
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "expense")
	if !ok {
		return
	}
	expense, err := h.expenses.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// ListExpenses godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.ExpenseListFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.ExpenseResponse]
// @Router       /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.expenses.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateExpense godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "expense")
	if !ok {
		return
	}
	var req financeapp.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.expenses.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// DeleteExpense godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         finance
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "expense")
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadExpenseReceipt godoc
// @ID           uploadExpenseReceipt
// @Summary      Attach a receipt to an expense
// @Description  Replaces any previous receipt.
// @Tags         finance
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Expense ID" format(uuid)
// @Param        file formData file true "Receipt image or PDF"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /finance/expenses/{id}/receipt [post]
func (h *FinanceHandler) UploadExpenseReceipt(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "expense")
	if !ok {
		return
	}
	file, filename, ok := h.formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	expense, err := h.expenses.UploadReceipt(c.Request.Context(), tenantID, id, filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// PostExpense godoc
// @ID           postExpense
// @Summary      Post an expense
// @Description  Debits the paying bank account when one is set.
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/expenses/{id}/post [post]
func (h *FinanceHandler) PostExpense(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "expense")
	if !ok {
		return
	}
	expense, err := h.expenses.Post(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// CreateAsset godoc
// @ID           createAsset
// @Summary      Create a fixed asset
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.AssetRequest true "Asset"
// @Success      201 {object} APIResponse[financeapp.AssetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/assets [post]
func (h *FinanceHandler) CreateAsset(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req financeapp.AssetRequest
	if !h.bindJSON(c, &req) {
		return
	}
	asset, err := h.assets.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, asset)
}

// GetAsset godoc
// @ID           getAsset
// @Summary      Get a fixed asset
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.AssetResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/assets/{id} [get]
func (h *FinanceHandler) GetAsset(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "asset")
	if !ok {
		return
	}
	asset, err := h.assets.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, asset)
}

// ListAssets godoc
// @ID           listAssets
// @Summary      List fixed assets
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.AssetListFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.AssetResponse]
// @Router       /finance/assets [get]
func (h *FinanceHandler) ListAssets(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.AssetListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.assets.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateAsset godoc
// @ID           updateAsset
// @Summary      Update a fixed asset
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body financeapp.AssetRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.AssetResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/assets/{id} [put]
func (h *FinanceHandler) UpdateAsset(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "asset")
	if !ok {
		return
	}
	var req financeapp.AssetRequest
	if !h.bindJSON(c, &req) {
		return
	}
	asset, err := h.assets.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, asset)
}

// DeleteAsset godoc
// @ID           deleteAsset
// @Summary      Delete a fixed asset
// @Tags         finance
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Asset ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/assets/{id} [delete]
func (h *FinanceHandler) DeleteAsset(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "asset")
	if !ok {
		return
	}
	if err := h.assets.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetAssetSchedule godoc
// @ID           getAssetSchedule
// @Summary      Straight-line depreciation schedule of an asset
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[[]financeapp.DepreciationEntryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/assets/{id}/depreciation [get]
func (h *FinanceHandler) GetAssetSchedule(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "asset")
	if !ok {
		return
	}
	entries, err := h.assets.Schedule(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// DisposeAsset godoc
// @ID           disposeAsset
// @Summary      Dispose a fixed asset
// @Description  Date defaults to today and proceeds to zero.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body financeapp.DisposeAssetRequest false "Request"
// @Success      200 {object} APIResponse[financeapp.DisposalResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/assets/{id}/dispose [post]
func (h *FinanceHandler) DisposeAsset(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "asset")
	if !ok {
		return
	}
	var req financeapp.DisposeAssetRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	disposal, err := h.assets.Dispose(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, disposal)
}

// CreateTransaction godoc
// @ID           createTransaction
// @Summary      Create an AP/AR transaction
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[financeapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req financeapp.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	txn, err := h.transactions.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}

// GetTransaction godoc
// @ID           getTransaction
// @Summary      Get an AP/AR transaction
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/transactions/{id} [get]
func (h *FinanceHandler) GetTransaction(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}
	txn, err := h.transactions.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// ListTransactions godoc
// @ID           listTransactions
// @Summary      List AP/AR transactions
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.TransactionListFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.TransactionResponse]
// @Router       /finance/transactions [get]
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.transactions.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateTransaction godoc
// @ID           updateTransaction
// @Summary      Update an AP/AR transaction
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body financeapp.UpdateTransactionRequest true "Changes"
// @Success      200 {object} APIResponse[financeapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /finance/transactions/{id} [put]
func (h *FinanceHandler) UpdateTransaction(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}
	var req financeapp.UpdateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	txn, err := h.transactions.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// DeleteTransaction godoc
// @ID           deleteTransaction
// @Summary      Delete an AP/AR transaction
// @Tags         finance
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/transactions/{id} [delete]
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}
	if err := h.transactions.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ApplyTransactionPayment godoc
// @ID           applyTransactionPayment
// @Summary      Record a payment against a transaction
// @Description  Payments above the outstanding amount fail with OVERPAYMENT.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body financeapp.PaymentRequest true "Request"
// @Success      200 {object} APIResponse[financeapp.TransactionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/transactions/{id}/payments [post]
func (h *FinanceHandler) ApplyTransactionPayment(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}
	var req financeapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	txn, err := h.transactions.ApplyPayment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// CancelTransaction godoc
// @ID           cancelTransaction
// @Summary      Cancel an unpaid transaction
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.TransactionResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /finance/transactions/{id}/cancel [post]
func (h *FinanceHandler) CancelTransaction(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "transaction")
	if !ok {
		return
	}
	txn, err := h.transactions.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txn)
}

// ListDueTransactions godoc
// @ID           listDueTransactions
// @Summary      List unsettled transactions due soon
// @Description  Overdue transactions are included. days defaults to the reminder window.
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query financeapp.DueFilter false "Filter"
// @Success      200 {object} APIResponse[[]financeapp.TransactionResponse]
// @Router       /finance/transactions/due [get]
func (h *FinanceHandler) ListDueTransactions(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter financeapp.DueFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, err := h.transactions.ListDue(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// RunReminders godoc
// @ID           runReminders
// @Summary      Send due-date reminder digests now
// @Description  Runs the same job as the scheduler, across every tenant.
// @Tags         finance
// @Produce      json
// @Success      200 {object} APIResponse[financeapp.ReminderSummary]
// @Router       /finance/reminders/run [post]
func (h *FinanceHandler) RunReminders(c *gin.Context) {
	summary, err := h.reminders.Send(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
