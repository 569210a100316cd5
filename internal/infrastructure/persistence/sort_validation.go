package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortFields builds a whitelist holding the common fields plus extra
func sortFields(extra ...string) map[string]bool {
	fields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range extra {
		fields[f] = true
	}
	return fields
}

// CommonSortFields contains fields common to every table
var CommonSortFields = sortFields()

var (
	PermissionSortFields    = sortFields("code", "resource", "action")
	RoleSortFields          = sortFields("code", "name", "is_active")
	UserSortFields          = sortFields("username", "email", "display_name", "is_active", "last_login_at")
	VendorSortFields        = sortFields("code", "name", "city", "payment_term_days", "is_active")
	CustomerSortFields      = sortFields("code", "name", "city", "payment_term_days", "credit_limit", "is_active")
	WarehouseSortFields     = sortFields("code", "name", "city", "is_default", "is_active")
	ProductSortFields       = sortFields("code", "name", "unit", "purchase_price", "selling_price", "min_stock", "is_active")
	TaxSortFields           = sortFields("code", "name", "rate", "type", "is_active")
	StockSortFields         = sortFields("warehouse_id", "product_id", "quantity", "unit_cost")
	MovementSortFields      = sortFields("type", "quantity", "balance_after", "reference_type")
	AdjustmentSortFields    = sortFields("number", "status", "posted_at")
	PurchaseOrderSortFields = sortFields("number", "order_date", "expected_date", "status", "total", "confirmed_at", "received_at")
	SalesOrderSortFields    = sortFields("number", "order_date", "expected_date", "status", "total", "confirmed_at", "delivered_at")
	AccountSortFields       = sortFields("code", "name", "type", "is_active")
	BankAccountSortFields   = sortFields("code", "bank_name", "account_number", "currency", "balance", "is_active")
	ExpenseSortFields       = sortFields("number", "date", "amount", "status", "posted_at")
	AssetSortFields         = sortFields("code", "name", "category", "acquisition_date", "cost", "status")
	TransactionSortFields   = sortFields("number", "kind", "partner_name", "amount", "paid_amount", "issue_date", "due_date", "status")
	EmployeeSortFields      = sortFields("code", "full_name", "position", "department", "hire_date", "salary", "status")
)
