package router

import (
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/handler"
)

// Handlers bundles the API handlers Routes wires up
type Handlers struct {
	Identity  *handler.IdentityHandler
	Partner   *handler.PartnerHandler
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	Trade     *handler.TradeHandler
	Finance   *handler.FinanceHandler
	HR        *handler.HRHandler
	Analytics *handler.AnalyticsHandler
	Upload    *handler.UploadHandler
}

// Routes builds one DomainGroup per bounded context
func Routes(h Handlers) []RouteRegistrar {
	identity := NewDomainGroup("identity", "/identity")
	permissions := identity.Group("permissions", "/permissions")
	permissions.POST("", h.Identity.CreatePermission).
		GET("", h.Identity.ListPermissions).
		GET("/:id", h.Identity.GetPermission).
		PUT("/:id", h.Identity.UpdatePermission).
		DELETE("/:id", h.Identity.DeletePermission)
	roles := identity.Group("roles", "/roles")
	roles.POST("", h.Identity.CreateRole).
		GET("", h.Identity.ListRoles).
		GET("/:id", h.Identity.GetRole).
		PUT("/:id", h.Identity.UpdateRole).
		PUT("/:id/permissions", h.Identity.SetRolePermissions).
		DELETE("/:id", h.Identity.DeleteRole)
	users := identity.Group("users", "/users")
	users.POST("", h.Identity.CreateUser).
		GET("", h.Identity.ListUsers).
		GET("/:id", h.Identity.GetUser).
		PUT("/:id", h.Identity.UpdateUser).
		PUT("/:id/roles", h.Identity.SetUserRoles).
		PUT("/:id/password", h.Identity.ChangeUserPassword).
		POST("/:id/activate", h.Identity.ActivateUser).
		POST("/:id/deactivate", h.Identity.DeactivateUser).
		DELETE("/:id", h.Identity.DeleteUser)

	partner := NewDomainGroup("partner", "/partner")
	partner.POST("/vendors", h.Partner.CreateVendor).
		GET("/vendors", h.Partner.ListVendors).
		GET("/vendors/:id", h.Partner.GetVendor).
		PUT("/vendors/:id", h.Partner.UpdateVendor).
		DELETE("/vendors/:id", h.Partner.DeleteVendor)
	partner.POST("/customers", h.Partner.CreateCustomer).
		GET("/customers", h.Partner.ListCustomers).
		GET("/customers/:id", h.Partner.GetCustomer).
		PUT("/customers/:id", h.Partner.UpdateCustomer).
		DELETE("/customers/:id", h.Partner.DeleteCustomer)
	partner.POST("/warehouses", h.Partner.CreateWarehouse).
		GET("/warehouses", h.Partner.ListWarehouses).
		GET("/warehouses/default", h.Partner.GetDefaultWarehouse).
		GET("/warehouses/:id", h.Partner.GetWarehouse).
		PUT("/warehouses/:id", h.Partner.UpdateWarehouse).
		DELETE("/warehouses/:id", h.Partner.DeleteWarehouse)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.POST("/products", h.Catalog.CreateProduct).
		GET("/products", h.Catalog.ListProducts).
		GET("/products/:id", h.Catalog.GetProduct).
		PUT("/products/:id", h.Catalog.UpdateProduct).
		POST("/products/:id/image", h.Catalog.UploadProductImage).
		DELETE("/products/:id", h.Catalog.DeleteProduct)
	catalog.POST("/taxes", h.Catalog.CreateTax).
		GET("/taxes", h.Catalog.ListTaxes).
		GET("/taxes/:id", h.Catalog.GetTax).
		PUT("/taxes/:id", h.Catalog.UpdateTax).
		DELETE("/taxes/:id", h.Catalog.DeleteTax)

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.GET("/stocks", h.Inventory.ListStocks).
		GET("/stocks/export", h.Inventory.ExportStocks).
		GET("/stocks/:id", h.Inventory.GetStock).
		GET("/movements", h.Inventory.ListMovements)
	inventory.POST("/adjustments", h.Inventory.CreateAdjustment).
		GET("/adjustments", h.Inventory.ListAdjustments).
		GET("/adjustments/:id", h.Inventory.GetAdjustment).
		PUT("/adjustments/:id", h.Inventory.UpdateAdjustment).
		POST("/adjustments/:id/post", h.Inventory.PostAdjustment).
		POST("/adjustments/:id/cancel", h.Inventory.CancelAdjustment).
		DELETE("/adjustments/:id", h.Inventory.DeleteAdjustment)

	trade := NewDomainGroup("trade", "/trade")
	trade.POST("/purchase-orders", h.Trade.CreatePurchaseOrder).
		GET("/purchase-orders", h.Trade.ListPurchaseOrders).
		GET("/purchase-orders/:id", h.Trade.GetPurchaseOrder).
		PUT("/purchase-orders/:id", h.Trade.UpdatePurchaseOrder).
		POST("/purchase-orders/:id/confirm", h.Trade.ConfirmPurchaseOrder).
		POST("/purchase-orders/:id/receive", h.Trade.ReceivePurchaseOrder).
		POST("/purchase-orders/:id/cancel", h.Trade.CancelPurchaseOrder).
		DELETE("/purchase-orders/:id", h.Trade.DeletePurchaseOrder)
	trade.POST("/sales-orders", h.Trade.CreateSalesOrder).
		GET("/sales-orders", h.Trade.ListSalesOrders).
		GET("/sales-orders/:id", h.Trade.GetSalesOrder).
		PUT("/sales-orders/:id", h.Trade.UpdateSalesOrder).
		POST("/sales-orders/:id/confirm", h.Trade.ConfirmSalesOrder).
		POST("/sales-orders/:id/deliver", h.Trade.DeliverSalesOrder).
		POST("/sales-orders/:id/cancel", h.Trade.CancelSalesOrder).
		DELETE("/sales-orders/:id", h.Trade.DeleteSalesOrder)

	finance := NewDomainGroup("finance", "/finance")
	finance.POST("/accounts", h.Finance.CreateAccount).
		GET("/accounts", h.Finance.ListAccounts).
		GET("/accounts/:id", h.Finance.GetAccount).
		PUT("/accounts/:id", h.Finance.UpdateAccount).
		DELETE("/accounts/:id", h.Finance.DeleteAccount)
	finance.POST("/bank-accounts", h.Finance.CreateBankAccount).
		GET("/bank-accounts", h.Finance.ListBankAccounts).
		GET("/bank-accounts/:id", h.Finance.GetBankAccount).
		PUT("/bank-accounts/:id", h.Finance.UpdateBankAccount).
		POST("/bank-accounts/:id/deposit", h.Finance.DepositBankAccount).
		POST("/bank-accounts/:id/withdraw", h.Finance.WithdrawBankAccount).
		DELETE("/bank-accounts/:id", h.Finance.DeleteBankAccount)
	finance.POST("/expenses", h.Finance.CreateExpense).
		GET("/expenses", h.Finance.ListExpenses).
		GET("/expenses/:id", h.Finance.GetExpense).
		PUT("/expenses/:id", h.Finance.UpdateExpense).
		POST("/expenses/:id/receipt", h.Finance.UploadExpenseReceipt).
		POST("/expenses/:id/post", h.Finance.PostExpense).
		DELETE("/expenses/:id", h.Finance.DeleteExpense)
	finance.POST("/assets", h.Finance.CreateAsset).
		GET("/assets", h.Finance.ListAssets).
		GET("/assets/:id", h.Finance.GetAsset).
		PUT("/assets/:id", h.Finance.UpdateAsset).
		GET("/assets/:id/depreciation", h.Finance.GetAssetSchedule).
		POST("/assets/:id/dispose", h.Finance.DisposeAsset).
		DELETE("/assets/:id", h.Finance.DeleteAsset)
	finance.POST("/transactions", h.Finance.CreateTransaction).
		GET("/transactions", h.Finance.ListTransactions).
		GET("/transactions/due", h.Finance.ListDueTransactions).
		GET("/transactions/:id", h.Finance.GetTransaction).
		PUT("/transactions/:id", h.Finance.UpdateTransaction).
		POST("/transactions/:id/payments", h.Finance.ApplyTransactionPayment).
		POST("/transactions/:id/cancel", h.Finance.CancelTransaction).
		DELETE("/transactions/:id", h.Finance.DeleteTransaction)
	finance.POST("/reminders/run", h.Finance.RunReminders)

	hr := NewDomainGroup("hr", "/hr")
	hr.POST("/employees", h.HR.CreateEmployee).
		GET("/employees", h.HR.ListEmployees).
		GET("/employees/:id", h.HR.GetEmployee).
		PUT("/employees/:id", h.HR.UpdateEmployee).
		POST("/employees/:id/terminate", h.HR.TerminateEmployee).
		DELETE("/employees/:id", h.HR.DeleteEmployee)

	analytics := NewDomainGroup("analytics", "/analytics")
	analytics.GET("/associations", h.Analytics.GetAssociations).
		GET("/associations/export", h.Analytics.ExportAssociations)

	uploads := NewDomainGroup("uploads", "/uploads")
	uploads.POST("/:category", h.Upload.Upload).
		DELETE("/:category/:name", h.Upload.Delete)

	return []RouteRegistrar{identity, partner, catalog, inventory, trade, finance, hr, analytics, uploads}
}
