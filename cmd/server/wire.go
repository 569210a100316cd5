package main

import (
	analyticsapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/analytics"
	catalogapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/catalog"
	financeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/finance"
	hrapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/hr"
	identityapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/identity"
	inventoryapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/inventory"
	partnerapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/partner"
	tradeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/trade"
	"github.com/kainnovads/apukainnovabe-sub001/internal/application/upload"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/cache"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/persistence"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/storage"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/telemetry"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/handler"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the shared pieces every service is built from
type deps struct {
	cfg         *config.Config
	db          *gorm.DB
	redis       *redis.Client // nil when Redis is not configured
	idempotency shared.IdempotencyStore
	files       *storage.LocalStorage
	mailer      financeapp.Mailer
	metrics     *telemetry.Metrics
	log         *zap.Logger
}

// app is the wired application: the route handlers plus the reminder job the scheduler runs
type app struct {
	handlers  router.Handlers
	reminders *financeapp.ReminderJob
}

func wire(d deps) app {
	db := d.db
	log := d.log

	// Repositories
	permissionRepo := persistence.NewGormPermissionRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	taxRepo := persistence.NewGormTaxRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db)
	accountRepo := persistence.NewGormAccountRepository(db)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	assetRepo := persistence.NewGormAssetRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	basketRepo := persistence.NewGormBasketRepository(db)
	txManager := persistence.NewGormTransactionManager(db)

	// Identity
	permissionService := identityapp.NewPermissionService(permissionRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, permissionRepo, txManager, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, txManager, log)

	// Partner and catalog
	vendorService := partnerapp.NewVendorService(vendorRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo, txManager)
	productService := catalogapp.NewProductService(productRepo, taxRepo, d.files, log)
	taxService := catalogapp.NewTaxService(taxRepo)

	// Inventory
	postingService := inventoryapp.NewPostingService(stockRepo, movementRepo, txManager, log,
		inventoryapp.WithIdempotency(d.idempotency, d.cfg.Idempotency.TTL),
		inventoryapp.WithMetrics(d.metrics),
	)
	stockService := inventoryapp.NewStockService(stockRepo, movementRepo, productRepo, warehouseRepo, log)
	adjustmentService := inventoryapp.NewAdjustmentService(adjustmentRepo, warehouseRepo, productRepo, postingService, txManager, log)

	// Trade
	purchaseOrderService := tradeapp.NewPurchaseOrderService(
		purchaseOrderRepo, vendorRepo, warehouseRepo, productRepo, taxRepo,
		transactionRepo, postingService, txManager, log,
	)
	salesOrderService := tradeapp.NewSalesOrderService(
		salesOrderRepo, customerRepo, warehouseRepo, productRepo, taxRepo,
		transactionRepo, postingService, txManager, log,
	)

	// Finance
	accountService := financeapp.NewAccountService(accountRepo, log)
	bankAccountService := financeapp.NewBankAccountService(bankAccountRepo, accountRepo, txManager, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, accountRepo, bankAccountRepo, taxRepo, d.files, txManager, log)
	assetService := financeapp.NewAssetService(assetRepo, log)
	transactionService := financeapp.NewTransactionService(transactionRepo, vendorRepo, customerRepo, bankAccountRepo, txManager, log)
	reminderJob := financeapp.NewReminderJob(transactionRepo, d.mailer, d.cfg.Reminder, d.metrics, log)

	// HR and analytics
	employeeService := hrapp.NewEmployeeService(employeeRepo, log)

	associationOpts := []analyticsapp.Option{analyticsapp.WithMetrics(d.metrics)}
	if d.redis != nil {
		resultCache := cache.NewRedisResultCache(d.redis, "erp:associations:", log)
		associationOpts = append(associationOpts, analyticsapp.WithCache(resultCache, d.cfg.Mining.CacheTTL))
	}
	associationService := analyticsapp.NewAssociationService(basketRepo, productRepo, d.cfg.Mining, log, associationOpts...)

	uploadService := upload.NewService(d.files, log)

	return app{
		handlers: router.Handlers{
			Identity:  handler.NewIdentityHandler(permissionService, roleService, userService),
			Partner:   handler.NewPartnerHandler(vendorService, customerService, warehouseService),
			Catalog:   handler.NewCatalogHandler(productService, taxService),
			Inventory: handler.NewInventoryHandler(stockService, adjustmentService),
			Trade:     handler.NewTradeHandler(purchaseOrderService, salesOrderService),
			Finance: handler.NewFinanceHandler(
				accountService, bankAccountService, expenseService,
				assetService, transactionService, reminderJob,
			),
			HR:        handler.NewHRHandler(employeeService),
			Analytics: handler.NewAnalyticsHandler(associationService),
			Upload:    handler.NewUploadHandler(uploadService),
		},
		reminders: reminderJob,
	}
}
