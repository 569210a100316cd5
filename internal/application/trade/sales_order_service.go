package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	invapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orderRepo       trade.SalesOrderRepository
	customerRepo    partner.CustomerRepository
	warehouseRepo   partner.WarehouseRepository
	transactionRepo finance.TransactionRepository
	lines           lineResolver
	postings        *invapp.PostingService
	txManager       shared.TransactionManager
	logger          *zap.Logger
	now             func() time.Time
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	taxRepo catalog.TaxRepository,
	transactionRepo finance.TransactionRepository,
	postings *invapp.PostingService,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:       orderRepo,
		customerRepo:    customerRepo,
		warehouseRepo:   warehouseRepo,
		transactionRepo: transactionRepo,
		lines:           lineResolver{productRepo: productRepo, taxRepo: taxRepo},
		postings:        postings,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// Create creates a draft sales order
func (s *SalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	if _, err := s.activeCustomer(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}
	warehouseID, err := resolveWarehouse(ctx, s.warehouseRepo, tenantID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.resolve(ctx, tenantID, req.Items, salesSide)
	if err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := dateOrToday(req.OrderDate, now)
	order, err := trade.NewSalesOrder(tenantID, shared.GenerateNumber("SO", now), req.CustomerID, warehouseID, orderDate)
	if err != nil {
		return nil, err
	}
	if err := order.Update(req.CustomerID, warehouseID, orderDate, req.ExpectedDate, req.Note); err != nil {
		return nil, err
	}
	for _, l := range lines {
		if err := order.AddItem(l.ProductID, l.Quantity, l.UnitPrice, l.TaxRate); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("Sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
		zap.String("total", order.Total.String()))

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves a page of sales orders
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
	domainFilter := filter.toFilter()

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Update replaces the header and items of a draft sales order
func (s *SalesOrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	if _, err := s.activeCustomer(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}
	warehouseID, err := resolveWarehouse(ctx, s.warehouseRepo, tenantID, &req.WarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.resolve(ctx, tenantID, req.Items, salesSide)
	if err != nil {
		return nil, err
	}

	if err := order.Update(req.CustomerID, warehouseID, req.OrderDate, req.ExpectedDate, req.Note); err != nil {
		return nil, err
	}
	if err := order.ClearItems(); err != nil {
		return nil, err
	}
	for _, l := range lines {
		if err := order.AddItem(l.ProductID, l.Quantity, l.UnitPrice, l.TaxRate); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft order and raises the receivable owed by the customer.
// Customers with a credit limit cannot exceed it with the new receivable.
func (s *SalesOrderService) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		customer, err := s.activeCustomer(ctx, tenantID, order.CustomerID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := order.Confirm(now); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if !order.Total.IsPositive() {
			return nil
		}
		if err := s.checkCredit(ctx, tenantID, customer, order.Total); err != nil {
			return err
		}

		receivable, err := finance.NewTransaction(tenantID, finance.TransactionKindAR, shared.GenerateNumber("AR", now),
			customer.ID, customer.Name, order.Total, order.OrderDate, dueDate(order.OrderDate, customer.PaymentTermDays))
		if err != nil {
			return err
		}
		receivable.SetReference(inventory.ReferenceSalesOrder, order.ID)
		return s.transactionRepo.Save(ctx, receivable)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales order confirmed", zap.String("order_id", order.ID.String()), zap.String("number", order.Number))
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Deliver records delivered goods and posts them out of stock in the same transaction
func (s *SalesOrderService) Deliver(ctx context.Context, tenantID, id uuid.UUID, req FulfilRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.postings.Once(ctx, tenantID, "sales_order.deliver", func(ctx context.Context) error {
		return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
			if err != nil {
				return err
			}
			posting, err := order.Deliver(req.toLines(), s.now())
			if err != nil {
				return err
			}
			if _, err := s.postings.Post(ctx, tenantID, posting); err != nil {
				return err
			}
			return s.orderRepo.Save(ctx, order)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales order delivered",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order with nothing delivered yet. The receivable raised on
// confirmation is cancelled with it.
func (s *SalesOrderService) Cancel(ctx context.Context, tenantID, id uuid.UUID, req CancelOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		wasConfirmed := order.Status == trade.SalesOrderStatusConfirmed
		if err := order.Cancel(req.Reason, s.now()); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if !wasConfirmed {
			return nil
		}
		return cancelLinked(ctx, s.transactionRepo, tenantID, inventory.ReferenceSalesOrder, order.ID)
	})
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Delete deletes a draft sales order
func (s *SalesOrderService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !order.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *SalesOrderService) checkCredit(ctx context.Context, tenantID uuid.UUID, customer *partner.Customer, amount decimal.Decimal) error {
	if customer.CreditLimit.IsZero() {
		return nil
	}
	outstanding := amount
	base := shared.NewFilter(1, 100, "", "", "").
		With("kind", string(finance.TransactionKindAR)).
		With("partner_id", customer.ID)
	for page := 1; ; page++ {
		filter := base
		filter.Page = page
		open, err := s.transactionRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		for i := range open {
			if !open[i].Status.IsTerminal() {
				outstanding = outstanding.Add(open[i].Outstanding())
			}
		}
		if len(open) < filter.PageSize {
			break
		}
	}
	if !customer.WithinCreditLimit(outstanding) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED", "Order exceeds the customer's credit limit")
	}
	return nil
}

func (s *SalesOrderService) activeCustomer(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Customer does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, shared.NewDomainError("INACTIVE_VENDOR", "Customer is inactive")
	}
	return customer, nil
}
