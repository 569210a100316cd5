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
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo       trade.PurchaseOrderRepository
	vendorRepo      partner.VendorRepository
	warehouseRepo   partner.WarehouseRepository
	transactionRepo finance.TransactionRepository
	lines           lineResolver
	postings        *invapp.PostingService
	txManager       shared.TransactionManager
	logger          *zap.Logger
	now             func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	vendorRepo partner.VendorRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	taxRepo catalog.TaxRepository,
	transactionRepo finance.TransactionRepository,
	postings *invapp.PostingService,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:       orderRepo,
		vendorRepo:      vendorRepo,
		warehouseRepo:   warehouseRepo,
		transactionRepo: transactionRepo,
		lines:           lineResolver{productRepo: productRepo, taxRepo: taxRepo},
		postings:        postings,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// Create creates a draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if _, err := s.activeVendor(ctx, tenantID, req.VendorID); err != nil {
		return nil, err
	}
	warehouseID, err := resolveWarehouse(ctx, s.warehouseRepo, tenantID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.resolve(ctx, tenantID, req.Items, purchaseSide)
	if err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := dateOrToday(req.OrderDate, now)
	order, err := trade.NewPurchaseOrder(tenantID, shared.GenerateNumber("PO", now), req.VendorID, warehouseID, orderDate)
	if err != nil {
		return nil, err
	}
	if err := order.Update(req.VendorID, warehouseID, orderDate, req.ExpectedDate, req.Note); err != nil {
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
	s.logger.Info("Purchase order created",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number),
		zap.String("total", order.Total.String()))

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves a page of purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := filter.toFilter()

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Update replaces the header and items of a draft purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft orders can be modified")
	}
	if _, err := s.activeVendor(ctx, tenantID, req.VendorID); err != nil {
		return nil, err
	}
	warehouseID, err := resolveWarehouse(ctx, s.warehouseRepo, tenantID, &req.WarehouseID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.resolve(ctx, tenantID, req.Items, purchaseSide)
	if err != nil {
		return nil, err
	}

	if err := order.Update(req.VendorID, warehouseID, req.OrderDate, req.ExpectedDate, req.Note); err != nil {
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
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft order and raises the payable owed to the vendor
func (s *PurchaseOrderService) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		vendor, err := s.activeVendor(ctx, tenantID, order.VendorID)
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

		payable, err := finance.NewTransaction(tenantID, finance.TransactionKindAP, shared.GenerateNumber("AP", now),
			vendor.ID, vendor.Name, order.Total, order.OrderDate, dueDate(order.OrderDate, vendor.PaymentTermDays))
		if err != nil {
			return err
		}
		payable.SetReference(inventory.ReferencePurchaseOrder, order.ID)
		return s.transactionRepo.Save(ctx, payable)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order confirmed", zap.String("order_id", order.ID.String()), zap.String("number", order.Number))
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Receive records received goods and posts them into stock in the same transaction
func (s *PurchaseOrderService) Receive(ctx context.Context, tenantID, id uuid.UUID, req FulfilRequest) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.postings.Once(ctx, tenantID, "purchase_order.receive", func(ctx context.Context) error {
		return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
			if err != nil {
				return err
			}
			posting, err := order.Receive(req.toLines(), s.now())
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

	s.logger.Info("Purchase order received",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order with nothing received yet. The payable raised on
// confirmation is cancelled with it.
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, id uuid.UUID, req CancelOrderRequest) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		wasConfirmed := order.Status == trade.PurchaseOrderStatusConfirmed
		if err := order.Cancel(req.Reason, s.now()); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if !wasConfirmed {
			return nil
		}
		return cancelLinked(ctx, s.transactionRepo, tenantID, inventory.ReferencePurchaseOrder, order.ID)
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Delete deletes a draft purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !order.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *PurchaseOrderService) activeVendor(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive {
		return nil, shared.NewDomainError("INACTIVE_VENDOR", "Vendor is inactive")
	}
	return vendor, nil
}

// cancelLinked cancels the open AP/AR transactions raised from a document
func cancelLinked(ctx context.Context, repo finance.TransactionRepository, tenantID uuid.UUID, refType string, refID uuid.UUID) error {
	filter := shared.NewFilter(1, 100, "", "", "").
		With("reference_type", refType).
		With("reference_id", refID)
	linked, err := repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	for i := range linked {
		t := &linked[i]
		if t.Status.IsTerminal() {
			continue
		}
		if err := t.Cancel(); err != nil {
			return err
		}
		if err := repo.Save(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
