package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// AdjustmentService handles stock adjustment documents
type AdjustmentService struct {
	adjustmentRepo inventory.AdjustmentRepository
	warehouseRepo  partner.WarehouseRepository
	productRepo    catalog.ProductRepository
	postings       *PostingService
	txManager      shared.TransactionManager
	logger         *zap.Logger
	now            func() time.Time
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(
	adjustmentRepo inventory.AdjustmentRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	postings *PostingService,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *AdjustmentService {
	return &AdjustmentService{
		adjustmentRepo: adjustmentRepo,
		warehouseRepo:  warehouseRepo,
		productRepo:    productRepo,
		postings:       postings,
		txManager:      txManager,
		logger:         logger,
		now:            time.Now,
	}
}

// Create creates a draft adjustment with a generated number
func (s *AdjustmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	if err := s.validateRefs(ctx, tenantID, req.WarehouseID, req.Items); err != nil {
		return nil, err
	}

	adj, err := inventory.NewStockAdjustment(tenantID, shared.GenerateNumber("ADJ", s.now()), req.WarehouseID, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := setItems(adj, req.Items); err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, adj); err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// GetByID retrieves an adjustment by ID
func (s *AdjustmentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*AdjustmentResponse, error) {
	adj, err := s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// List retrieves a page of adjustments
func (s *AdjustmentService) List(ctx context.Context, tenantID uuid.UUID, filter AdjustmentListFilter) ([]AdjustmentResponse, int64, error) {
	domainFilter := filter.toFilter()

	adjustments, err := s.adjustmentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.adjustmentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return responses, total, nil
}

// Update replaces the header and items of a draft adjustment
func (s *AdjustmentService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateAdjustmentRequest) (*AdjustmentResponse, error) {
	adj, err := s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !adj.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be edited")
	}
	if err := s.validateRefs(ctx, tenantID, req.WarehouseID, req.Items); err != nil {
		return nil, err
	}

	if err := adj.Update(req.WarehouseID, req.Reason); err != nil {
		return nil, err
	}
	if err := adj.ClearItems(); err != nil {
		return nil, err
	}
	if err := setItems(adj, req.Items); err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, adj); err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Post applies a draft adjustment to stock. The document and its stock
// movements are committed together.
func (s *AdjustmentService) Post(ctx context.Context, tenantID, id uuid.UUID) (*AdjustmentResponse, error) {
	var adj *inventory.StockAdjustment
	err := s.postings.Once(ctx, tenantID, "adjustment.post", func(ctx context.Context) error {
		return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			adj, err = s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id)
			if err != nil {
				return err
			}
			posting, err := adj.Post(s.now())
			if err != nil {
				return err
			}
			if _, err := s.postings.Post(ctx, tenantID, posting); err != nil {
				return err
			}
			return s.adjustmentRepo.Save(ctx, adj)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjustment posted",
		zap.String("adjustment_id", adj.ID.String()),
		zap.String("number", adj.Number))
	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Cancel voids a draft adjustment
func (s *AdjustmentService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*AdjustmentResponse, error) {
	adj, err := s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := adj.Cancel(); err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Save(ctx, adj); err != nil {
		return nil, err
	}
	response := ToAdjustmentResponse(adj)
	return &response, nil
}

// Delete removes a draft adjustment
func (s *AdjustmentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	adj, err := s.adjustmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !adj.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft adjustments can be deleted")
	}
	return s.adjustmentRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *AdjustmentService) validateRefs(ctx context.Context, tenantID, warehouseID uuid.UUID, items []AdjustmentItemRequest) error {
	if _, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse does not exist")
		}
		return err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ensureProducts(ctx, s.productRepo, tenantID, ids)
}

func setItems(adj *inventory.StockAdjustment, items []AdjustmentItemRequest) error {
	for _, item := range items {
		if err := adj.AddItem(item.ProductID, item.Quantity, item.UnitCost); err != nil {
			return err
		}
	}
	return nil
}

// ensureProducts fails with INVALID_PRODUCT unless every id names a product of the tenant
func ensureProducts(ctx context.Context, repo catalog.ProductRepository, tenantID uuid.UUID, ids []uuid.UUID) error {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	products, err := repo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	if len(products) != len(unique) {
		return shared.NewDomainError("INVALID_PRODUCT", "One or more products do not exist")
	}
	return nil
}
