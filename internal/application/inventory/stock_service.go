package inventory

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/export"
	"go.uber.org/zap"
)

const exportPageSize = 100

// StockService serves stock levels and the movement ledger
type StockService struct {
	stockRepo     inventory.StockRepository
	movementRepo  inventory.MovementRepository
	productRepo   catalog.ProductRepository
	warehouseRepo partner.WarehouseRepository
	logger        *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockRepository,
	movementRepo inventory.MovementRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		logger:        logger,
	}
}

// GetByID retrieves a stock row by ID
func (s *StockService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*StockResponse, error) {
	stock, err := s.stockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(stock)
	return &response, nil
}

// List retrieves a page of stock rows
func (s *StockService) List(ctx context.Context, tenantID uuid.UUID, filter StockListFilter) ([]StockResponse, int64, error) {
	domainFilter := filter.toFilter()

	stocks, err := s.stockRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stockRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockResponse, len(stocks))
	for i := range stocks {
		responses[i] = ToStockResponse(&stocks[i])
	}
	return responses, total, nil
}

// ListMovements retrieves a page of the stock ledger
func (s *StockService) ListMovements(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := filter.toFilter()

	movements, err := s.movementRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses, total, nil
}

// Export writes every stock row matching filter as an xlsx workbook. Paging
// fields of filter are ignored.
func (s *StockService) Export(ctx context.Context, tenantID uuid.UUID, filter StockListFilter, w io.Writer) error {
	stocks, err := s.loadAll(ctx, tenantID, filter)
	if err != nil {
		return err
	}

	productIDs := make([]uuid.UUID, 0, len(stocks))
	warehouseNames := make(map[uuid.UUID]string)
	for _, st := range stocks {
		productIDs = append(productIDs, st.ProductID)
		warehouseNames[st.WarehouseID] = ""
	}
	products, err := s.productRepo.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for id := range warehouseNames {
		wh, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		warehouseNames[id] = wh.Name
	}

	rows := make([][]any, 0, len(stocks))
	for _, st := range stocks {
		code, name, unit := "", st.ProductID.String(), ""
		low := false
		if p, ok := byID[st.ProductID]; ok {
			code, name, unit = p.Code, p.Name, p.Unit
			low = st.IsBelow(p.MinStock)
		}
		rows = append(rows, []any{
			warehouseNames[st.WarehouseID],
			code,
			name,
			unit,
			st.Quantity.InexactFloat64(),
			st.UnitCost.InexactFloat64(),
			st.TotalValue().InexactFloat64(),
			low,
		})
	}

	s.logger.Info("Exporting stocks", zap.String("tenant_id", tenantID.String()), zap.Int("rows", len(rows)))
	return export.WriteXLSX(w, export.Sheet{
		Name:    "Stocks",
		Headers: []string{"Warehouse", "Product Code", "Product Name", "Unit", "Quantity", "Unit Cost", "Total Value", "Low Stock"},
		Rows:    rows,
	})
}

func (s *StockService) loadAll(ctx context.Context, tenantID uuid.UUID, filter StockListFilter) ([]inventory.Stock, error) {
	filter.Page, filter.PageSize = 1, exportPageSize
	var all []inventory.Stock
	for {
		domainFilter := filter.toFilter()
		page, err := s.stockRepo.FindAllForTenant(ctx, tenantID, domainFilter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
		filter.Page++
	}
}
