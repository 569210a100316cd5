package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lowStock keeps stock rows under the product's minimum when value is true
func lowStock(db *gorm.DB, value any) *gorm.DB {
	if on, ok := value.(bool); !ok || !on {
		return db
	}
	return db.Where("stocks.quantity < (SELECT p.min_stock FROM products p WHERE p.id = stocks.product_id)")
}

// GormStockRepository implements inventory.StockRepository
type GormStockRepository struct {
	*GormCrudRepository[inventory.Stock]
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{
		GormCrudRepository: NewGormCrudRepository[inventory.Stock](db, TableSpec{
			Filters: map[string]FilterFunc{
				"warehouse_id": Eq("stocks.warehouse_id"),
				"product_id":   Eq("stocks.product_id"),
				"low_stock":    lowStock,
			},
			SortFields:  StockSortFields,
			DefaultSort: "updated_at",
		}),
	}
}

// FindForUpdate loads the stock row with SELECT ... FOR UPDATE
func (r *GormStockRepository) FindForUpdate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// GormMovementRepository implements inventory.MovementRepository
type GormMovementRepository struct {
	*GormCrudRepository[inventory.StockMovement]
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{
		GormCrudRepository: NewGormCrudRepository[inventory.StockMovement](db, TableSpec{
			SearchColumns: []string{"note"},
			Filters: map[string]FilterFunc{
				"warehouse_id":   Eq("warehouse_id"),
				"product_id":     Eq("product_id"),
				"type":           Eq("type"),
				"reference_type": Eq("reference_type"),
				"reference_id":   Eq("reference_id"),
				"from":           Gte("created_at"),
				"to":             Lte("created_at"),
			},
			SortFields:  MovementSortFields,
			DefaultSort: "created_at",
		}),
	}
}

// Create appends a movement to the ledger
func (r *GormMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return translateError(r.conn(ctx).Create(movement).Error)
}

// GormAdjustmentRepository implements inventory.AdjustmentRepository
type GormAdjustmentRepository struct {
	*GormCrudRepository[inventory.StockAdjustment]
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{
		GormCrudRepository: NewGormCrudRepository[inventory.StockAdjustment](db, TableSpec{
			CodeColumn:    "number",
			SearchColumns: []string{"number", "reason"},
			Filters: map[string]FilterFunc{
				"status":       Eq("status"),
				"warehouse_id": Eq("warehouse_id"),
			},
			SortFields:  AdjustmentSortFields,
			DefaultSort: "created_at",
			Preloads:    []string{"Items"},
		}),
	}
}

// Save stores the adjustment and replaces its items
func (r *GormAdjustmentRepository) Save(ctx context.Context, adj *inventory.StockAdjustment) error {
	return saveWithChildren(r.conn(ctx), adj, "adjustment_id", adj.ID, adj.Items)
}

var (
	_ inventory.StockRepository      = (*GormStockRepository)(nil)
	_ inventory.MovementRepository   = (*GormMovementRepository)(nil)
	_ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
)
