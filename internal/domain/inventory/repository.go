package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// StockRepository persists stock rows
type StockRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Stock, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Stock, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindForUpdate loads and row-locks the stock of a product in a warehouse.
	// Must be called inside a transaction; returns shared.ErrNotFound when no row exists.
	FindForUpdate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*Stock, error)
	Save(ctx context.Context, stock *Stock) error
}

// MovementRepository appends and lists stock ledger rows
type MovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// AdjustmentRepository persists stock adjustments with their items.
// ExistsByCode checks the adjustment number.
type AdjustmentRepository interface {
	shared.CrudRepository[StockAdjustment]
}
