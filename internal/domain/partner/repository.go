package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// VendorRepository persists vendors
type VendorRepository interface {
	shared.CrudRepository[Vendor]
}

// CustomerRepository persists customers
type CustomerRepository interface {
	shared.CrudRepository[Customer]
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	shared.CrudRepository[Warehouse]
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Warehouse, error)
	ClearDefault(ctx context.Context, tenantID uuid.UUID) error
}
