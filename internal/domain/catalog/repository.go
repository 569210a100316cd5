package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// ProductRepository persists products
type ProductRepository interface {
	shared.CrudRepository[Product]
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
}

// TaxRepository persists taxes
type TaxRepository interface {
	shared.CrudRepository[Tax]
}
