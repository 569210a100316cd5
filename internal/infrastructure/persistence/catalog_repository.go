package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository
type GormProductRepository struct {
	*GormCrudRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{
		GormCrudRepository: NewGormCrudRepository[catalog.Product](db, TableSpec{
			CodeColumn:    "code",
			SearchColumns: []string{"code", "name", "description"},
			Filters: map[string]FilterFunc{
				"is_active": Eq("is_active"),
				"unit":      Eq("unit"),
				"tax_id":    Eq("tax_id"),
			},
			SortFields:  ProductSortFields,
			DefaultSort: "code",
		}),
	}
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.conn(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// NewGormTaxRepository creates the tax repository
func NewGormTaxRepository(db *gorm.DB) *GormCrudRepository[catalog.Tax] {
	return NewGormCrudRepository[catalog.Tax](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "name"},
		Filters: map[string]FilterFunc{
			"type":      Eq("type"),
			"is_active": Eq("is_active"),
		},
		SortFields:  TaxSortFields,
		DefaultSort: "code",
	})
}

var (
	_ catalog.ProductRepository = (*GormProductRepository)(nil)
	_ catalog.TaxRepository     = (*GormCrudRepository[catalog.Tax])(nil)
)
