package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// NewGormVendorRepository creates the vendor repository
func NewGormVendorRepository(db *gorm.DB) *GormCrudRepository[partner.Vendor] {
	return NewGormCrudRepository[partner.Vendor](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "name", "contact_name", "email", "phone"},
		Filters: map[string]FilterFunc{
			"is_active": Eq("is_active"),
			"city":      Eq("city"),
		},
		SortFields:  VendorSortFields,
		DefaultSort: "code",
	})
}

// NewGormCustomerRepository creates the customer repository
func NewGormCustomerRepository(db *gorm.DB) *GormCrudRepository[partner.Customer] {
	return NewGormCrudRepository[partner.Customer](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "name", "contact_name", "email", "phone"},
		Filters: map[string]FilterFunc{
			"is_active": Eq("is_active"),
			"city":      Eq("city"),
		},
		SortFields:  CustomerSortFields,
		DefaultSort: "code",
	})
}

// GormWarehouseRepository implements partner.WarehouseRepository
type GormWarehouseRepository struct {
	*GormCrudRepository[partner.Warehouse]
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{
		GormCrudRepository: NewGormCrudRepository[partner.Warehouse](db, TableSpec{
			CodeColumn:    "code",
			SearchColumns: []string{"code", "name", "city"},
			Filters: map[string]FilterFunc{
				"is_active":  Eq("is_active"),
				"is_default": Eq("is_default"),
			},
			SortFields:  WarehouseSortFields,
			DefaultSort: "code",
		}),
	}
}

// FindDefault finds the default warehouse for a tenant
func (r *GormWarehouseRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*partner.Warehouse, error) {
	var warehouse partner.Warehouse
	if err := r.conn(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// ClearDefault unsets the default flag on every warehouse of a tenant
func (r *GormWarehouseRepository) ClearDefault(ctx context.Context, tenantID uuid.UUID) error {
	return r.conn(ctx).Model(&partner.Warehouse{}).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		Update("is_default", false).Error
}

var (
	_ partner.VendorRepository    = (*GormCrudRepository[partner.Vendor])(nil)
	_ partner.CustomerRepository  = (*GormCrudRepository[partner.Customer])(nil)
	_ partner.WarehouseRepository = (*GormWarehouseRepository)(nil)
)
