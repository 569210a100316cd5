package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// Warehouse is a storage location that holds stock
type Warehouse struct {
	shared.TenantAggregateRoot
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_warehouse_tenant_code,priority:2"`
	Name      string `gorm:"type:varchar(200);not null"`
	Address   string `gorm:"type:varchar(500)"`
	City      string `gorm:"type:varchar(100)"`
	IsDefault bool   `gorm:"not null;default:false"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates an active, non-default warehouse
func NewWarehouse(tenantID uuid.UUID, code, name string) (*Warehouse, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 200)
	if err != nil {
		return nil, err
	}
	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		IsActive:            true,
	}, nil
}

// Update changes name and location
func (w *Warehouse) Update(name, address, city string) error {
	name, err := shared.RequireName(name, 200)
	if err != nil {
		return err
	}
	w.Name = name
	w.Address = strings.TrimSpace(address)
	w.City = strings.TrimSpace(city)
	w.IncrementVersion()
	return nil
}

// SetDefault marks the warehouse as the tenant default
func (w *Warehouse) SetDefault(isDefault bool) {
	w.IsDefault = isDefault
	w.IncrementVersion()
}

// SetActive enables or disables the warehouse. The default warehouse cannot be disabled.
func (w *Warehouse) SetActive(active bool) error {
	if !active && w.IsDefault {
		return shared.NewDomainError("CANNOT_DEACTIVATE_DEFAULT", "Cannot deactivate the default warehouse")
	}
	w.IsActive = active
	w.IncrementVersion()
	return nil
}

// CanStore reports whether stock may be posted into the warehouse
func (w *Warehouse) CanStore() bool {
	return w.IsActive
}
