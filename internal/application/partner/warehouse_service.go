package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// WarehouseService handles warehouse business operations
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
	txManager     shared.TransactionManager
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo partner.WarehouseRepository, txManager shared.TransactionManager) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		txManager:     txManager,
	}
}

// Create creates a new warehouse. A default warehouse replaces the previous default.
func (s *WarehouseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := partner.NewWarehouse(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.warehouseRepo.ExistsByCode(ctx, tenantID, warehouse.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	if err := warehouse.Update(warehouse.Name, req.Address, req.City); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.IsDefault {
			if err := s.warehouseRepo.ClearDefault(ctx, tenantID); err != nil {
				return err
			}
			warehouse.SetDefault(true)
		}
		return s.warehouseRepo.Save(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetDefault retrieves the default warehouse for a tenant
func (s *WarehouseService) GetDefault(ctx context.Context, tenantID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindDefault(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves a page of warehouses
func (s *WarehouseService) List(ctx context.Context, tenantID uuid.UUID, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	domainFilter := filter.toFilter()

	warehouses, err := s.warehouseRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = ToWarehouseResponse(&warehouses[i])
	}
	return responses, total, nil
}

// Update updates a warehouse
func (s *WarehouseService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	var warehouse *partner.Warehouse
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		warehouse, err = s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := warehouse.Update(req.Name, req.Address, req.City); err != nil {
			return err
		}

		if req.IsDefault != nil && *req.IsDefault != warehouse.IsDefault {
			if *req.IsDefault {
				if err := s.warehouseRepo.ClearDefault(ctx, tenantID); err != nil {
					return err
				}
			}
			warehouse.SetDefault(*req.IsDefault)
		}
		if req.IsActive != nil {
			if err := warehouse.SetActive(*req.IsActive); err != nil {
				return err
			}
		}
		return s.warehouseRepo.Save(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Delete deletes a warehouse. The default warehouse cannot be deleted.
func (s *WarehouseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if warehouse.IsDefault {
		return shared.NewDomainError("CANNOT_DELETE_DEFAULT", "Cannot delete the default warehouse")
	}
	return s.warehouseRepo.DeleteForTenant(ctx, tenantID, id)
}
