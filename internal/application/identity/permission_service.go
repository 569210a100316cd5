package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// PermissionService manages the permission catalogue of a tenant
type PermissionService struct {
	permissionRepo identity.PermissionRepository
	logger         *zap.Logger
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(permissionRepo identity.PermissionRepository, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		permissionRepo: permissionRepo,
		logger:         logger,
	}
}

// Create creates a permission; its code is derived as resource:action
func (s *PermissionService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePermissionRequest) (*PermissionResponse, error) {
	permission, err := identity.NewPermission(tenantID, req.Resource, req.Action, req.Description)
	if err != nil {
		return nil, err
	}

	exists, err := s.permissionRepo.ExistsByCode(ctx, tenantID, permission.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Permission with this code already exists")
	}

	if err := s.permissionRepo.Save(ctx, permission); err != nil {
		return nil, err
	}

	s.logger.Info("Permission created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("code", permission.Code))

	response := ToPermissionResponse(permission)
	return &response, nil
}

// GetByID retrieves a permission by ID
func (s *PermissionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PermissionResponse, error) {
	permission, err := s.permissionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPermissionResponse(permission)
	return &response, nil
}

// List retrieves a page of permissions
func (s *PermissionService) List(ctx context.Context, tenantID uuid.UUID, filter PermissionListFilter) ([]PermissionResponse, int64, error) {
	domainFilter := filter.toFilter()

	permissions, err := s.permissionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.permissionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PermissionResponse, len(permissions))
	for i := range permissions {
		responses[i] = ToPermissionResponse(&permissions[i])
	}
	return responses, total, nil
}

// Update changes the description of a permission
func (s *PermissionService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePermissionRequest) (*PermissionResponse, error) {
	permission, err := s.permissionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	permission.Update(req.Description)
	if err := s.permissionRepo.Save(ctx, permission); err != nil {
		return nil, err
	}
	response := ToPermissionResponse(permission)
	return &response, nil
}

// Delete removes a permission. Permissions still granted to a role are kept.
func (s *PermissionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.permissionRepo.DeleteForTenant(ctx, tenantID, id)
}
