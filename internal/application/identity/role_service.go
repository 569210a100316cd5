package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo       identity.RoleRepository
	permissionRepo identity.PermissionRepository
	txManager      shared.TransactionManager
	logger         *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	permissionRepo identity.PermissionRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Create creates a role and grants the listed permissions
func (s *RoleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRoleRequest) (*RoleResponse, error) {
	role, err := identity.NewRole(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := role.Update(role.Name, req.Description); err != nil {
			return nil, err
		}
	}

	exists, err := s.roleRepo.ExistsByCode(ctx, tenantID, role.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this code already exists")
	}

	permissions, err := s.resolvePermissions(ctx, tenantID, req.PermissionCodes)
	if err != nil {
		return nil, err
	}
	role.SetPermissions(permissions)

	if err := s.save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("code", role.Code),
		zap.Int("permissions", len(role.Permissions)))

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByID retrieves a role with its permissions
func (s *RoleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToRoleResponse(role)
	return &response, nil
}

// List retrieves a page of roles
func (s *RoleService) List(ctx context.Context, tenantID uuid.UUID, filter RoleListFilter) ([]RoleResponse, int64, error) {
	domainFilter := filter.toFilter()

	roles, err := s.roleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.roleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses, total, nil
}

// Update changes name, description and active flag
func (s *RoleService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name, description := role.Name, role.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := role.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		role.SetActive(*req.IsActive)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	response := ToRoleResponse(role)
	return &response, nil
}

// SetPermissions replaces the permissions granted by a role
func (s *RoleService) SetPermissions(ctx context.Context, tenantID, id uuid.UUID, req SetPermissionsRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	permissions, err := s.resolvePermissions(ctx, tenantID, req.PermissionCodes)
	if err != nil {
		return nil, err
	}
	role.SetPermissions(permissions)

	if err := s.save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role permissions replaced",
		zap.String("role_id", role.ID.String()),
		zap.Strings("permissions", role.PermissionCodes()))

	response := ToRoleResponse(role)
	return &response, nil
}

// Delete removes a role
func (s *RoleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.roleRepo.DeleteForTenant(ctx, tenantID, id)
}

// save writes the role row and its permission links in one transaction
func (s *RoleService) save(ctx context.Context, role *identity.Role) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.roleRepo.Save(ctx, role); err != nil {
			return err
		}
		return s.roleRepo.ReplacePermissions(ctx, role)
	})
}

// resolvePermissions loads permissions by code and fails on unknown codes
func (s *RoleService) resolvePermissions(ctx context.Context, tenantID uuid.UUID, codes []string) ([]identity.Permission, error) {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		resource, action, err := identity.ParsePermissionCode(code)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, resource+":"+action)
	}
	if len(normalized) == 0 {
		return []identity.Permission{}, nil
	}

	permissions, err := s.permissionRepo.FindByCodes(ctx, tenantID, normalized)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		found[p.Code] = struct{}{}
	}
	var missing []string
	for _, code := range normalized {
		if _, ok := found[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_PERMISSION",
			fmt.Sprintf("Unknown permissions: %s", strings.Join(missing, ", ")))
	}
	return permissions, nil
}
