package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"gorm.io/gorm"
)

// GormPermissionRepository implements identity.PermissionRepository
type GormPermissionRepository struct {
	*GormCrudRepository[identity.Permission]
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{
		GormCrudRepository: NewGormCrudRepository[identity.Permission](db, TableSpec{
			CodeColumn:    "code",
			SearchColumns: []string{"code", "description"},
			Filters: map[string]FilterFunc{
				"resource": Eq("resource"),
				"action":   Eq("action"),
			},
			SortFields:  PermissionSortFields,
			DefaultSort: "code",
		}),
	}
}

// FindByCodes returns the permissions matching codes
func (r *GormPermissionRepository) FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) ([]identity.Permission, error) {
	if len(codes) == 0 {
		return []identity.Permission{}, nil
	}
	var permissions []identity.Permission
	if err := r.conn(ctx).
		Where("tenant_id = ? AND code IN ?", tenantID, codes).
		Order("code").
		Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// GormRoleRepository implements identity.RoleRepository
type GormRoleRepository struct {
	*GormCrudRepository[identity.Role]
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{
		GormCrudRepository: NewGormCrudRepository[identity.Role](db, TableSpec{
			CodeColumn:    "code",
			SearchColumns: []string{"code", "name"},
			Filters: map[string]FilterFunc{
				"is_active": Eq("is_active"),
			},
			SortFields:  RoleSortFields,
			DefaultSort: "code",
			Preloads:    []string{"Permissions"},
		}),
	}
}

// FindByIDs returns the roles with the given IDs and their permissions
func (r *GormRoleRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]identity.Role, error) {
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	var roles []identity.Role
	if err := r.conn(ctx).
		Preload("Permissions").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("code").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// ReplacePermissions rewrites the role_permissions links of role
func (r *GormRoleRepository) ReplacePermissions(ctx context.Context, role *identity.Role) error {
	links := make([]map[string]any, len(role.Permissions))
	for i, p := range role.Permissions {
		links[i] = map[string]any{"role_id": role.ID, "permission_id": p.ID}
	}
	return replaceLinks(r.conn(ctx), "role_permissions", "role_id", role.ID, links)
}

// GormUserRepository implements identity.UserRepository
type GormUserRepository struct {
	*GormCrudRepository[identity.User]
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		GormCrudRepository: NewGormCrudRepository[identity.User](db, TableSpec{
			CodeColumn:    "username",
			SearchColumns: []string{"username", "email", "display_name"},
			Filters: map[string]FilterFunc{
				"is_active": Eq("is_active"),
			},
			SortFields:  UserSortFields,
			DefaultSort: "username",
			Preloads:    []string{"Roles", "Roles.Permissions"},
		}),
	}
}

// ExistsByEmail checks whether the email is taken within the tenant
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.conn(ctx).Model(&identity.User{}).
		Where("tenant_id = ? AND LOWER(email) = ?", tenantID, strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceRoles rewrites the user_roles links of user
func (r *GormUserRepository) ReplaceRoles(ctx context.Context, user *identity.User) error {
	links := make([]map[string]any, len(user.Roles))
	for i, role := range user.Roles {
		links[i] = map[string]any{"user_id": user.ID, "role_id": role.ID}
	}
	return replaceLinks(r.conn(ctx), "user_roles", "user_id", user.ID, links)
}

// replaceLinks deletes the join rows owned by ownerID and inserts links
func replaceLinks(db *gorm.DB, table, ownerColumn string, ownerID uuid.UUID, links []map[string]any) error {
	return translateError(db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerColumn+" = ?", ownerID).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Table(table).Create(links).Error
	}))
}

var (
	_ identity.PermissionRepository = (*GormPermissionRepository)(nil)
	_ identity.RoleRepository       = (*GormRoleRepository)(nil)
	_ identity.UserRepository       = (*GormUserRepository)(nil)
)
