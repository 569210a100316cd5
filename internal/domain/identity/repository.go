package identity

import (
	"context"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// PermissionRepository persists permissions
type PermissionRepository interface {
	shared.CrudRepository[Permission]
	FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) ([]Permission, error)
}

// RoleRepository persists roles together with their permission links
type RoleRepository interface {
	shared.CrudRepository[Role]
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Role, error)
	ReplacePermissions(ctx context.Context, role *Role) error
}

// UserRepository persists users together with their role links
type UserRepository interface {
	shared.CrudRepository[User]
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	ReplaceRoles(ctx context.Context, user *User) error
}
