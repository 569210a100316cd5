package identity

import (
	"strings"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// Role groups permissions and is assigned to users
type Role struct {
	shared.TenantAggregateRoot
	Code        string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_tenant_code,priority:2"`
	Name        string       `gorm:"type:varchar(100);not null"`
	Description string       `gorm:"type:varchar(500)"`
	IsActive    bool         `gorm:"not null;default:true"`
	Permissions []Permission `gorm:"many2many:role_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates an active role without permissions
func NewRole(tenantID uuid.UUID, code, name string) (*Role, error) {
	code, err := shared.NormalizeCode(code, 50)
	if err != nil {
		return nil, err
	}
	name, err = shared.RequireName(name, 100)
	if err != nil {
		return nil, err
	}
	return &Role{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		IsActive:            true,
		Permissions:         make([]Permission, 0),
	}, nil
}

// Update changes the role name and description
func (r *Role) Update(name, description string) error {
	name, err := shared.RequireName(name, 100)
	if err != nil {
		return err
	}
	r.Name = name
	r.Description = strings.TrimSpace(description)
	r.IncrementVersion()
	return nil
}

// SetActive toggles whether the role grants its permissions
func (r *Role) SetActive(active bool) {
	r.IsActive = active
	r.IncrementVersion()
}

// SetPermissions replaces the permission set, dropping duplicates
func (r *Role) SetPermissions(permissions []Permission) {
	seen := make(map[string]struct{}, len(permissions))
	result := make([]Permission, 0, len(permissions))
	for _, p := range permissions {
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		result = append(result, p)
	}
	r.Permissions = result
	r.IncrementVersion()
}

// HasPermission reports whether the role grants code, honouring "resource:*" wildcards
func (r *Role) HasPermission(code string) bool {
	if !r.IsActive {
		return false
	}
	resource, _, _ := strings.Cut(code, ":")
	for _, p := range r.Permissions {
		if p.Code == code || p.Code == resource+":*" {
			return true
		}
	}
	return false
}

// PermissionCodes returns the codes of the role's permissions
func (r *Role) PermissionCodes() []string {
	codes := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		codes[i] = p.Code
	}
	return codes
}
