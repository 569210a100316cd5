package identity

import (
	"regexp"
	"strings"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

var permissionPartPattern = regexp.MustCompile(`^[a-z][a-z0-9_\-]*$`)

// Permission is a functional permission following the resource:action pattern
type Permission struct {
	shared.TenantAggregateRoot
	Code        string `gorm:"type:varchar(150);not null;uniqueIndex:idx_permission_tenant_code,priority:2"`
	Resource    string `gorm:"type:varchar(100);not null"`
	Action      string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission creates a permission for resource and action
func NewPermission(tenantID uuid.UUID, resource, action, description string) (*Permission, error) {
	resource, action, err := normalizePermissionParts(resource, action)
	if err != nil {
		return nil, err
	}
	return &Permission{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                resource + ":" + action,
		Resource:            resource,
		Action:              action,
		Description:         strings.TrimSpace(description),
	}, nil
}

// ParsePermissionCode splits "resource:action" into its parts
func ParsePermissionCode(code string) (resource, action string, err error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return "", "", shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return normalizePermissionParts(parts[0], parts[1])
}

// Update changes the description of the permission
func (p *Permission) Update(description string) {
	p.Description = strings.TrimSpace(description)
	p.IncrementVersion()
}

func normalizePermissionParts(resource, action string) (string, string, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))
	if !permissionPartPattern.MatchString(resource) || len(resource) > 100 {
		return "", "", shared.NewDomainError("INVALID_PERMISSION_RESOURCE", "Permission resource must be lowercase letters, digits, '_' or '-'")
	}
	if action != "*" && (!permissionPartPattern.MatchString(action) || len(action) > 50) {
		return "", "", shared.NewDomainError("INVALID_PERMISSION_ACTION", "Permission action must be lowercase letters, digits, '_' or '-'")
	}
	return resource, action, nil
}
