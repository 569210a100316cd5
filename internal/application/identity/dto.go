package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// CreatePermissionRequest represents a request to create a permission
type CreatePermissionRequest struct {
	Resource    string `json:"resource" binding:"required,min=1,max=100" example:"product"`
	Action      string `json:"action" binding:"required,min=1,max=50" example:"create"`
	Description string `json:"description" binding:"max=500"`
}

// UpdatePermissionRequest represents a request to update a permission
type UpdatePermissionRequest struct {
	Description string `json:"description" binding:"max=500"`
}

// PermissionResponse represents a permission in API responses
type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionListFilter represents filter options for the permission list
type PermissionListFilter struct {
	Search   string `form:"search"`
	Resource string `form:"resource"`
	Action   string `form:"action"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f PermissionListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("resource", f.Resource).
		With("action", f.Action)
}

// ToPermissionResponse converts a domain Permission to PermissionResponse
func ToPermissionResponse(p *identity.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Code:        p.Code,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Code            string   `json:"code" binding:"required,min=1,max=50" example:"WAREHOUSE_STAFF"`
	Name            string   `json:"name" binding:"required,min=1,max=100" example:"Warehouse staff"`
	Description     string   `json:"description" binding:"max=500"`
	PermissionCodes []string `json:"permission_codes" example:"stock:read,adjustment:create"`
}

// UpdateRoleRequest represents a request to update a role
type UpdateRoleRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// SetPermissionsRequest replaces the permissions of a role
type SetPermissionsRequest struct {
	PermissionCodes []string `json:"permission_codes" binding:"required"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// RoleListFilter represents filter options for the role list
type RoleListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f RoleListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("is_active", f.IsActive)
}

// ToRoleResponse converts a domain Role to RoleResponse
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		Permissions: r.PermissionCodes(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username    string      `json:"username" binding:"required,min=3,max=100" example:"budi"`
	Email       string      `json:"email" binding:"required,email,max=200" example:"budi@example.com"`
	DisplayName string      `json:"display_name" binding:"max=200" example:"Budi Santoso"`
	Password    string      `json:"password" binding:"required,min=8,max=72"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
}

// UpdateUserRequest represents a request to update a user's profile
type UpdateUserRequest struct {
	Email       string `json:"email" binding:"required,email,max=200"`
	DisplayName string `json:"display_name" binding:"max=200"`
}

// SetRolesRequest replaces the roles of a user
type SetRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required"`
}

// ChangePasswordRequest changes a user's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserRoleResponse is the short form of a role attached to a user
type UserRoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID          `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
	IsActive    bool               `json:"is_active"`
	LastLoginAt *time.Time         `json:"last_login_at,omitempty"`
	Roles       []UserRoleResponse `json:"roles"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f UserListFilter) toFilter() shared.Filter {
	return shared.NewFilter(f.Page, f.PageSize, f.OrderBy, f.OrderDir, f.Search).
		With("is_active", f.IsActive)
}

// ToUserResponse converts a domain User to UserResponse. The password hash never leaves the domain.
func ToUserResponse(u *identity.User) UserResponse {
	roles := make([]UserRoleResponse, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = UserRoleResponse{ID: r.ID, Code: r.Code, Name: r.Name}
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		Roles:       roles,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Version:     u.Version,
	}
}
