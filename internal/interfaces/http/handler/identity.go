package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/identity"
)

// IdentityHandler serves permissions, roles and users
type IdentityHandler struct {
	BaseHandler
	permissions *identityapp.PermissionService
	roles       *identityapp.RoleService
	users       *identityapp.UserService
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(permissions *identityapp.PermissionService, roles *identityapp.RoleService, users *identityapp.UserService) *IdentityHandler {
	return &IdentityHandler{permissions: permissions, roles: roles, users: users}
}

// CreatePermission godoc
// @ID           createPermission
// @Summary      Create a permission
// @Description  The code is derived as resource:action and is unique per tenant
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body identityapp.CreatePermissionRequest true "Permission"
// @Success      201 {object} APIResponse[identityapp.PermissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /identity/permissions [post]
func (h *IdentityHandler) CreatePermission(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req identityapp.CreatePermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	permission, err := h.permissions.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, permission)
}

// GetPermission godoc
// @ID           getPermission
// @Summary      Get a permission
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Permission ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.PermissionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /identity/permissions/{id} [get]
func (h *IdentityHandler) GetPermission(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "permission")
	if !ok {
		return
	}
	permission, err := h.permissions.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, permission)
}

// ListPermissions godoc
// @ID           listPermissions
// @Summary      List permissions
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query identityapp.PermissionListFilter false "Filter"
// @Success      200 {object} APIResponse[[]identityapp.PermissionResponse]
// @Router       /identity/permissions [get]
func (h *IdentityHandler) ListPermissions(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter identityapp.PermissionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.permissions.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdatePermission godoc
// @ID           updatePermission
// @Summary      Update a permission description
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Permission ID" format(uuid)
// @Param        request body identityapp.UpdatePermissionRequest true "Changes"
// @Success      200 {object} APIResponse[identityapp.PermissionResponse]
// @Router       /identity/permissions/{id} [put]
func (h *IdentityHandler) UpdatePermission(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "permission")
	if !ok {
		return
	}
	var req identityapp.UpdatePermissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	permission, err := h.permissions.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, permission)
}

// DeletePermission godoc
// @ID           deletePermission
// @Summary      Delete a permission
// @Tags         identity
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Permission ID" format(uuid)
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Router       /identity/permissions/{id} [delete]
func (h *IdentityHandler) DeletePermission(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "permission")
	if !ok {
		return
	}
	if err := h.permissions.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRole godoc
// @ID           createRole
// @Summary      Create a role
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body identityapp.CreateRoleRequest true "Role"
// @Success      201 {object} APIResponse[identityapp.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /identity/roles [post]
func (h *IdentityHandler) CreateRole(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req identityapp.CreateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// GetRole godoc
// @ID           getRole
// @Summary      Get a role with its permissions
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Role ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.RoleResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /identity/roles/{id} [get]
func (h *IdentityHandler) GetRole(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "role")
	if !ok {
		return
	}
	role, err := h.roles.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// ListRoles godoc
// @ID           listRoles
// @Summary      List roles
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query identityapp.RoleListFilter false "Filter"
// @Success      200 {object} APIResponse[[]identityapp.RoleResponse]
// @Router       /identity/roles [get]
func (h *IdentityHandler) ListRoles(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter identityapp.RoleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.roles.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateRole godoc
// @ID           updateRole
// @Summary      Update a role
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Role ID" format(uuid)
// @Param        request body identityapp.UpdateRoleRequest true "Changes"
// @Success      200 {object} APIResponse[identityapp.RoleResponse]
// @Router       /identity/roles/{id} [put]
func (h *IdentityHandler) UpdateRole(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "role")
	if !ok {
		return
	}
	var req identityapp.UpdateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// SetRolePermissions godoc
// @ID           setRolePermissions
// @Summary      Replace the permissions of a role
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Role ID" format(uuid)
// @Param        request body identityapp.SetPermissionsRequest true "Permission codes"
// @Success      200 {object} APIResponse[identityapp.RoleResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /identity/roles/{id}/permissions [put]
func (h *IdentityHandler) SetRolePermissions(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "role")
	if !ok {
		return
	}
	var req identityapp.SetPermissionsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	role, err := h.roles.SetPermissions(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// DeleteRole godoc
// @ID           deleteRole
// @Summary      Delete a role
// @Tags         identity
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Role ID" format(uuid)
// @Success      204
// @Router       /identity/roles/{id} [delete]
func (h *IdentityHandler) DeleteRole(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "role")
	if !ok {
		return
	}
	if err := h.roles.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateUser godoc
// @ID           createUser
// @Summary      Create a user
// @Description  The password is stored as a bcrypt hash
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body identityapp.CreateUserRequest true "User"
// @Success      201 {object} APIResponse[identityapp.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /identity/users [post]
func (h *IdentityHandler) CreateUser(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req identityapp.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.users.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetUser godoc
// @ID           getUser
// @Summary      Get a user with roles
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /identity/users/{id} [get]
func (h *IdentityHandler) GetUser(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ListUsers godoc
// @ID           listUsers
// @Summary      List users
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query identityapp.UserListFilter false "Filter"
// @Success      200 {object} APIResponse[[]identityapp.UserResponse]
// @Router       /identity/users [get]
func (h *IdentityHandler) ListUsers(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter identityapp.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.users.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateUser godoc
// @ID           updateUser
// @Summary      Update a user profile
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Param        request body identityapp.UpdateUserRequest true "Changes"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Router       /identity/users/{id} [put]
func (h *IdentityHandler) UpdateUser(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	var req identityapp.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// SetUserRoles godoc
// @ID           setUserRoles
// @Summary      Replace the roles of a user
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Param        request body identityapp.SetRolesRequest true "Role IDs"
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Router       /identity/users/{id}/roles [put]
func (h *IdentityHandler) SetUserRoles(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	var req identityapp.SetRolesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.users.SetRoles(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ActivateUser godoc
// @ID           activateUser
// @Summary      Activate a user
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Router       /identity/users/{id}/activate [post]
func (h *IdentityHandler) ActivateUser(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	user, err := h.users.Activate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// DeactivateUser godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Tags         identity
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[identityapp.UserResponse]
// @Router       /identity/users/{id}/deactivate [post]
func (h *IdentityHandler) DeactivateUser(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	user, err := h.users.Deactivate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeUserPassword godoc
// @ID           changeUserPassword
// @Summary      Change a user's password
// @Tags         identity
// @Accept       json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Param        request body identityapp.ChangePasswordRequest true "New password"
// @Success      204
// @Router       /identity/users/{id}/password [put]
func (h *IdentityHandler) ChangeUserPassword(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), tenantID, id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteUser godoc
// @ID           deleteUser
// @Summary      Delete a user
// @Tags         identity
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Router       /identity/users/{id} [delete]
func (h *IdentityHandler) DeleteUser(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "user")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
