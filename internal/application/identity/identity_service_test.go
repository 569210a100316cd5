package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPermissionRepo struct {
	testutil.CrudRepository[identity.Permission]
}

func (m *mockPermissionRepo) FindByCodes(ctx context.Context, tenantID uuid.UUID, codes []string) ([]identity.Permission, error) {
	args := m.Called(ctx, tenantID, codes)
	return args.Get(0).([]identity.Permission), args.Error(1)
}

type mockRoleRepo struct {
	testutil.CrudRepository[identity.Role]
}

func (m *mockRoleRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]identity.Role, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *mockRoleRepo) ReplacePermissions(ctx context.Context, role *identity.Role) error {
	return m.Called(ctx, role).Error(0)
}

type mockUserRepo struct {
	testutil.CrudRepository[identity.User]
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ReplaceRoles(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestPermissionService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()

	t.Run("derives the code from resource and action", func(t *testing.T) {
		repo := new(mockPermissionRepo)
		svc := NewPermissionService(repo, zap.NewNop())

		repo.On("ExistsByCode", ctx, tenantID, "product:create").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Permission")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreatePermissionRequest{Resource: "Product", Action: "Create"})
		require.NoError(t, err)
		assert.Equal(t, "product:create", resp.Code)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		repo := new(mockPermissionRepo)
		svc := NewPermissionService(repo, zap.NewNop())
		repo.On("ExistsByCode", ctx, tenantID, "product:read").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreatePermissionRequest{Resource: "product", Action: "read"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRoleService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()
	read, err := identity.NewPermission(tenantID, "stock", "read", "")
	require.NoError(t, err)

	t.Run("grants known permissions inside a transaction", func(t *testing.T) {
		roles, perms, tx := new(mockRoleRepo), new(mockPermissionRepo), &testutil.TxManager{}
		svc := NewRoleService(roles, perms, tx, zap.NewNop())

		roles.On("ExistsByCode", ctx, tenantID, "CLERK").Return(false, nil)
		perms.On("FindByCodes", ctx, tenantID, []string{"stock:read"}).Return([]identity.Permission{*read}, nil)
		roles.On("Save", ctx, mock.AnythingOfType("*identity.Role")).Return(nil)
		roles.On("ReplacePermissions", ctx, mock.AnythingOfType("*identity.Role")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateRoleRequest{Code: "clerk", Name: "Clerk", PermissionCodes: []string{"Stock:Read"}})
		require.NoError(t, err)
		assert.Equal(t, "CLERK", resp.Code)
		assert.Equal(t, []string{"stock:read"}, resp.Permissions)
		assert.Equal(t, 1, tx.Calls)
		roles.AssertExpectations(t)
	})

	t.Run("unknown permission codes are reported", func(t *testing.T) {
		roles, perms := new(mockRoleRepo), new(mockPermissionRepo)
		svc := NewRoleService(roles, perms, &testutil.TxManager{}, zap.NewNop())

		roles.On("ExistsByCode", ctx, tenantID, "CLERK").Return(false, nil)
		perms.On("FindByCodes", ctx, tenantID, []string{"stock:read", "stock:write"}).Return([]identity.Permission{*read}, nil)

		_, err := svc.Create(ctx, tenantID, CreateRoleRequest{Code: "clerk", Name: "Clerk", PermissionCodes: []string{"stock:read", "stock:write"}})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PERMISSION", domainErr.Code)
		assert.Contains(t, domainErr.Message, "stock:write")
		roles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()

	t.Run("create checks username and email", func(t *testing.T) {
		users, roles := new(mockUserRepo), new(mockRoleRepo)
		svc := NewUserService(users, roles, &testutil.TxManager{}, zap.NewNop())

		users.On("ExistsByCode", ctx, tenantID, "budi").Return(false, nil)
		users.On("ExistsByEmail", ctx, tenantID, "budi@example.com").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateUserRequest{Username: "Budi", Email: "budi@example.com", Password: "secret-123"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("create assigns roles and hides the hash", func(t *testing.T) {
		users, roles := new(mockUserRepo), new(mockRoleRepo)
		tx := &testutil.TxManager{}
		svc := NewUserService(users, roles, tx, zap.NewNop())

		role, err := identity.NewRole(tenantID, "CLERK", "Clerk")
		require.NoError(t, err)

		users.On("ExistsByCode", ctx, tenantID, "budi").Return(false, nil)
		users.On("ExistsByEmail", ctx, tenantID, "budi@example.com").Return(false, nil)
		roles.On("FindByIDs", ctx, tenantID, []uuid.UUID{role.ID}).Return([]identity.Role{*role}, nil)
		users.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		users.On("ReplaceRoles", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateUserRequest{
			Username: "Budi", Email: "budi@example.com", DisplayName: "Budi Santoso",
			Password: "secret-123", RoleIDs: []uuid.UUID{role.ID, role.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "budi", resp.Username)
		assert.Equal(t, "Budi Santoso", resp.DisplayName)
		require.Len(t, resp.Roles, 1)
		assert.Equal(t, "CLERK", resp.Roles[0].Code)
		assert.Equal(t, 1, tx.Calls)
	})

	t.Run("missing roles are rejected", func(t *testing.T) {
		users, roles := new(mockUserRepo), new(mockRoleRepo)
		svc := NewUserService(users, roles, &testutil.TxManager{}, zap.NewNop())
		user, err := identity.NewUser(tenantID, "budi", "budi@example.com", "secret-123")
		require.NoError(t, err)

		missing := uuid.New()
		users.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
		roles.On("FindByIDs", ctx, tenantID, []uuid.UUID{missing}).Return([]identity.Role{}, nil)

		_, err = svc.SetRoles(ctx, tenantID, user.ID, SetRolesRequest{RoleIDs: []uuid.UUID{missing}})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ROLE", domainErr.Code)
	})

	t.Run("change password verifies the old one", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewUserService(users, new(mockRoleRepo), &testutil.TxManager{}, zap.NewNop())
		user, err := identity.NewUser(tenantID, "budi", "budi@example.com", "secret-123")
		require.NoError(t, err)

		users.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		err = svc.ChangePassword(ctx, tenantID, user.ID, ChangePasswordRequest{OldPassword: "wrong-pass", NewPassword: "another-123"})
		assert.Error(t, err)

		require.NoError(t, svc.ChangePassword(ctx, tenantID, user.ID, ChangePasswordRequest{OldPassword: "secret-123", NewPassword: "another-123"}))
		assert.True(t, user.VerifyPassword("another-123"))
		users.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("deactivate twice fails", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewUserService(users, new(mockRoleRepo), &testutil.TxManager{}, zap.NewNop())
		user, err := identity.NewUser(tenantID, "budi", "budi@example.com", "secret-123")
		require.NoError(t, err)

		users.On("FindByIDForTenant", ctx, tenantID, user.ID).Return(user, nil)
		users.On("Save", ctx, user).Return(nil)

		resp, err := svc.Deactivate(ctx, tenantID, user.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)

		_, err = svc.Deactivate(ctx, tenantID, user.ID)
		assert.Error(t, err)
	})
}
