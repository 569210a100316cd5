package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/identity"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	roleRepo  identity.RoleRepository
	txManager shared.TransactionManager
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create creates a user with a bcrypt-hashed password and optional roles
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(tenantID, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.UpdateProfile(user.Email, req.DisplayName); err != nil {
			return nil, err
		}
	}

	exists, err := s.userRepo.ExistsByCode(ctx, tenantID, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username already exists")
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, tenantID, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email already exists")
	}

	roles, err := s.resolveRoles(ctx, tenantID, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	user.SetRoles(roles)

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("username", user.Username))

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user with roles
func (s *UserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves a page of users
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := filter.toFilter()

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Update changes email and display name
func (s *UserService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	previousEmail := user.Email
	if err := user.UpdateProfile(req.Email, req.DisplayName); err != nil {
		return nil, err
	}
	if user.Email != previousEmail {
		exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, user.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email already exists")
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// SetRoles replaces the roles assigned to a user
func (s *UserService) SetRoles(ctx context.Context, tenantID, id uuid.UUID, req SetRolesRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, tenantID, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	user.SetRoles(roles)

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User roles replaced",
		zap.String("user_id", user.ID.String()),
		zap.Int("roles", len(roles)))

	response := ToUserResponse(user)
	return &response, nil
}

// Activate enables a user
func (s *UserService) Activate(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, tenantID, id, (*identity.User).Activate)
}

// Deactivate disables a user
func (s *UserService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, tenantID, id, (*identity.User).Deactivate)
}

// ChangePassword verifies the current password and stores the new one
func (s *UserService) ChangePassword(ctx context.Context, tenantID, id uuid.UUID, req ChangePasswordRequest) error {
	_, err := s.mutate(ctx, tenantID, id, func(u *identity.User) error {
		return u.ChangePassword(req.OldPassword, req.NewPassword)
	})
	return err
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.userRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *UserService) mutate(ctx context.Context, tenantID, id uuid.UUID, fn func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// save writes the user row and its role links in one transaction
func (s *UserService) save(ctx context.Context, user *identity.User) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Save(ctx, user); err != nil {
			return err
		}
		return s.userRepo.ReplaceRoles(ctx, user)
	})
}

func (s *UserService) resolveRoles(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]identity.Role, error) {
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	roles, err := s.roleRepo.FindByIDs(ctx, tenantID, unique)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(unique) {
		return nil, shared.NewDomainError("INVALID_ROLE", "One or more roles do not exist")
	}
	return roles, nil
}
