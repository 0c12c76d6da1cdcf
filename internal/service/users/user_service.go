package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/rente/internal/authz"
	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/repository"
	"github.com/Domenick1991/rente/internal/token"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, *token.Pair, error)
	Logout(ctx context.Context, actor *domain.User) error
	Refresh(ctx context.Context, refreshToken string) (*token.Pair, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, actor *domain.User) ([]domain.User, error)
}

// PasswordPolicy is the pluggable strength check applied at registration.
type PasswordPolicy interface {
	Validate(password string) error
}

// MinLengthPolicy is the default policy.
type MinLengthPolicy struct {
	Min int
}

func (p MinLengthPolicy) Validate(password string) error {
	if len(password) < p.Min {
		return fmt.Errorf("password must be at least %d characters", p.Min)
	}
	return nil
}

type RegisterInput struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Password2 string      `json:"password2"`
	Role      domain.Role `json:"role"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *token.Manager
	policy PasswordPolicy
}

func NewUserService(users repository.UserRepository, tokens *token.Manager, policy PasswordPolicy) *UserService {
	return &UserService{users: users, tokens: tokens, policy: policy}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if input.Password != input.Password2 {
		return nil, domain.NewValidationError("password", "passwords do not match")
	}
	if s.policy != nil {
		if err := s.policy.Validate(input.Password); err != nil {
			return nil, domain.NewValidationError("password", err.Error())
		}
	}

	role := input.Role
	if role == "" {
		role = domain.RoleTenant
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, *token.Pair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *UserService) Logout(ctx context.Context, actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return s.tokens.Revoke(ctx, actor.ID)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// List exposes the user directory to admins only.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := authz.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

var _ UserUseCase = (*UserService)(nil)
