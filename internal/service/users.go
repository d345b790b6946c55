package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glum-catalog/backend/internal/auth"
	"github.com/glum-catalog/backend/internal/model"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
	maxListLimit      = 100
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// UserStore is the persistence surface the user service needs. Lookups
// report a missing row with model.ErrNotFound.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]model.User, error)
	UpdateUser(ctx context.Context, u *model.User) (*model.User, error)
	MarkEmailVerified(ctx context.Context, email string) error
}

// VerificationNotifier hands verification mail requests to the background
// mailer; it never blocks.
type VerificationNotifier interface {
	EnqueueVerification(email, firstName string)
}

type UserService struct {
	store    UserStore
	hasher   *auth.PasswordHasher
	notifier VerificationNotifier
}

func NewUserService(store UserStore, hasher *auth.PasswordHasher, notifier VerificationNotifier) *UserService {
	return &UserService{store: store, hasher: hasher, notifier: notifier}
}

// Create stores a new account with a hashed password and queues the
// verification mail. The plaintext never reaches the store.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := validateNewUser(req); err != nil {
		return nil, err
	}

	_, err := s.store.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: username already registered", ErrConflict)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleAppUser
	}

	user, err := s.store.CreateUser(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashed,
		Role:         role,
		Status:       model.StatusActive,
		UserType:     8,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.EnqueueVerification(user.Email, user.FirstName)

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return s.store.GetUserByPhone(ctx, phone)
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.ListUsers(ctx, offset, limit)
}

// Update loads the account, applies the patch through its single merge
// function and writes the row back. A password change passes through the
// hasher first.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password too short", ErrInvalidInput)
		}
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		user.MustChangePassword = false
	}

	patch.Apply(user)

	return s.store.UpdateUser(ctx, user)
}

// VerifyEmail flips the verification flag for the address, returning
// model.ErrNotFound when no account owns it.
func (s *UserService) VerifyEmail(ctx context.Context, email string) error {
	return s.store.MarkEmailVerified(ctx, email)
}

// EnsureAdmin creates the bootstrap back-office account when it does not
// exist yet.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	_, err = s.store.CreateUser(ctx, &model.User{
		Username:      username,
		Email:         username,
		PasswordHash:  hashed,
		Role:          model.RoleSystemUser,
		Status:        model.StatusActive,
		EmailVerified: true,
	})
	return err
}

func validateNewUser(req model.CreateUserRequest) error {
	if len(strings.TrimSpace(req.Username)) < minUsernameLength {
		return fmt.Errorf("%w: username too short", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password too short", ErrInvalidInput)
	}
	switch req.Role {
	case "", model.RoleAppUser, model.RoleSystemUser, model.RoleAppClient:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	return nil
}
