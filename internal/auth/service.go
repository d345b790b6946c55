package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/glum-catalog/backend/internal/config"
	"github.com/glum-catalog/backend/internal/model"
)

const defaultMaxLoginAttempts = 9

// AccountStore is the credential-store collaborator. Lookups report a
// missing account with model.ErrNotFound.
type AccountStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	RecordLoginFailure(ctx context.Context, userID int64) error
	ResetLoginFailures(ctx context.Context, userID int64) error
}

// Notifier receives fire-and-forget verification mail requests. It must
// never block or fail the login path.
type Notifier interface {
	EnqueueVerification(email, firstName string)
}

type Credential struct {
	Username string
	Password string
	Role     string
}

// Principal is the authenticated identity downstream handlers consult for
// authorization decisions.
type Principal struct {
	ID       int64
	Username string
	Role     string
}

// Service implements the login protocol and the session guard on top of
// an AccountStore, the hasher and the token codec. It holds no mutable
// state of its own.
type Service struct {
	store    AccountStore
	hasher   *PasswordHasher
	codec    *TokenCodec
	notifier Notifier

	requireVerifiedEmail bool
	maxLoginAttempts     int
}

func NewService(store AccountStore, hasher *PasswordHasher, codec *TokenCodec, notifier Notifier, cfg config.AuthConfig) (*Service, error) {
	requireVerified, err := parseBool(cfg.RequireVerifiedEmail, false)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_REQUIRE_VERIFIED_EMAIL", ErrMisconfigured)
	}

	maxAttempts := defaultMaxLoginAttempts
	if strings.TrimSpace(cfg.MaxLoginAttempts) != "" {
		maxAttempts, err = strconv.Atoi(cfg.MaxLoginAttempts)
		if err != nil || maxAttempts < 1 {
			return nil, fmt.Errorf("%w: invalid AUTH_MAX_LOGIN_ATTEMPTS", ErrMisconfigured)
		}
	}

	return &Service{
		store:                store,
		hasher:               hasher,
		codec:                codec,
		notifier:             notifier,
		requireVerifiedEmail: requireVerified,
		maxLoginAttempts:     maxAttempts,
	}, nil
}

// Login runs the gates in order: lookup, lockout, password, status,
// optional email verification, the APP_USER application-token check,
// exact role match, then token issuance. Each gate is one shot; the first
// failure is the result.
func (s *Service) Login(ctx context.Context, cred Credential, appToken string) (string, Principal, error) {
	user, err := s.store.GetUserByUsername(ctx, cred.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", Principal{}, ErrAccountNotFound
		}
		return "", Principal{}, fmt.Errorf("%w: account lookup: %v", ErrInternal, err)
	}

	if user.LoginAttempts >= s.maxLoginAttempts {
		return "", Principal{}, ErrAccountLocked
	}

	if !s.hasher.Verify(cred.Password, user.PasswordHash) {
		if err := s.store.RecordLoginFailure(ctx, user.ID); err != nil {
			log.Printf("[Auth] Failed to record login failure for user %d: %v", user.ID, err)
		}
		return "", Principal{}, ErrInvalidCredentials
	}

	if user.Status != model.StatusActive {
		return "", Principal{}, ErrAccountInactive
	}

	if s.requireVerifiedEmail && !user.EmailVerified {
		s.notifier.EnqueueVerification(user.Email, user.FirstName)
		return "", Principal{}, ErrEmailUnverified
	}

	if cred.Role == model.RoleAppUser {
		if err := s.checkAppToken(appToken); err != nil {
			return "", Principal{}, err
		}
	}

	if cred.Role != user.Role {
		return "", Principal{}, fmt.Errorf("%w: requested %q, account has %q", ErrRoleMismatch, cred.Role, user.Role)
	}

	if user.LoginAttempts > 0 {
		if err := s.store.ResetLoginFailures(ctx, user.ID); err != nil {
			log.Printf("[Auth] Failed to reset login failures for user %d: %v", user.ID, err)
		}
	}

	token, err := s.codec.Issue(user.Username, user.Role)
	if err != nil {
		log.Printf("[Auth] Token issuance failed for user %q: %v", user.Username, err)
		return "", Principal{}, fmt.Errorf("%w: token issuance: %v", ErrInternal, err)
	}

	return token, Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// checkAppToken validates the application-level bearer token required for
// APP_USER logins. Decode failures surface as ErrAppTokenInvalid;
// anything else is a fault, not a credential failure.
func (s *Service) checkAppToken(appToken string) error {
	if appToken == "" {
		return ErrAppTokenRequired
	}

	_, err := s.codec.Verify(appToken)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTokenMalformed) || errors.Is(err, ErrTokenSignature) ||
		errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenMissingSubject) {
		return fmt.Errorf("%w: %v", ErrAppTokenInvalid, err)
	}

	log.Printf("[Auth] Unexpected app token verification failure: %v", err)
	return fmt.Errorf("%w: app token verification: %v", ErrInternal, err)
}

// Authenticate verifies a session token and re-resolves its subject
// against the store. The re-resolution compensates for the absence of
// expiry and revocation: an account deleted or deactivated since issuance
// stops authorizing immediately.
func (s *Service) Authenticate(ctx context.Context, bearer string) (Principal, error) {
	if bearer == "" {
		return Principal{}, ErrUnauthenticated
	}

	claims, err := s.codec.Verify(bearer)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.store.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, fmt.Errorf("%w: principal lookup: %v", ErrInternal, err)
	}
	if user.Status != model.StatusActive {
		return Principal{}, ErrPrincipalNotFound
	}

	return Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// RequireRole gates a resolved principal on an exact role.
func RequireRole(p Principal, role string) error {
	if p.Role != role {
		return fmt.Errorf("%w: requires role %s", ErrForbidden, role)
	}
	return nil
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
