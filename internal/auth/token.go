package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glum-catalog/backend/internal/config"
)

// Claims carried by every token this service signs: subject identifier,
// role, issued-at. Session tokens and application tokens share this shape
// and the signing secret; nothing in the format distinguishes them, so
// callers must rely on the channel a token arrived through.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the compact session tokens. The secret
// and method are fixed at construction and never mutated, so one codec
// serves arbitrarily many concurrent requests.
type TokenCodec struct {
	secret        []byte
	method        jwt.SigningMethod
	accessTTL     time.Duration
	enforceExpiry bool
}

func NewTokenCodec(cfg config.AuthConfig) (*TokenCodec, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	method, err := signingMethod(cfg.JWTAlgorithm)
	if err != nil {
		return nil, err
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	enforceExpiry, err := parseBool(cfg.EnforceExpiry, false)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_ENFORCE_EXPIRY", ErrMisconfigured)
	}

	return &TokenCodec{
		secret:        []byte(cfg.JWTSecret),
		method:        method,
		accessTTL:     accessTTL,
		enforceExpiry: enforceExpiry,
	}, nil
}

// Issue signs a token for the given subject and role. The expiry claim is
// only emitted when AUTH_ENFORCE_EXPIRY is on; without it the account row
// itself is the source of truth for "still authorized".
func (c *TokenCodec) Issue(subject, role string) (string, error) {
	if subject == "" {
		return "", ErrTokenMissingSubject
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.enforceExpiry {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.accessTTL))
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify decodes and checks the signature. Signature and structural
// validity are the only checks; there is no revocation list.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{c.method.Alg()})}
	if !c.enforceExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignature
	}
	if claims.Subject == "" {
		return nil, ErrTokenMissingSubject
	}

	return claims, nil
}

func signingMethod(name string) (jwt.SigningMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: unsupported JWT_ALGORITHM %q", ErrMisconfigured, name)
	}
}
