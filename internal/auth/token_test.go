package auth

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glum-catalog/backend/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:    "test-secret",
		JWTAlgorithm: "HS256",
		AccessTTL:    "60m",
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	token, err := codec.Issue("a@x.com", "SYSTEM_USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "SYSTEM_USER", claims.Role)
	assert.NotNil(t, claims.IssuedAt)
	assert.Nil(t, claims.ExpiresAt)
}

func TestTokenCodecTamperedSignature(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	token, err := codec.Issue("a@x.com", "APP_USER")
	require.NoError(t, err)

	// Flip the first character of the signature segment. The low bits of
	// the final character are base64 padding the decoder ignores, so only
	// a non-final character is guaranteed to change the decoded bytes.
	dot := strings.LastIndex(token, ".")
	require.Greater(t, dot, 0)
	sig := token[dot+1:]
	require.NotEmpty(t, sig)

	flipped := byte('A')
	if sig[0] == 'A' {
		flipped = 'B'
	}
	tampered := token[:dot+1] + string(flipped) + sig[1:]

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret"
	other, err := NewTokenCodec(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue("a@x.com", "APP_USER")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenCodecMalformed(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}

func TestTokenCodecMissingSubject(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "APP_USER",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMissingSubject)
}

func TestTokenCodecRejectsNonHMAC(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@x.com",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	assert.Error(t, err)
}

func TestTokenCodecExpiryToggle(t *testing.T) {
	cfg := testAuthConfig()
	cfg.EnforceExpiry = "true"
	cfg.AccessTTL = "-1m"

	enforcing, err := NewTokenCodec(cfg)
	require.NoError(t, err)

	token, err := enforcing.Issue("a@x.com", "APP_USER")
	require.NoError(t, err)

	_, err = enforcing.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// With enforcement off the same token still verifies: the account
	// row, not the claim, decides continued authorization.
	relaxed, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	claims, err := relaxed.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestTokenCodecMisconfigured(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"empty secret", config.AuthConfig{JWTAlgorithm: "HS256", AccessTTL: "60m"}},
		{"bad algorithm", config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "RS256", AccessTTL: "60m"}},
		{"bad ttl", config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "HS256", AccessTTL: "soon"}},
		{"bad expiry toggle", config.AuthConfig{JWTSecret: "s", JWTAlgorithm: "HS256", AccessTTL: "60m", EnforceExpiry: "maybe"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTokenCodec(tc.cfg)
			assert.ErrorIs(t, err, ErrMisconfigured)
		})
	}
}

func TestTokenCodecIssueRequiresSubject(t *testing.T) {
	codec, err := NewTokenCodec(testAuthConfig())
	require.NoError(t, err)

	_, err = codec.Issue("", "APP_USER")
	assert.ErrorIs(t, err, ErrTokenMissingSubject)
}
