package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret",
		SessionTokenExp:      time.Hour,
		VerificationTokenExp: 15 * time.Minute,
		TokenIssuer:          "clubsphere.test",
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	token, expiresIn, err := svc.IssueSessionToken("210301001")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "210301001", claims.EnrollmentNumber())
	assert.Empty(t, claims.Email)
	assert.Equal(t, "clubsphere.test", claims.Issuer)
}

func TestVerificationTokenBindsEmail(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	token, err := svc.IssueVerificationToken("210301001", "a@x.com")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "210301001", claims.EnrollmentNumber())
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerifyTokenExpired(t *testing.T) {
	current := time.Now()
	svc := NewJWTService(testJWTConfig()).WithClock(func() time.Time { return current })

	token, err := svc.IssueVerificationToken("210301001", "a@x.com")
	require.NoError(t, err)

	// Still valid just before expiry
	current = current.Add(14 * time.Minute)
	_, err = svc.VerifyToken(token)
	require.NoError(t, err)

	// Invalid once the expiry window has elapsed
	current = current.Add(2 * time.Minute)
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenTampered(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	token, _, err := svc.IssueSessionToken("210301001")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	otherConfig := testJWTConfig()
	otherConfig.SecretKey = "other-secret"
	other := NewJWTService(otherConfig)

	token, _, err := other.IssueSessionToken("210301001")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	// Expired, tampered and malformed all collapse into the same error
	for _, token := range []string{"", "   ", "garbage", "a.b.c"} {
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
