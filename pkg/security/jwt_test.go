package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "segredo-de-teste-com-mais-de-32-bytes!!"

func TestNewKeyManager(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewKeyManager("curto", time.Hour, logger)
		assert.ErrorIs(t, err, ErrSecretTooShort)
	})

	t.Run("defaults ttl to one hour", func(t *testing.T) {
		km, err := NewKeyManager(testSecret, 0, logger)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, km.TTL())
	})
}

func TestKeyManager_RoundTrip(t *testing.T) {
	km, err := NewKeyManager(testSecret, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := km.GenerateToken(42)
	require.NoError(t, err)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestKeyManager_VerifyToken(t *testing.T) {
	logger := zaptest.NewLogger(t)
	km, err := NewKeyManager(testSecret, time.Hour, logger)
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		km.now = func() time.Time { return issued }
		token, err := km.GenerateToken(7)
		km.now = time.Now
		require.NoError(t, err)

		_, err = km.VerifyToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := NewKeyManager(strings.Repeat("x", MinSecretLength), time.Hour, logger)
		require.NoError(t, err)
		token, err := other.GenerateToken(7)
		require.NoError(t, err)

		_, err = km.VerifyToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.VerifyToken("isto.nao.e-um-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token without user id", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = km.VerifyToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token without expiration", func(t *testing.T) {
		claims := &Claims{UserID: 7}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = km.VerifyToken(token)
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: 7, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = km.VerifyToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
