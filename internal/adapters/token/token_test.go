package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueSignsChannelScopedToken(t *testing.T) {
	iss := NewIssuer("app-1", "secret", time.Hour)

	signed, expiry, err := iss.Issue("room-42", "user-7")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-7", claims["sub"])
	assert.Equal(t, "room-42", claims["channel"])
	assert.Equal(t, "app-1", claims["app_id"])
}

func TestIssueWithoutCredentials(t *testing.T) {
	iss := NewIssuer("", "", time.Hour)
	_, _, err := iss.Issue("room", "user")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.False(t, iss.Configured())
	assert.False(t, iss.CertificateConfigured())
}
