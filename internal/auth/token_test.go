package auth

import (
	"testing"
	"time"

	"famick/internal/config"
	"famick/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(config.JWTConfig{
		Secret:          "test-secret",
		AccessTTLMin:    15,
		RefreshTTLHours: 720,
	})
	require.NoError(t, err)
	return issuer
}

var testUser = &model.User{
	ID:       "user-1",
	TenantID: "tenant-1",
	Email:    "a@example.com",
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(config.JWTConfig{})
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	issuer := testIssuer(t)

	pair, err := issuer.IssuePair(testUser)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := issuer.Parse(pair.AccessToken, UseAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "a@example.com", claims.Email)

	refreshClaims, err := issuer.Parse(pair.RefreshToken, UseRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

func TestParse_WrongUse(t *testing.T) {
	issuer := testIssuer(t)
	pair, err := issuer.IssuePair(testUser)
	require.NoError(t, err)

	// A refresh token must not pass as an access token and vice versa.
	_, err = issuer.Parse(pair.RefreshToken, UseAccess)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = issuer.Parse(pair.AccessToken, UseRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := testIssuer(t)
	pair, err := issuer.IssuePair(testUser)
	require.NoError(t, err)

	other, err := NewTokenIssuer(config.JWTConfig{Secret: "other-secret", AccessTTLMin: 15, RefreshTTLHours: 1})
	require.NoError(t, err)

	_, err = other.Parse(pair.AccessToken, UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	issuer := testIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	pair, err := issuer.IssuePair(testUser)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(pair.AccessToken, UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	issuer := testIssuer(t)
	_, err := issuer.Parse("not-a-token", UseAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
