package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/services/auth-service/internal/models"
)

func TestIssuedTokenCarriesIdentity(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	tok, err := issuer.Issue(&models.User{ID: 42, Email: "ana@example.com", Role: models.RoleManufacturer})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), tok.ExpiresAt)

	claims, err := issuer.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RoleManufacturer, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	tok, err := NewTokenIssuer("one", time.Hour).Issue(&models.User{ID: 1, Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(tok.Value)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleCustomer})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(tok.Value)
	assert.Error(t, err)
}

func TestIssueRequiresUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	assert.Equal(t, time.Hour, issuer.ttl)

	_, err := issuer.Issue(&models.User{})
	assert.Error(t, err)
	_, err = issuer.Issue(nil)
	assert.Error(t, err)
}
