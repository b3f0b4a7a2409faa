package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, RoleFarmer)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RoleFarmer, claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 42, RoleCompany)
	require.NoError(t, err)

	_, err = Parse("other-secret", tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("secret", "not.a.token")
	assert.Error(t, err)
}
