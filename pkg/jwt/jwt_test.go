package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/invoiceflow/invoiceflow-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "invoiceflow-test"
)

func TestGenerateAndParseAccess(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.ParseType(testSecret, tok, pkgjwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, pkgjwt.TypeAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestGenerateRefresh_HasJTI(t *testing.T) {
	tok, jti, expiresAt, err := pkgjwt.GenerateRefresh(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.False(t, expiresAt.IsZero())

	claims, err := pkgjwt.ParseType(testSecret, tok, pkgjwt.TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
}

// An access token must never pass where a refresh token is required, and
// vice versa; logout/refresh depend on this.
func TestParseType_RejectsWrongType(t *testing.T) {
	access, err := pkgjwt.GenerateAccess(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.ParseType(testSecret, access, pkgjwt.TypeRefresh)
	assert.Error(t, err)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("another-secret", tok)
	assert.Error(t, err)
}

func TestParse_RejectsExpired(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.GenerateAccess("", testUserID, testIssuer, 60)
	assert.Error(t, err)
}
