package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_ConservaClaims(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "empresa_user",
		[]string{"view_signals", "view_dashboard"}, "telemetria-api", 60)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, "empresa_user", claims.Role)
	assert.Equal(t, []string{"view_signals", "view_dashboard"}, claims.Permissions)
	assert.Equal(t, "telemetria-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "admin", nil, "iss", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, "user-1", "company-1", "admin", nil, "iss", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "c", "admin", nil, "iss", 60)
	assert.Error(t, err)
}
