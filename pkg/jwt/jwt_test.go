package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesionarios-api/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	token, err := jwt.Generate("secreto", 42, "concesionarios-api", 5)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate("secreto", 42, "concesionarios-api", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", 42, "concesionarios-api", -5)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := jwt.Parse("secreto", "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", 42, "concesionarios-api", 5)
	assert.Error(t, err)
}
