package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_ConservaKiosco(t *testing.T) {
	sub := Subject{UserID: "u1", CompanyID: "c1", KioskID: "k1", Role: "kiosk_user"}
	token, err := Generate("secreto", sub, "kiosk-api", 5)
	require.NoError(t, err)

	got, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", Subject{UserID: "u1", Role: "admin"}, "kiosk-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", Subject{UserID: "u1"}, "kiosk-api", 5)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto", Subject{UserID: "u1"}, "kiosk-api", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}
