package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/pkg/phone"
)

func TestNormalize_NumeroLocal(t *testing.T) {
	got, err := phone.Normalize("077 123 4567", "LK")
	require.NoError(t, err)
	assert.Equal(t, "+94771234567", got)
}

func TestNormalize_Vacio(t *testing.T) {
	got, err := phone.Normalize("  ", "LK")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalize_Invalido(t *testing.T) {
	_, err := phone.Normalize("12", "LK")
	assert.Error(t, err)
}
