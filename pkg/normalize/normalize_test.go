package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/pkg/normalize"
)

func TestPlate(t *testing.T) {
	assert.Equal(t, "CAB 1234", normalize.Plate("  cab   1234 "))
}

func TestPersonName(t *testing.T) {
	assert.Equal(t, "Nimal Perera", normalize.PersonName("nimal   PERERA"))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Peugeot 308", normalize.Text(" Peugeot\t308 "))
}
