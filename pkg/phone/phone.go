// Package phone valida y normaliza números de contacto de propietarios.
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Normalize valida number para la región (ISO 3166, ej. "LK") y lo devuelve en E.164.
// Un número vacío es válido y se devuelve vacío.
func Normalize(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", nil
	}
	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", fmt.Errorf("teléfono %q: %w", number, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("teléfono %q no es válido para %s", number, region)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
