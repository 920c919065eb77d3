// Package normalize limpia textos capturados en recepción (placas, nombres, modelos).
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Los Caser de x/text tienen estado: se crea uno por llamada.

// Plate normaliza una placa: mayúsculas y espacios internos colapsados.
func Plate(s string) string {
	return cases.Upper(language.Und).String(collapse(s))
}

// PersonName normaliza un nombre de propietario a forma de título.
func PersonName(s string) string {
	return cases.Title(language.Und).String(collapse(s))
}

// Text colapsa espacios sin cambiar mayúsculas (modelos, descripciones).
func Text(s string) string {
	return collapse(s)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
