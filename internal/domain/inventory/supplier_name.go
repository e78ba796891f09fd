package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSupplierName produce la clave de comparación de un proveedor:
// sin acentos, sin espacios extremos, en minúsculas y con espacios colapsados.
func NormalizeSupplierName(name string) string {
	// transform.Chain no es seguro para uso concurrente; se crea por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(CollapseSpaces(stripped))
}

// CollapseSpaces recorta y colapsa los espacios internos a uno solo.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
