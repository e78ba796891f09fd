package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString acepta un string, un número, un booleano o null desde JSON y lo guarda como texto.
// Las filas de CSV parseadas en el cliente mezclan ambos tipos.
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(strings.TrimSpace(string(data)))
	return nil
}

// String devuelve el valor recortado.
func (f FlexString) String() string { return strings.TrimSpace(string(f)) }
