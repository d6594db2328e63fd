package profile

import (
	"fmt"
	"strings"
)

// Normalized carries the form fields promoted to columns on submit.
type Normalized struct {
	Nombres         string
	Apellidos       string
	TipoDocumento   string
	NroDocumento    string
	Pais            string
	Departamento    string
	Ciudad          string
	Direccion       string
	Institucion     string
	Cargo           string
	Telefono        string
	FechaNacimiento string
}

// Normalize promotes known keys out of the raw form. Legacy form
// versions used different key names, the fallbacks keep them working.
func Normalize(data map[string]interface{}) Normalized {
	return Normalized{
		Nombres:         pick(data, "nombres"),
		Apellidos:       pick(data, "apellidos"),
		TipoDocumento:   pick(data, "tipoDocumento"),
		NroDocumento:    pick(data, "nroDocumento", "ci"),
		Pais:            pick(data, "pais"),
		Departamento:    pick(data, "departamento"),
		Ciudad:          pick(data, "ciudad"),
		Direccion:       pick(data, "direccion", "domicilio"),
		Institucion:     pick(data, "institucion", "entidadRepresenta"),
		Cargo:           pick(data, "cargo", "cargoRelacion"),
		Telefono:        pick(data, "telefono"),
		FechaNacimiento: pick(data, "fechaNacimiento"),
	}
}

// pick returns the first non-empty value among the candidate keys,
// stringified and trimmed.
func pick(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := data[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			return s
		}
	}
	return ""
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}
