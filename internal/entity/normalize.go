package entity

import (
	"fmt"
	"strings"
)

// Normalized carries the entity form fields promoted to columns.
type Normalized struct {
	Name                  string
	Telefono              string
	Correo                string
	Web                   string
	Direccion             string
	TipoEntidad           string
	FechaConstitucion     string
	MunicipioConstitucion string
	RepresentanteLegal    string
	NumeroComercial       string
	NIT                   string
	NacionalOExtranjera   string
}

func Normalize(data map[string]interface{}) Normalized {
	return Normalized{
		Name:                  pick(data, "nombre", "razonSocial", "name"),
		Telefono:              pick(data, "telefono", "phone"),
		Correo:                pick(data, "correo"),
		Web:                   pick(data, "web"),
		Direccion:             pick(data, "direccion"),
		TipoEntidad:           pick(data, "tipoEntidad"),
		FechaConstitucion:     pick(data, "fechaConstitucion"),
		MunicipioConstitucion: pick(data, "municipioConstitucion"),
		RepresentanteLegal:    pick(data, "representanteLegal"),
		NumeroComercial:       pick(data, "numeroComercial"),
		NIT:                   pick(data, "nit"),
		NacionalOExtranjera:   pick(data, "nacionalOExtranjera"),
	}
}

func pick(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := data[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			if t == float64(int64(t)) {
				s = fmt.Sprintf("%d", int64(t))
			} else {
				s = fmt.Sprintf("%v", t)
			}
		default:
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}
