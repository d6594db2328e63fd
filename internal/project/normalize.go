package project

import (
	"fmt"
	"strings"
)

// Normalized carries the project form fields promoted to columns.
type Normalized struct {
	Title              string
	TitularMedida      string
	RepresentanteLegal string
	NumeroIdentidad    string
	NumeroDocNotariado string
	ModeloMercado      string
	AreaProyecto       string
}

func Normalize(data map[string]interface{}) Normalized {
	return Normalized{
		Title:              pick(data, "titulo", "nombre", "title"),
		TitularMedida:      pick(data, "titularMedida"),
		RepresentanteLegal: pick(data, "representanteLegal"),
		NumeroIdentidad:    pick(data, "numeroIdentidad"),
		NumeroDocNotariado: pick(data, "numeroDocNotariado"),
		ModeloMercado:      pick(data, "modeloMercado", "summary"),
		AreaProyecto:       pick(data, "areaProyecto"),
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
