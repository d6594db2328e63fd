package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePromotesKnownKeys(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nombres":         "Ana María",
		"apellidos":       "Mendoza",
		"tipoDocumento":   "CI",
		"nroDocumento":    "4567890",
		"pais":            "Bolivia",
		"departamento":    "La Paz",
		"ciudad":          "El Alto",
		"direccion":       "Av. 6 de Marzo 123",
		"institucion":     "Fundación Verde",
		"cargo":           "Directora",
		"telefono":        "70123456",
		"fechaNacimiento": "1988-04-12",
	})

	assert.Equal(t, "Ana María", got.Nombres)
	assert.Equal(t, "Mendoza", got.Apellidos)
	assert.Equal(t, "CI", got.TipoDocumento)
	assert.Equal(t, "4567890", got.NroDocumento)
	assert.Equal(t, "Bolivia", got.Pais)
	assert.Equal(t, "La Paz", got.Departamento)
	assert.Equal(t, "El Alto", got.Ciudad)
	assert.Equal(t, "Av. 6 de Marzo 123", got.Direccion)
	assert.Equal(t, "Fundación Verde", got.Institucion)
	assert.Equal(t, "Directora", got.Cargo)
	assert.Equal(t, "70123456", got.Telefono)
	assert.Equal(t, "1988-04-12", got.FechaNacimiento)
}

func TestNormalizeLegacyFallbacks(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"ci":                "998877",
		"domicilio":         "Calle Falsa 742",
		"entidadRepresenta": "Coop. Illimani",
		"cargoRelacion":     "Representante",
	})

	assert.Equal(t, "998877", got.NroDocumento)
	assert.Equal(t, "Calle Falsa 742", got.Direccion)
	assert.Equal(t, "Coop. Illimani", got.Institucion)
	assert.Equal(t, "Representante", got.Cargo)
}

func TestNormalizePrefersCanonicalOverLegacy(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nroDocumento": "111",
		"ci":           "222",
		"direccion":    "Principal",
		"domicilio":    "Secundaria",
	})

	assert.Equal(t, "111", got.NroDocumento)
	assert.Equal(t, "Principal", got.Direccion)
}

func TestNormalizeHandlesNonStringValues(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nroDocumento": float64(4567890),
		"telefono":     nil,
		"nombres":      "   ",
		"apellidos":    "Quispe",
	})

	assert.Equal(t, "4567890", got.NroDocumento)
	assert.Equal(t, "", got.Telefono)
	assert.Equal(t, "", got.Nombres)
	assert.Equal(t, "Quispe", got.Apellidos)
}
