package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEntityForm(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nombre":                "Cooperativa Illimani",
		"telefono":              "22445566",
		"correo":                "contacto@illimani.bo",
		"web":                   "https://illimani.bo",
		"direccion":             "Av. Arce 2299",
		"tipoEntidad":           "Cooperativa",
		"fechaConstitucion":     "2005-03-15",
		"municipioConstitucion": "La Paz",
		"representanteLegal":    "Carlos Quispe",
		"numeroComercial":       "NC-778899",
		"nit":                   "1023456789",
		"nacionalOExtranjera":   "Nacional",
	})

	assert.Equal(t, "Cooperativa Illimani", got.Name)
	assert.Equal(t, "22445566", got.Telefono)
	assert.Equal(t, "contacto@illimani.bo", got.Correo)
	assert.Equal(t, "https://illimani.bo", got.Web)
	assert.Equal(t, "Av. Arce 2299", got.Direccion)
	assert.Equal(t, "Cooperativa", got.TipoEntidad)
	assert.Equal(t, "2005-03-15", got.FechaConstitucion)
	assert.Equal(t, "La Paz", got.MunicipioConstitucion)
	assert.Equal(t, "Carlos Quispe", got.RepresentanteLegal)
	assert.Equal(t, "NC-778899", got.NumeroComercial)
	assert.Equal(t, "1023456789", got.NIT)
	assert.Equal(t, "Nacional", got.NacionalOExtranjera)
}

func TestNormalizeEntityFallbacks(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"razonSocial": "Fundación Verde",
		"phone":       "70112233",
	})

	assert.Equal(t, "Fundación Verde", got.Name)
	assert.Equal(t, "70112233", got.Telefono)
}

func TestNormalizeEntityIgnoresNonScalars(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nombre": map[string]interface{}{"raro": true},
		"nit":    float64(1023456789),
	})

	assert.Equal(t, "", got.Name)
	assert.Equal(t, "1023456789", got.NIT)
}
