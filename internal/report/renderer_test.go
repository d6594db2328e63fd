package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render("Acta de Aprobación", map[string]interface{}{
		"nombres":   "Ana",
		"apellidos": "Mendoza",
		"estado":    "APROBADO",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderHandlesNestedValues(t *testing.T) {
	data, err := Render("Reporte", map[string]interface{}{
		"documentos": []interface{}{"acta.pdf", "poder.pdf"},
		"ubicacion":  map[string]interface{}{"departamento": "La Paz"},
		"vacio":      nil,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderEmptySnapshot(t *testing.T) {
	data, err := Render("Reporte", map[string]interface{}{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "hola", formatValue("hola"))
	assert.Equal(t, "42", formatValue(float64(42)))
	assert.Equal(t, "3.5", formatValue(float64(3.5)))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, `["a","b"]`, formatValue([]interface{}{"a", "b"}))
}
