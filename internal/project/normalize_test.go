package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProjectForm(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"titulo":             "Reforestación Yungas",
		"titularMedida":      "Cooperativa Illimani",
		"representanteLegal": "Carlos Quispe",
		"numeroIdentidad":    "4567890",
		"numeroDocNotariado": "ND-2024-118",
		"modeloMercado":      "Mercado voluntario",
		"areaProyecto":       "1200 ha",
	})

	assert.Equal(t, "Reforestación Yungas", got.Title)
	assert.Equal(t, "Cooperativa Illimani", got.TitularMedida)
	assert.Equal(t, "Carlos Quispe", got.RepresentanteLegal)
	assert.Equal(t, "4567890", got.NumeroIdentidad)
	assert.Equal(t, "ND-2024-118", got.NumeroDocNotariado)
	assert.Equal(t, "Mercado voluntario", got.ModeloMercado)
	assert.Equal(t, "1200 ha", got.AreaProyecto)
}

func TestNormalizeProjectFallbacks(t *testing.T) {
	got := Normalize(map[string]interface{}{
		"nombre":  "Captura de metano",
		"summary": "Proyecto piloto en rellenos sanitarios",
	})

	assert.Equal(t, "Captura de metano", got.Title)
	assert.Equal(t, "Proyecto piloto en rellenos sanitarios", got.ModeloMercado)
}
