package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

func TestExportEntitiesCSV(t *testing.T) {
	exporter := NewRegistryExporter()

	data := RegistryData{
		Entities: []entity.Entity{
			{
				Name:                  "Cooperativa Illimani",
				NIT:                   "1023456789",
				TipoEntidad:           "Cooperativa",
				RepresentanteLegal:    "Carlos Quispe",
				MunicipioConstitucion: "La Paz",
				Status:                submission.StatusAprobado,
			},
		},
	}

	out, filename, contentType, err := exporter.Export(RegistryEntities, FormatCSV, data)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "registro_entidades_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Nombre", records[0][1])
	assert.Equal(t, "Cooperativa Illimani", records[1][1])
	assert.Equal(t, "1023456789", records[1][2])
	assert.Equal(t, string(submission.StatusAprobado), records[1][6])
}

func TestExportUsersPDFHeader(t *testing.T) {
	exporter := NewRegistryExporter()

	out, filename, contentType, err := exporter.Export(RegistryUsers, FormatPDF, RegistryData{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportUnknownRegistry(t *testing.T) {
	exporter := NewRegistryExporter()

	_, _, _, err := exporter.Export("vehiculos", FormatCSV, RegistryData{})
	assert.Error(t, err)
}

func TestExportUnknownFormat(t *testing.T) {
	exporter := NewRegistryExporter()

	_, _, _, err := exporter.Export(RegistryProjects, "xml", RegistryData{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "largo d...", truncate("largo de verdad", 10))
}
