package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Chelo123Mau/P-RENAPP/internal/entity"
	"github.com/Chelo123Mau/P-RENAPP/internal/profile"
	"github.com/Chelo123Mau/P-RENAPP/internal/project"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Registry export targets.
const (
	RegistryUsers    = "users"
	RegistryEntities = "entities"
	RegistryProjects = "projects"
)

const (
	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
)

// RegistryData is the row set passed to the exporter.
type RegistryData struct {
	Profiles []profile.UserProfile
	Entities []entity.Entity
	Projects []project.Project
}

// RegistryExporter renders the public registry listings for download.
type RegistryExporter interface {
	Export(registry, format string, data RegistryData) ([]byte, string, string, error)
}

type registryExporter struct{}

func NewRegistryExporter() RegistryExporter {
	return &registryExporter{}
}

func (e *registryExporter) Export(registry, format string, data RegistryData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch registry {
	case RegistryUsers:
		return e.exportUsersByFormat(format, timestamp, data.Profiles)
	case RegistryEntities:
		return e.exportEntitiesByFormat(format, timestamp, data.Entities)
	case RegistryProjects:
		return e.exportProjectsByFormat(format, timestamp, data.Projects)
	default:
		return nil, "", "", fmt.Errorf("unsupported registry: %s", registry)
	}
}

//// ============================
/// USER REGISTRY EXPORTS
//// ============================

func (e *registryExporter) exportUsersByFormat(format, timestamp string, rows []profile.UserProfile) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportUsersCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_usuarios_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportUsersExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_usuarios_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportUsersPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_usuarios_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for users registry: %s", format)
	}
}

func (e *registryExporter) exportUsersCSV(rows []profile.UserProfile) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Nombres", "Apellidos", "Documento", "Pais", "Departamento", "Institucion", "Cargo", "Estado", "Enviado"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Nombres,
			r.Apellidos,
			r.NroDocumento,
			r.Pais,
			r.Departamento,
			r.Institucion,
			r.Cargo,
			string(r.Status),
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportUsersExcel(rows []profile.UserProfile) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registro de Usuarios"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Nombres", "Apellidos", "Documento", "Pais", "Departamento", "Institucion", "Cargo", "Estado", "Enviado"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Nombres)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Apellidos)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.NroDocumento)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Pais)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Departamento)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Institucion)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Cargo)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), string(r.Status))
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportUsersPDF(rows []profile.UserProfile) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Registro de Usuarios"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Nombres", "Apellidos", "Documento", "Pais", "Departamento", "Institucion", "Estado"}
	widths := []float64{15, 40, 40, 30, 25, 30, 50, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		values := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Nombres,
			r.Apellidos,
			r.NroDocumento,
			r.Pais,
			r.Departamento,
			r.Institucion,
			string(r.Status),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, tr(truncate(v, 34)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// ENTITY REGISTRY EXPORTS
//// ============================

func (e *registryExporter) exportEntitiesByFormat(format, timestamp string, rows []entity.Entity) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportEntitiesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_entidades_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportEntitiesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_entidades_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportEntitiesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_entidades_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for entities registry: %s", format)
	}
}

func (e *registryExporter) exportEntitiesCSV(rows []entity.Entity) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Nombre", "NIT", "Tipo", "Representante Legal", "Municipio", "Estado", "Enviado"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.NIT,
			r.TipoEntidad,
			r.RepresentanteLegal,
			r.MunicipioConstitucion,
			string(r.Status),
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportEntitiesExcel(rows []entity.Entity) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registro de Entidades"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Nombre", "NIT", "Tipo", "Representante Legal", "Municipio", "Estado", "Enviado"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.NIT)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.TipoEntidad)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.RepresentanteLegal)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.MunicipioConstitucion)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(r.Status))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportEntitiesPDF(rows []entity.Entity) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Registro de Entidades"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Nombre", "NIT", "Tipo", "Representante Legal", "Municipio", "Estado"}
	widths := []float64{15, 60, 25, 30, 50, 40, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		values := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			r.NIT,
			r.TipoEntidad,
			r.RepresentanteLegal,
			r.MunicipioConstitucion,
			string(r.Status),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, tr(truncate(v, 40)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// PROJECT REGISTRY EXPORTS
//// ============================

func (e *registryExporter) exportProjectsByFormat(format, timestamp string, rows []project.Project) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportProjectsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_proyectos_%s.csv", timestamp), mimeCSV, nil

	case FormatExcel:
		data, err := e.exportProjectsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_proyectos_%s.xlsx", timestamp), mimeExcel, nil

	case FormatPDF:
		data, err := e.exportProjectsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registro_proyectos_%s.pdf", timestamp), mimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for projects registry: %s", format)
	}
}

func (e *registryExporter) exportProjectsCSV(rows []project.Project) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Titulo", "Titular de la Medida", "Representante Legal", "Modelo de Mercado", "Area", "Estado", "Enviado"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.TitularMedida,
			r.RepresentanteLegal,
			r.ModeloMercado,
			r.AreaProyecto,
			string(r.Status),
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportProjectsExcel(rows []project.Project) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registro de Proyectos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Titulo", "Titular de la Medida", "Representante Legal", "Modelo de Mercado", "Area", "Estado", "Enviado"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.TitularMedida)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.RepresentanteLegal)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.ModeloMercado)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.AreaProyecto)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(r.Status))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *registryExporter) exportProjectsPDF(rows []project.Project) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Registro de Proyectos"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Titulo", "Titular", "Representante", "Modelo", "Area", "Estado"}
	widths := []float64{15, 60, 40, 40, 40, 30, 35}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		values := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.TitularMedida,
			r.RepresentanteLegal,
			r.ModeloMercado,
			r.AreaProyecto,
			string(r.Status),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, tr(truncate(v, 40)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
