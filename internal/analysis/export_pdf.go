package analysis

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

// BuildAnalysisPDF renders a single analysis record as a downloadable
// report document.
func BuildAnalysisPDF(a *store.Analysis) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Content Analysis Report", false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Content Analysis Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Report ID: %d", a.ID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Target Account: %s", a.TargetAccount))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Content Type: %s", a.ContentType))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Submitted: %s", a.CreatedAt))
	pdf.Ln(10)

	writeSection(pdf, "Semantic Analysis", a.SemanticAnalysis)
	writeSection(pdf, "Threat Analysis", a.ThreatAnalysis)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title, body string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)

	pdf.SetFont("Courier", "", 9)
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(6)
}
