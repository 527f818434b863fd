package report

import (
	"fmt"
	"io"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/promptraid/promptraid/pkg/strutil"
)

// pdf layout constants, in document units (mm).
const (
	pdfLineHeight  = 6.0
	pdfCellPadding = 2.0
	pdfPayloadMax  = 90
)

// WritePDF renders the summary as a one-or-more page PDF document.
func WritePDF(w io.Writer, s *Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s security test report", s.Module), false)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(60, 40, 160)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s security test report", s.Module), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Summary block
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	rows := [][2]string{
		{"Run", s.RunID},
		{"Engine", s.Engine},
		{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", s.Duration.String()},
		{"Payloads", fmt.Sprintf("%d total, %d analyzed, %d errors", s.TotalPayloads, s.Analyzed, s.Errors)},
		{"Vulnerable", fmt.Sprintf("%d (%.1f%%)", s.Vulnerable, s.VulnerabilityRate()*100)},
		{"Max confidence", fmt.Sprintf("%.2f", s.MaxConfidence)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, pdfLineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, pdfLineHeight, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(s.Findings) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(30, 130, 70)
		pdf.CellFormat(0, pdfLineHeight, "No vulnerable responses detected.", "", 1, "L", false, 0, "")
	} else {
		writeFindingsTable(pdf, s.Findings)
	}

	return pdf.Output(w)
}

func writeFindingsTable(pdf *gofpdf.Fpdf, findings []Finding) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(170, 40, 40)
	pdf.CellFormat(0, 8, fmt.Sprintf("Findings (%d)", len(findings)), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	// Header row
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	confW, sevW := 22.0, 24.0
	payloadW := usable - confW - sevW

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(confW, pdfLineHeight, "Conf", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sevW, pdfLineHeight, "Severity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(payloadW, pdfLineHeight, "Payload", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, f := range findings {
		sev := f.Severity
		if sev == "" {
			sev = "n/a"
		}
		pdf.CellFormat(confW, pdfLineHeight, fmt.Sprintf("%.2f", f.Confidence), "1", 0, "C", false, 0, "")
		pdf.CellFormat(sevW, pdfLineHeight, sev, "1", 0, "C", false, 0, "")
		pdf.CellFormat(payloadW, pdfLineHeight, strutil.Snippet(f.Payload, pdfPayloadMax), "1", 1, "L", false, 0, "")
	}
}
