package report

import (
	"bytes"
	"fmt"

	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/jung-kurt/gofpdf"
)

const pdfFont = "Helvetica"

// PDF renders an A4 page with the suggested quantities and the nutrient totals.
func PDF(sol *diet.Solution, req diet.Requirement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Least-cost diet", true)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, "Least-cost diet")
	pdf.Ln(10)

	pdf.SetFont(pdfFont, "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s   Engine: %s", sol.Status, sol.Engine))
	pdf.Ln(10)

	if !sol.IsOptimal() {
		pdf.SetFont(pdfFont, "", 12)
		pdf.MultiCell(0, 6, tr(statusLine(sol)), "", "L", false)
		return output(pdf)
	}

	pdf.SetFont(pdfFont, "B", 13)
	pdf.Cell(0, 8, "Suggested quantities")
	pdf.Ln(9)

	pdf.SetFont(pdfFont, "B", 10)
	pdf.CellFormat(80, 7, "Food", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Portions (100 g)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Cost", "1", 1, "R", false, 0, "")

	pdf.SetFont(pdfFont, "", 10)
	for _, a := range sol.Allocations {
		pdf.CellFormat(80, 6, tr(a.Food), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", a.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", a.Cost), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(pdfFont, "B", 10)
	pdf.CellFormat(115, 7, "Total cost", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", sol.Cost), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(pdfFont, "B", 13)
	pdf.Cell(0, 8, "Total nutritional composition")
	pdf.Ln(9)

	pdf.SetFont(pdfFont, "B", 10)
	pdf.CellFormat(80, 7, "Nutrient", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Required", "1", 1, "R", false, 0, "")

	pdf.SetFont(pdfFont, "", 10)
	for _, n := range orderedNutrients(sol.Totals, req) {
		required := "-"
		if v, ok := req[n]; ok {
			required = fmt.Sprintf("%.1f", v)
		}
		pdf.CellFormat(80, 6, tr(nutrientLabel(n)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", sol.Totals[n]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, required, "1", 1, "R", false, 0, "")
	}

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
