// Copyright (C) 2025 Sam Health Labs (sam@samhealthlabs.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report renders a computed risk assessment into a PDF document.
//
// # Description
//
// The report is pure formatting over already-computed values: a cover page,
// a coloured risk summary, an echo of the submitted inputs, the explanation
// and advice paragraphs, and a single-bar risk chart on a 0-100 scale.
// No risk logic lives here.
//
// The PDF is assembled in an in-memory buffer scoped to one request and
// handed back as a byte slice; nothing is retained between calls.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Document constants. Layout mirrors the established report format:
// A4 portrait, 40pt margins, page numbers from page 2 on.
const (
	docTitle    = "AI Diabetes Risk Assessment"
	docSubtitle = "Personalised Health Risk Report"
	docAuthor   = "Created by Sam"

	timestampLayout = "02 January 2006, 15:04"
)

// Chart geometry and scale. The value axis is fixed at 0-100 with
// gridlines every 20, so the bar height is directly comparable across
// reports.
const (
	chartValueMax  = 100
	chartValueStep = 20
	chartWidthMM   = 110
	chartHeightMM  = 75
)

// rgb is a plain colour triple for fpdf's Set*Color calls.
type rgb struct{ r, g, b int }

var (
	colourGreen  = rgb{0, 128, 0}
	colourOrange = rgb{255, 165, 0}
	colourRed    = rgb{200, 0, 0}
	colourGrey   = rgb{120, 120, 120}
)

// Field is one echoed form field rendered in the input summary section.
type Field struct {
	// Name is the raw form field name (snake_case); it is re-labelled to
	// Title Case when rendered.
	Name  string
	Value string
}

// Data carries everything the PDF needs. All values were computed by a
// prior evaluation and echoed back by the client; the builder never
// recomputes risk.
type Data struct {
	// Result is the summary line, e.g. "Moderate diabetes risk (41.6%)".
	// The bar and summary colour are keyed off the tier word it contains.
	Result      string
	RiskPercent string
	RiskValue   float64
	Explanation string
	Advice      string
	Inputs      []Field
	ReportID    string
	GeneratedAt time.Time
}

// Build renders data into a complete PDF document.
//
// # Outputs
//
//   - []byte: The finished document, ready to send as application/pdf
//   - error: Non-nil only if the PDF engine fails internally
func Build(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(docTitle, false)

	// Page numbers are stamped on every page after the cover.
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		setText(pdf, colourGrey)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	colour := colourForResult(data.Result)

	writeCoverPage(pdf, data)
	pdf.AddPage()
	writeSummary(pdf, data, colour)
	writeInputSummary(pdf, data.Inputs)
	writeParagraph(pdf, "Explanation", data.Explanation)
	writeParagraph(pdf, "Risk Reduction Advice", data.Advice)
	writeChart(pdf, data, colour)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// colourForResult keys the accent colour off the tier word in the summary
// line, defaulting to red for anything unrecognised.
func colourForResult(result string) rgb {
	switch {
	case strings.Contains(result, "Low"):
		return colourGreen
	case strings.Contains(result, "Moderate"):
		return colourOrange
	default:
		return colourRed
	}
}

func writeCoverPage(pdf *fpdf.Fpdf, data Data) {
	pdf.AddPage()
	pdf.Ln(70)

	pdf.SetFont("Helvetica", "B", 26)
	setText(pdf, rgb{0, 0, 0})
	pdf.CellFormat(0, 12, docTitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 15)
	pdf.CellFormat(0, 9, docSubtitle, "", 1, "C", false, 0, "")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Generated on: "+data.GeneratedAt.Format(timestampLayout), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 7, docAuthor, "", 1, "C", false, 0, "")

	if data.ReportID != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 8)
		setText(pdf, colourGrey)
		pdf.CellFormat(0, 6, "Report ID: "+data.ReportID, "", 1, "C", false, 0, "")
	}
}

func writeSummary(pdf *fpdf.Fpdf, data Data, colour rgb) {
	pdf.SetFont("Helvetica", "B", 18)
	setText(pdf, rgb{0, 0, 0})
	pdf.CellFormat(0, 11, "Risk Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	setText(pdf, colour)
	pdf.CellFormat(0, 8, data.Result, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, rgb{0, 0, 0})
	pdf.CellFormat(0, 7, fmt.Sprintf("Estimated risk probability: %s%%", data.RiskPercent), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func writeInputSummary(pdf *fpdf.Fpdf, fields []Field) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "User Input Summary", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range fields {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", titleCase(f.Name), f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func writeParagraph(pdf *fpdf.Fpdf, heading, body string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, heading, "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, body, "", "L", false)
	pdf.Ln(5)
}

// writeChart draws the single-bar risk visualisation: a fixed 0-100 value
// axis with gridlines every 20 and one bar coloured to match the tier.
func writeChart(pdf *fpdf.Fpdf, data Data, colour rgb) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Risk Visualisation", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Keep the chart on one page.
	if pdf.GetY()+chartHeightMM+20 > 277 {
		pdf.AddPage()
	}

	originX := pdf.GetX() + 14
	originY := pdf.GetY() + chartHeightMM

	// Gridlines and axis labels.
	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, colourGrey)
	pdf.SetDrawColor(210, 210, 210)
	for v := 0; v <= chartValueMax; v += chartValueStep {
		y := originY - float64(v)/chartValueMax*chartHeightMM
		pdf.Line(originX, y, originX+chartWidthMM, y)
		pdf.SetXY(originX-13, y-2)
		pdf.CellFormat(12, 4, fmt.Sprintf("%d", v), "", 0, "R", false, 0, "")
	}

	// Axes.
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(originX, originY-chartHeightMM, originX, originY)
	pdf.Line(originX, originY, originX+chartWidthMM, originY)

	// The bar. Values are clamped to the axis range for drawing only;
	// the label always shows the reported number.
	value := data.RiskValue
	if value < 0 {
		value = 0
	}
	if value > chartValueMax {
		value = chartValueMax
	}
	barWidth := 28.0
	barX := originX + chartWidthMM/2 - barWidth/2
	barHeight := value / chartValueMax * chartHeightMM
	pdf.SetFillColor(colour.r, colour.g, colour.b)
	pdf.Rect(barX, originY-barHeight, barWidth, barHeight, "F")

	// Value and category labels.
	pdf.SetFont("Helvetica", "B", 9)
	setText(pdf, rgb{0, 0, 0})
	pdf.SetXY(barX, originY-barHeight-5)
	pdf.CellFormat(barWidth, 4, data.RiskPercent+"%", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(barX, originY+2)
	pdf.CellFormat(barWidth, 5, "Risk %", "", 0, "C", false, 0, "")

	pdf.SetY(originY + 10)
}

// titleCase re-labels a snake_case form field name for display:
// "blood_pressure" becomes "Blood Pressure".
func titleCase(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func setText(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
