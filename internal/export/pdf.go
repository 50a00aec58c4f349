// Package export provides functionality for exporting cutting plan results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/rollcut/internal/model"
)

// rollColor represents an RGB color for a cut roll segment.
type rollColor struct {
	R, G, B int
}

// rollColors is the palette cycled across the roll segments of a pattern.
var rollColors = []rollColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	barHeight    = 16.0
	barSpacing   = 30.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// patternsPerPage is how many pattern bars fit on one page.
const patternsPerPage = 5

// ExportPDF generates a PDF document for a cutting plan. Executed patterns
// are rendered as scaled bar diagrams across one or more pages, followed by
// a summary page with overall statistics, pending demand, and settings.
func ExportPDF(path string, result *model.PlanResult, settings model.PlanSettings) error {
	if result == nil || (len(result.Patterns) == 0 && len(result.CutRolls) == 0) {
		return fmt.Errorf("no plan results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for start := 0; start < len(result.Patterns); start += patternsPerPage {
		end := start + patternsPerPage
		if end > len(result.Patterns) {
			end = len(result.Patterns)
		}
		pdf.AddPage()
		renderPatternsPage(pdf, result.Patterns[start:end], settings, start, len(result.Patterns))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPatternsPage draws a batch of pattern bars on the current page.
func renderPatternsPage(pdf *fpdf.Fpdf, patterns []model.PatternResult, settings model.PlanSettings, offset, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting Patterns %d-%d of %d (source roll %s\")",
		offset+1, offset+len(patterns), total, settings.SourceRollWidth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	y := drawAreaTop
	for _, pr := range patterns {
		renderPatternBar(pdf, pr, settings, y)
		y += barSpacing
	}
}

// renderPatternBar draws one executed pattern as a horizontal bar scaled to
// the source roll width, with one colored segment per cut roll and a hatched
// zone for the trim.
func renderPatternBar(pdf *fpdf.Fpdf, pr model.PatternResult, settings model.PlanSettings, y float64) {
	sourceWidth := settings.SourceRollWidth.InexactFloat64()
	if sourceWidth <= 0 {
		return
	}

	// Caption line
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	caption := fmt.Sprintf("Pattern %d  [%s]  %s  |  trim %s\"  |  %.1f%% used",
		pr.Seq, pr.Pattern.Spec.Key(), pr.Pattern.Key(), pr.Pattern.Trim, pr.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, caption, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / sourceWidth
	barY := y + 6

	// Source roll outline
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(marginLeft, barY, drawWidth, barHeight, "D")

	// Roll segments
	x := marginLeft
	for i, w := range pr.Pattern.Widths {
		col := rollColors[i%len(rollColors)]
		segW := w.InexactFloat64() * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, barY, segW, barHeight, "FD")

		label := w.String() + "\""
		pdf.SetFont("Helvetica", "", labelFontSize(segW))
		labelW := pdf.GetStringWidth(label)
		if labelW < segW-2 {
			pdf.SetTextColor(0, 0, 0)
			pdf.SetXY(x+(segW-labelW)/2, barY+barHeight/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}

		x += segW
	}

	// Trim zone
	if pr.Pattern.Trim.Sign() > 0 {
		trimW := pr.Pattern.Trim.InexactFloat64() * scale
		if pr.Class == model.TrimReusable {
			pdf.SetFillColor(200, 240, 200)
			pdf.SetDrawColor(0, 140, 0)
		} else {
			pdf.SetFillColor(255, 200, 200)
			pdf.SetDrawColor(200, 0, 0)
		}
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, barY, trimW, barHeight, "FD")
		drawHatchPattern(pdf, x, barY, trimW, barHeight)

		zoneLabel := "TRIM"
		if pr.Class == model.TrimReusable {
			zoneLabel = "OFFCUT"
		}
		pdf.SetFont("Helvetica", "B", 6)
		labelW := pdf.GetStringWidth(zoneLabel)
		if labelW < trimW-2 {
			if pr.Class == model.TrimReusable {
				pdf.SetTextColor(0, 120, 0)
			} else {
				pdf.SetTextColor(180, 0, 0)
			}
			pdf.SetXY(x+(trimW-labelW)/2, barY+barHeight/2-2)
			pdf.CellFormat(labelW, 4, zoneLabel, "", 0, "C", false, 0, "")
		}
	}

	// Width annotation below the bar
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	widthLabel := fmt.Sprintf("%s\"", settings.SourceRollWidth)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(marginLeft+(drawWidth-wLabelW)/2, barY+barHeight+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark trim zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		// Line from bottom-left to top-right diagonal
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result *model.PlanResult, settings model.PlanSettings) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Source Rolls Needed", fmt.Sprintf("%d", result.SourceRollsNeeded)},
		{"Cut Rolls Produced", fmt.Sprintf("%d", len(result.CutRolls))},
		{"Fulfilled From Inventory", fmt.Sprintf("%d", result.RollsFromSupply())},
		{"Total Trim", fmt.Sprintf("%s\"", result.TotalTrim())},
		{"Recovered As Offcuts", fmt.Sprintf("%s\"", result.RecoveredTrim())},
		{"Waste", fmt.Sprintf("%.1f%%", result.WastePercent())},
		{"Pending Demand", fmt.Sprintf("%d rolls", result.PendingQuantity())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-pattern breakdown table
	if len(result.Patterns) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Pattern Breakdown", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{18, 60, 80, 20, 25, 35, 29}
		headers := []string{"Seq", "Specification", "Widths", "Rolls", "Trim", "Trim Class", "Used %"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, pr := range result.Patterns {
			xPos = marginLeft
			rowData := []string{
				fmt.Sprintf("%d", pr.Seq),
				pr.Pattern.Spec.Key(),
				pr.Pattern.Key(),
				fmt.Sprintf("%d", pr.Pattern.RollCount()),
				pr.Pattern.Trim.String() + "\"",
				string(pr.Class),
				fmt.Sprintf("%.1f", pr.Utilization()),
			}

			// Alternate row background
			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6

			if y > pageHeight-marginBottom-40 {
				pdf.AddPage()
				y = marginTop
			}
		}
	}

	// Pending demand warning
	if len(result.Pending) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Pending Demand", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, p := range result.Pending {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s\" x %d [%s] (%s)", p.OrderRef, p.Width, p.Quantity, p.Spec.Key(), p.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5

			if y > pageHeight-marginBottom-30 {
				pdf.AddPage()
				y = marginTop
			}
		}
	}

	// Plan settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Plan Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Source Roll Width", settings.SourceRollWidth.String() + "\""},
		{"Max Rolls Per Source", fmt.Sprintf("%d", settings.MaxRollsPerSourceRoll)},
		{"Auto-Accept Trim", settings.AutoAcceptTrim.String() + "\""},
		{"Reusable Band", fmt.Sprintf("%s\" - %s\"", settings.ReusableBandLow, settings.ReusableBandHigh)},
		{"Trim Policy", string(settings.TrimPolicy)},
		{"Algorithm", string(settings.Algorithm)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RollCut - Paper Roll Slitting Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a segment width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
