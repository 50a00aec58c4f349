// Roll labels with QR codes, laid out on standard label sheets.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/rollcut/internal/model"
)

// LabelInfo holds the data encoded into each roll label's QR code.
type LabelInfo struct {
	RollID     string `json:"id,omitempty"`
	OrderRef   string `json:"order_ref"`
	SpecKey    string `json:"spec"`
	Width      string `json:"width_in"`
	Origin     string `json:"origin"`
	PatternSeq int    `json:"pattern_seq,omitempty"`
	RollSeq    int    `json:"roll_seq"`
	SupplyRef  string `json:"supply_ref,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every cut roll in the
// plan. Each label carries the order reference, width, specification, and a
// QR code encoding the roll metadata as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result *model.PlanResult) error {
	if result == nil || len(result.CutRolls) == 0 {
		return fmt.Errorf("no cut rolls to generate labels for")
	}

	labels := CollectLabelInfos(result)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label, i); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.OrderRef, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo, idx int) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Order reference (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate if too long
	orderRef := info.OrderRef
	if pdf.GetStringWidth(orderRef) > textW {
		for len(orderRef) > 0 && pdf.GetStringWidth(orderRef+"...") > textW {
			orderRef = orderRef[:len(orderRef)-1]
		}
		orderRef += "..."
	}
	pdf.CellFormat(textW, 4.5, orderRef, "", 1, "L", false, 0, "")

	// Width and specification
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s\"  %s", info.Width, info.SpecKey)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Source info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	var sourceInfo string
	if info.Origin == string(model.RollFromSupply) {
		sourceInfo = fmt.Sprintf("Stock %s, roll %d", info.SupplyRef, info.RollSeq)
	} else {
		sourceInfo = fmt.Sprintf("Pattern %d, roll %d", info.PatternSeq, info.RollSeq)
	}
	pdf.CellFormat(textW, 3, sourceInfo, "", 1, "L", false, 0, "")

	// Inventory-sourced indicator
	if info.Origin == string(model.RollFromSupply) {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "From inventory", "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a plan result for use
// in testing or alternative export formats.
func CollectLabelInfos(result *model.PlanResult) []LabelInfo {
	var labels []LabelInfo
	for _, r := range result.CutRolls {
		labels = append(labels, LabelInfo{
			RollID:     r.ID,
			OrderRef:   r.OrderRef,
			SpecKey:    r.Spec.Key(),
			Width:      r.Width.String(),
			Origin:     string(r.Origin),
			PatternSeq: r.PatternSeq,
			RollSeq:    r.RollSeq,
			SupplyRef:  r.SupplyRef,
		})
	}
	return labels
}
