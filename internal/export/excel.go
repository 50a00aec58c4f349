// Excel workbook export of a cutting plan.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rollcut/internal/model"
)

// ExportExcel writes a cutting plan to an Excel workbook with one sheet per
// output collection: cut rolls, executed patterns, pending demand, remaining
// inventory, and an overall summary.
func ExportExcel(path string, result *model.PlanResult, settings model.PlanSettings) error {
	if result == nil {
		return fmt.Errorf("no plan results to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeCutRollsSheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writePatternsSheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writePendingSheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writeInventorySheet(f, result, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result, settings, headerStyle); err != nil {
		return err
	}

	// The workbook opens on the summary
	idx, err := f.GetSheetIndex("Summary")
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f.SaveAs(path)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeCutRollsSheet(f *excelize.File, result *model.PlanResult, style int) error {
	const sheet = "Cut Rolls"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"ID", "Order Ref", "Specification", "Width", "Origin", "Pattern", "Roll Seq", "Supply Ref"}
	if err := writeHeaderRow(f, sheet, headers, style); err != nil {
		return err
	}
	for i, r := range result.CutRolls {
		row := []interface{}{
			r.ID,
			r.OrderRef,
			r.Spec.Key(),
			r.Width.InexactFloat64(),
			string(r.Origin),
			r.PatternSeq,
			r.RollSeq,
			r.SupplyRef,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "H", 16)
}

func writePatternsSheet(f *excelize.File, result *model.PlanResult, style int) error {
	const sheet = "Patterns"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Seq", "Specification", "Widths", "Rolls", "Trim", "Trim Class", "Utilization %"}
	if err := writeHeaderRow(f, sheet, headers, style); err != nil {
		return err
	}
	for i, pr := range result.Patterns {
		row := []interface{}{
			pr.Seq,
			pr.Pattern.Spec.Key(),
			pr.Pattern.Key(),
			pr.Pattern.RollCount(),
			pr.Pattern.Trim.InexactFloat64(),
			string(pr.Class),
			pr.Utilization(),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "G", 18)
}

func writePendingSheet(f *excelize.File, result *model.PlanResult, style int) error {
	const sheet = "Pending"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Order Ref", "Specification", "Width", "Quantity", "Reason"}
	if err := writeHeaderRow(f, sheet, headers, style); err != nil {
		return err
	}
	for i, p := range result.Pending {
		row := []interface{}{
			p.OrderRef,
			p.Spec.Key(),
			p.Width.InexactFloat64(),
			p.Quantity,
			string(p.Reason),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "E", 22)
}

func writeInventorySheet(f *excelize.File, result *model.PlanResult, style int) error {
	const sheet = "Inventory"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Ref", "Specification", "Width", "Quantity"}
	if err := writeHeaderRow(f, sheet, headers, style); err != nil {
		return err
	}
	for i, o := range result.Inventory {
		row := []interface{}{
			o.Ref,
			o.Spec.Key(),
			o.Width.InexactFloat64(),
			o.Quantity,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "D", 20)
}

func writeSummarySheet(f *excelize.File, result *model.PlanResult, settings model.PlanSettings, style int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	// Replace the default sheet so the workbook has only named sheets
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	waste := model.CalculateWasteSummary(result)

	rows := [][]interface{}{
		{"Source Rolls Needed", result.SourceRollsNeeded},
		{"Cut Rolls Produced", len(result.CutRolls)},
		{"Fulfilled From Inventory", result.RollsFromSupply()},
		{"Pending Demand (rolls)", result.PendingQuantity()},
		{"Total Trim", result.TotalTrim().InexactFloat64()},
		{"Discarded Trim", waste.DiscardedTrim.InexactFloat64()},
		{"Recovered Trim", waste.RecoveredTrim.InexactFloat64()},
		{"Recovery %", waste.RecoveryPercent},
		{"Waste %", result.WastePercent()},
		{"Zero-Trim Patterns", waste.ZeroTrimCount},
		{"New Offcuts", waste.OffcutCount},
		{},
		{"Source Roll Width", settings.SourceRollWidth.InexactFloat64()},
		{"Max Rolls Per Source", settings.MaxRollsPerSourceRoll},
		{"Auto-Accept Trim", settings.AutoAcceptTrim.InexactFloat64()},
		{"Reusable Band Low", settings.ReusableBandLow.InexactFloat64()},
		{"Reusable Band High", settings.ReusableBandHigh.InexactFloat64()},
		{"Trim Policy", string(settings.TrimPolicy)},
		{"Algorithm", string(settings.Algorithm)},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "B", 26)
}
