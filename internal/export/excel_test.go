package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rollcut/internal/model"
)

func TestExportExcel_CreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	result := buildTestResult()

	err := ExportExcel(path, result, model.DefaultSettings())
	if err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook was not created: %v", err)
	}
	defer f.Close()

	want := []string{"Cut Rolls", "Patterns", "Pending", "Inventory", "Summary"}
	sheets := f.GetSheetList()
	for _, name := range want {
		found := false
		for _, s := range sheets {
			if s == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing sheet %q, got %v", name, sheets)
		}
	}
}

func TestExportExcel_CutRollRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	result := buildTestResult()
	if err := ExportExcel(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Cut Rolls")
	if err != nil {
		t.Fatalf("cannot read Cut Rolls sheet: %v", err)
	}

	// Header plus one row per cut roll
	if len(rows) != len(result.CutRolls)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.CutRolls)+1, len(rows))
	}
	if rows[0][1] != "Order Ref" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "ORD-4" {
		t.Errorf("expected first roll for ORD-4, got %v", rows[1])
	}
}

func TestExportExcel_PendingRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	result := buildTestResult()
	if err := ExportExcel(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Pending")
	if err != nil {
		t.Fatalf("cannot read Pending sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 pending row, got %d rows", len(rows))
	}
	if rows[1][0] != "ORD-5" {
		t.Errorf("expected pending ORD-5, got %v", rows[1])
	}
	if rows[1][4] != string(model.ReasonTrimTooLarge) {
		t.Errorf("expected reason %s, got %v", model.ReasonTrimTooLarge, rows[1][4])
	}
}

func TestExportExcel_NilResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.xlsx")

	if err := ExportExcel(path, nil, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for nil result, got nil")
	}
}
