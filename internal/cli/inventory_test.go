package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/piwi3910/rollcut/internal/model"
	"github.com/piwi3910/rollcut/internal/project"
)

func TestRunInventoryShowEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := runInventoryShow(&buf); err != nil {
		t.Fatalf("runInventoryShow failed: %v", err)
	}
	if !strings.Contains(buf.String(), "The bank is empty.") {
		t.Errorf("expected empty-bank message:\n%s", buf.String())
	}
}

func TestInventoryImportCSVThenShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeTempCSV(t, "offcuts.csv", `ref,width,quantity,gsm,bf,shade
STK-1,22,2,240,18,white
STK-2,23,1,240,18,white
`)

	var buf bytes.Buffer
	if err := runInventoryImport(&buf, path); err != nil {
		t.Fatalf("runInventoryImport failed: %v", err)
	}
	if !strings.Contains(buf.String(), "2 line(s) (2 added)") {
		t.Errorf("unexpected import report:\n%s", buf.String())
	}

	buf.Reset()
	if err := runInventoryShow(&buf); err != nil {
		t.Fatalf("runInventoryShow failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"STK-1", "STK-2", "240gsm-18bf-white", "2 line(s), 3 roll(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
}

func TestInventoryImportJSONMergesByRef(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	spec := summarySpec()
	bankPath, err := project.DefaultInventoryPath()
	if err != nil {
		t.Fatalf("DefaultInventoryPath failed: %v", err)
	}
	existing := []model.Offcut{{Ref: "STK-1", Spec: spec, Width: dec("22"), Quantity: 2}}
	if err := project.SaveInventory(bankPath, existing); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	imported := []model.Offcut{
		{Ref: "STK-1", Spec: spec, Width: dec("22"), Quantity: 9},
		{Ref: "STK-3", Spec: spec, Width: dec("24"), Quantity: 1},
	}
	data, _ := json.MarshalIndent(imported, "", "  ")
	importPath := writeTempCSV(t, "more.json", string(data))

	var buf bytes.Buffer
	if err := runInventoryImport(&buf, importPath); err != nil {
		t.Fatalf("runInventoryImport failed: %v", err)
	}

	offcuts, _, err := project.LoadDefaultInventory()
	if err != nil {
		t.Fatalf("LoadDefaultInventory failed: %v", err)
	}
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 lines after merge, got %d", len(offcuts))
	}
	for _, o := range offcuts {
		if o.Ref == "STK-1" && o.Quantity != 2 {
			t.Errorf("bank copy of STK-1 should win, got quantity %d", o.Quantity)
		}
	}
}

func TestRunInventoryExport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	spec := summarySpec()
	bankPath, err := project.DefaultInventoryPath()
	if err != nil {
		t.Fatalf("DefaultInventoryPath failed: %v", err)
	}
	if err := project.SaveInventory(bankPath, []model.Offcut{{Ref: "STK-1", Spec: spec, Width: dec("22"), Quantity: 2}}); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	exportPath := writeTempCSV(t, "placeholder.json", "{}")
	var buf bytes.Buffer
	if err := runInventoryExport(&buf, exportPath); err != nil {
		t.Fatalf("runInventoryExport failed: %v", err)
	}

	exported, err := project.LoadInventory(exportPath)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(exported) != 1 || exported[0].Ref != "STK-1" {
		t.Errorf("export wrong: %+v", exported)
	}
}

func TestRunInventoryClearForced(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	spec := summarySpec()
	bankPath, err := project.DefaultInventoryPath()
	if err != nil {
		t.Fatalf("DefaultInventoryPath failed: %v", err)
	}
	if err := project.SaveInventory(bankPath, []model.Offcut{{Ref: "STK-1", Spec: spec, Width: dec("22"), Quantity: 2}}); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	inventoryForce = true
	t.Cleanup(func() { inventoryForce = false })

	var buf bytes.Buffer
	if err := runInventoryClear(&buf); err != nil {
		t.Fatalf("runInventoryClear failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Bank cleared.") {
		t.Errorf("unexpected clear report:\n%s", buf.String())
	}

	offcuts, _, err := project.LoadDefaultInventory()
	if err != nil {
		t.Fatalf("LoadDefaultInventory failed: %v", err)
	}
	if len(offcuts) != 0 {
		t.Errorf("bank should be empty, holds %d lines", len(offcuts))
	}
}

func TestRunInventoryClearAlreadyEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := runInventoryClear(&buf); err != nil {
		t.Fatalf("runInventoryClear failed: %v", err)
	}
	if !strings.Contains(buf.String(), "already empty") {
		t.Errorf("unexpected report:\n%s", buf.String())
	}
}

func TestRunInventoryShowJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	if err := runInventoryShow(&buf); err != nil {
		t.Fatalf("runInventoryShow failed: %v", err)
	}
	var offcuts []model.Offcut
	if err := json.Unmarshal(buf.Bytes(), &offcuts); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(offcuts) != 0 {
		t.Errorf("expected empty bank, got %d", len(offcuts))
	}
}
