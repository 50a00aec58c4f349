package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/rollcut/internal/model"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	catalog := model.DefaultCatalog()
	if err := SaveCatalog(path, catalog); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if len(loaded.Machines) != len(catalog.Machines) {
		t.Errorf("expected %d machines, got %d", len(catalog.Machines), len(loaded.Machines))
	}
	if len(loaded.Grades) != len(catalog.Grades) {
		t.Errorf("expected %d grades, got %d", len(catalog.Grades), len(loaded.Grades))
	}

	pm1 := loaded.FindMachineByName("PM1 Winder 118\"")
	if pm1 == nil {
		t.Fatal("expected PM1 Winder 118\" in loaded catalog")
	}
	if !pm1.SourceRollWidth.Equal(decimal.NewFromInt(118)) {
		t.Errorf("expected source roll width 118, got %s", pm1.SourceRollWidth)
	}
}

func TestLoadCatalogMissingFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	defaults := model.DefaultCatalog()
	if len(catalog.Machines) != len(defaults.Machines) {
		t.Errorf("expected default machines, got %d", len(catalog.Machines))
	}
	if len(catalog.Grades) != len(defaults.Grades) {
		t.Errorf("expected default grades, got %d", len(catalog.Grades))
	}
}

func TestLoadCatalogInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoadCatalogNilCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")

	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if catalog.Machines == nil {
		t.Error("Machines should not be nil after loading")
	}
	if catalog.Grades == nil {
		t.Error("Grades should not be nil after loading")
	}
}

func TestExportImportMachine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.json")

	machine := model.NewMachineProfile("PM3 Winder 110\"", decimal.NewFromInt(110), 5, decimal.NewFromInt(12), "Standard")
	if err := ExportMachine(path, machine); err != nil {
		t.Fatalf("ExportMachine failed: %v", err)
	}

	imported, err := ImportMachine(path)
	if err != nil {
		t.Fatalf("ImportMachine failed: %v", err)
	}

	if imported.Name != machine.Name {
		t.Errorf("expected name %q, got %q", machine.Name, imported.Name)
	}
	if !imported.SourceRollWidth.Equal(machine.SourceRollWidth) {
		t.Errorf("expected source roll width %s, got %s", machine.SourceRollWidth, imported.SourceRollWidth)
	}
	if imported.ID == machine.ID {
		t.Error("expected a fresh ID on import")
	}
	if len(imported.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", imported.ID)
	}
}

func TestImportMachineMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.json")

	if err := os.WriteFile(path, []byte(`{"id":"abcd1234","source_roll_width":"98"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportMachine(path); err == nil {
		t.Fatal("expected error for a machine profile without a name")
	}
}
