package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/rollcut/internal/project"
)

func TestRunCatalogShowDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := runCatalogShow(&buf); err != nil {
		t.Fatalf("runCatalogShow failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Machines", "PM1 Winder 118\"", "Grades", "Kraft 120 Golden", "120gsm-18bf-golden"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogExportImportMachine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	file := filepath.Join(t.TempDir(), "pm1.json")
	var buf bytes.Buffer
	if err := runCatalogExportMachine(&buf, "PM1 Winder 118\"", file); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Same name is already in the catalog, so a straight re-import collides.
	if err := runCatalogImportMachine(&buf, file); err == nil {
		t.Error("importing a duplicate machine name should fail")
	}

	machine, err := project.ImportMachine(file)
	if err != nil {
		t.Fatalf("ImportMachine failed: %v", err)
	}
	machine.Name = "PM1 Clone"
	clonePath := filepath.Join(t.TempDir(), "clone.json")
	if err := project.ExportMachine(clonePath, machine); err != nil {
		t.Fatalf("ExportMachine failed: %v", err)
	}

	buf.Reset()
	if err := runCatalogImportMachine(&buf, clonePath); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(buf.String(), "PM1 Clone") {
		t.Errorf("import report missing name:\n%s", buf.String())
	}

	buf.Reset()
	if err := runCatalogShow(&buf); err != nil {
		t.Fatalf("runCatalogShow failed: %v", err)
	}
	if !strings.Contains(buf.String(), "PM1 Clone") {
		t.Errorf("imported machine not in catalog:\n%s", buf.String())
	}
}

func TestRunCatalogExportUnknownMachine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	err := runCatalogExportMachine(&buf, "PM9", filepath.Join(t.TempDir(), "pm9.json"))
	if err == nil || !strings.Contains(err.Error(), "no machine named") {
		t.Errorf("expected unknown-machine error, got %v", err)
	}
}
