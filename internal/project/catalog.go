package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/piwi3910/rollcut/internal/model"
)

// DefaultCatalogPath returns the default file path for the machine and
// grade catalog. This is located at ~/.rollcut/catalog.json.
func DefaultCatalogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rollcut", "catalog.json"), nil
}

// SaveCatalog saves the catalog to a JSON file.
func SaveCatalog(path string, catalog model.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// LoadCatalog loads the catalog from a JSON file.
// Returns the default catalog if the file does not exist.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultCatalog(), nil
		}
		return model.Catalog{}, err
	}

	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, err
	}

	if catalog.Machines == nil {
		catalog.Machines = []model.MachineProfile{}
	}
	if catalog.Grades == nil {
		catalog.Grades = []model.GradePreset{}
	}
	return catalog, nil
}

// SaveCatalogToDefault saves the catalog to the default path.
func SaveCatalogToDefault(catalog model.Catalog) error {
	path, err := DefaultCatalogPath()
	if err != nil {
		return err
	}
	return SaveCatalog(path, catalog)
}

// LoadCatalogFromDefault loads the catalog from the default path.
func LoadCatalogFromDefault() (model.Catalog, error) {
	path, err := DefaultCatalogPath()
	if err != nil {
		return model.Catalog{}, err
	}
	return LoadCatalog(path)
}

// ExportMachine exports a single machine profile to a JSON file (for sharing).
func ExportMachine(path string, machine model.MachineProfile) error {
	data, err := json.MarshalIndent(machine, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// ImportMachine imports a single machine profile from a JSON file.
// A fresh ID is assigned so the import never collides with an existing entry.
func ImportMachine(path string) (model.MachineProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.MachineProfile{}, err
	}

	var machine model.MachineProfile
	if err := json.Unmarshal(data, &machine); err != nil {
		return model.MachineProfile{}, err
	}

	if machine.Name == "" {
		return model.MachineProfile{}, errors.New("imported machine profile has no name")
	}
	machine.ID = uuid.New().String()[:8]
	return machine, nil
}
