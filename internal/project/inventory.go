package project

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/piwi3910/rollcut/internal/model"
)

// DefaultInventoryPath returns the default file path for the offcut bank.
// This is located at ~/.rollcut/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rollcut", "inventory.json"), nil
}

// SaveInventory writes the offcut bank to the specified JSON file.
// It creates parent directories if they do not exist and replaces the
// file atomically.
func SaveInventory(path string, offcuts []model.Offcut) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(offcuts, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// LoadInventory reads the offcut bank from the specified JSON file.
// If the file does not exist, it returns an empty bank.
func LoadInventory(path string) ([]model.Offcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Offcut{}, nil
		}
		return nil, err
	}
	var offcuts []model.Offcut
	if err := json.Unmarshal(data, &offcuts); err != nil {
		return nil, err
	}
	if offcuts == nil {
		offcuts = []model.Offcut{}
	}
	return offcuts, nil
}

// LoadDefaultInventory loads the offcut bank from the default path.
func LoadDefaultInventory() ([]model.Offcut, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return []model.Offcut{}, "", err
	}
	offcuts, err := LoadInventory(path)
	return offcuts, path, err
}

// ExportInventory exports the offcut bank to a user-specified JSON file.
func ExportInventory(path string, offcuts []model.Offcut) error {
	return SaveInventory(path, offcuts)
}

// ImportInventory imports an offcut bank from a user-specified JSON file,
// merging it with the existing bank. Rows whose reference is already
// present are skipped; rows without a reference are always appended.
func ImportInventory(path string, existing []model.Offcut) ([]model.Offcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported []model.Offcut
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeOffcuts(existing, imported), nil
}

// MergeOffcuts appends imported offcuts to the existing bank, skipping
// rows whose reference the bank already holds.
func MergeOffcuts(existing, imported []model.Offcut) []model.Offcut {
	refs := make(map[string]bool, len(existing))
	for _, o := range existing {
		if o.Ref != "" {
			refs[o.Ref] = true
		}
	}

	for _, o := range imported {
		if o.Ref != "" && refs[o.Ref] {
			continue
		}
		existing = append(existing, o)
		if o.Ref != "" {
			refs[o.Ref] = true
		}
	}
	return existing
}

// SupplyFromInventory converts the offcut bank into supply rolls for the
// next planning cycle, assigning references where missing.
func SupplyFromInventory(offcuts []model.Offcut) []model.SupplyRoll {
	supply := make([]model.SupplyRoll, len(offcuts))
	for i, o := range offcuts {
		supply[i] = o.ToSupplyRoll()
	}
	return supply
}
