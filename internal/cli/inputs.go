package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/piwi3910/rollcut/internal/importer"
	"github.com/piwi3910/rollcut/internal/model"
)

func isExcelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// importOrderFile reads an order file (CSV or Excel) into order lines.
// Row errors are logged and skipped; the import fails only when nothing
// could be read at all.
func importOrderFile(path string, catalog *model.Catalog) ([]model.OrderLine, error) {
	var result importer.ImportResult
	if isExcelFile(path) {
		result = importer.ImportOrdersExcel(path, catalog)
	} else {
		result = importer.ImportOrdersCSV(path, catalog)
	}
	reportRowIssues(path, result)
	if len(result.Orders) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("no usable rows in %s: %s", path, result.Errors[0])
	}
	return result.Orders, nil
}

// importSupplyFile reads an offcut supply file (CSV or Excel) into supply rolls.
func importSupplyFile(path string, catalog *model.Catalog) ([]model.SupplyRoll, error) {
	var result importer.ImportResult
	if isExcelFile(path) {
		result = importer.ImportSupplyExcel(path, catalog)
	} else {
		result = importer.ImportSupplyCSV(path, catalog)
	}
	reportRowIssues(path, result)
	if len(result.Supply) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("no usable rows in %s: %s", path, result.Errors[0])
	}
	return result.Supply, nil
}

func reportRowIssues(path string, result importer.ImportResult) {
	for _, w := range result.Warnings {
		slog.Info("import note", "file", path, "note", w)
	}
	for _, e := range result.Errors {
		slog.Warn("row skipped", "file", path, "error", e)
	}
}
