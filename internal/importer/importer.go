// Package importer reads order lines and offcut inventory from CSV and
// Excel files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition. Row errors are
// reported individually and never abort the batch.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/rollcut/internal/model"
)

// ImportResult holds the results of an import operation. Only one of
// Orders or Supply is populated, depending on what was imported.
type ImportResult struct {
	Orders   []model.OrderLine
	Supply   []model.SupplyRoll
	Errors   []string
	Warnings []string
}

type importKind int

const (
	kindOrders importKind = iota
	kindSupply
)

// ColumnMapping maps semantic column roles to their indices in the data.
// A specification comes either from a Grade column naming a catalog
// preset or from explicit GSM, BF, and Shade columns.
type ColumnMapping struct {
	Ref       int
	Width     int
	Quantity  int
	GSM       int
	BF        int
	Shade     int
	Thickness int
	PaperType int
	Grade     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"ref":       {"ref", "reference", "order", "order ref", "order_ref", "roll", "id", "line"},
	"width":     {"width", "w", "size", "deckle", "slit width", "slit_width"},
	"quantity":  {"quantity", "qty", "count", "rolls", "num", "amount"},
	"gsm":       {"gsm", "grammage", "weight", "basis weight", "basis_weight"},
	"bf":        {"bf", "burst", "burst factor", "burst_factor", "bst"},
	"shade":     {"shade", "color", "colour"},
	"thickness": {"thickness", "caliper"},
	"papertype": {"type", "paper type", "paper_type"},
	"grade":     {"grade", "preset", "quality", "paper grade"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Ref:       -1,
		Width:     -1,
		Quantity:  -1,
		GSM:       -1,
		BF:        -1,
		Shade:     -1,
		Thickness: -1,
		PaperType: -1,
		Grade:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "ref":
						if mapping.Ref == -1 {
							mapping.Ref = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "gsm":
						if mapping.GSM == -1 {
							mapping.GSM = i
						}
					case "bf":
						if mapping.BF == -1 {
							mapping.BF = i
						}
					case "shade":
						if mapping.Shade == -1 {
							mapping.Shade = i
						}
					case "thickness":
						if mapping.Thickness == -1 {
							mapping.Thickness = i
						}
					case "papertype":
						if mapping.PaperType == -1 {
							mapping.PaperType = i
						}
					case "grade":
						if mapping.Grade == -1 {
							mapping.Grade = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Ref, Width, Quantity, GSM, BF, Shade
		return ColumnMapping{
			Ref:       0,
			Width:     1,
			Quantity:  2,
			GSM:       3,
			BF:        4,
			Shade:     5,
			Thickness: -1,
			PaperType: -1,
			Grade:     -1,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// resolveSpec builds the paper specification for a row, either from a
// Grade column naming a catalog preset or from explicit spec columns.
func resolveSpec(row []string, mapping ColumnMapping, catalog *model.Catalog, rowLabel string) (model.Specification, string) {
	if grade := getCell(row, mapping.Grade); grade != "" {
		preset := catalog.FindGradeByName(grade)
		if preset == nil {
			return model.Specification{}, fmt.Sprintf("%s: Unknown grade '%s'", rowLabel, grade)
		}
		return preset.ToSpecification(), ""
	}

	gsmStr := getCell(row, mapping.GSM)
	if gsmStr == "" {
		return model.Specification{}, fmt.Sprintf("%s: Missing GSM value", rowLabel)
	}
	gsm, err := strconv.Atoi(gsmStr)
	if err != nil {
		return model.Specification{}, fmt.Sprintf("%s: Invalid GSM '%s'", rowLabel, gsmStr)
	}

	bfStr := getCell(row, mapping.BF)
	if bfStr == "" {
		return model.Specification{}, fmt.Sprintf("%s: Missing BF value", rowLabel)
	}
	bf, err := decimal.NewFromString(bfStr)
	if err != nil {
		return model.Specification{}, fmt.Sprintf("%s: Invalid BF '%s'", rowLabel, bfStr)
	}

	shade := getCell(row, mapping.Shade)
	if shade == "" {
		return model.Specification{}, fmt.Sprintf("%s: Missing shade value", rowLabel)
	}

	spec := model.NewSpecification(gsm, bf, shade)

	if thicknessStr := getCell(row, mapping.Thickness); thicknessStr != "" {
		thickness, err := decimal.NewFromString(thicknessStr)
		if err != nil {
			return model.Specification{}, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, thicknessStr)
		}
		spec.Thickness = thickness
	}
	if paperType := getCell(row, mapping.PaperType); paperType != "" {
		spec.PaperType = strings.ToLower(paperType)
	}

	if err := spec.Validate(); err != nil {
		return model.Specification{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return spec, ""
}

// parseRow extracts the width, quantity, spec, and optional reference
// shared by order and supply rows.
func parseRow(row []string, mapping ColumnMapping, catalog *model.Catalog, rowLabel string) (ref string, width decimal.Decimal, qty int, spec model.Specification, errMsg string) {
	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return "", decimal.Zero, 0, model.Specification{}, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := decimal.NewFromString(widthStr)
	if err != nil {
		return "", decimal.Zero, 0, model.Specification{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return "", decimal.Zero, 0, model.Specification{}, fmt.Sprintf("%s: Missing quantity value", rowLabel)
	}
	qty, err = strconv.Atoi(qtyStr)
	if err != nil {
		return "", decimal.Zero, 0, model.Specification{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
	}

	if width.Sign() <= 0 || qty <= 0 {
		return "", decimal.Zero, 0, model.Specification{}, fmt.Sprintf("%s: Width and quantity must be positive", rowLabel)
	}

	spec, errMsg = resolveSpec(row, mapping, catalog, rowLabel)
	if errMsg != "" {
		return "", decimal.Zero, 0, model.Specification{}, errMsg
	}

	return getCell(row, mapping.Ref), width, qty, spec, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportOrdersCSV imports order lines from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters. Grade columns are
// resolved against the given catalog; pass nil to use the built-in one.
func ImportOrdersCSV(path string, catalog *model.Catalog) ImportResult {
	return importCSVFile(path, kindOrders, catalog)
}

// ImportSupplyCSV imports offcut inventory rolls from a CSV file.
func ImportSupplyCSV(path string, catalog *model.Catalog) ImportResult {
	return importCSVFile(path, kindSupply, catalog)
}

func importCSVFile(path string, kind importKind, catalog *model.Catalog) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", result.Warnings, catalog)
}

// ImportOrdersCSVFromReader imports order lines from a CSV reader with a
// specific delimiter. This is useful for testing or when the delimiter is
// already known.
func ImportOrdersCSVFromReader(reader io.Reader, delimiter rune, catalog *model.Catalog) ImportResult {
	return importCSVReader(reader, delimiter, kindOrders, catalog)
}

// ImportSupplyCSVFromReader imports offcut inventory from a CSV reader
// with a specific delimiter.
func ImportSupplyCSVFromReader(reader io.Reader, delimiter rune, catalog *model.Catalog) ImportResult {
	return importCSVReader(reader, delimiter, kindSupply, catalog)
}

func importCSVReader(reader io.Reader, delimiter rune, kind importKind, catalog *model.Catalog) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", nil, catalog)
}

// ImportOrdersExcel imports order lines from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportOrdersExcel(path string, catalog *model.Catalog) ImportResult {
	return importExcelFile(path, kindOrders, catalog)
}

// ImportSupplyExcel imports offcut inventory from an Excel (.xlsx) file.
func ImportSupplyExcel(path string, catalog *model.Catalog) ImportResult {
	return importExcelFile(path, kindSupply, catalog)
}

func importExcelFile(path string, kind importKind, catalog *model.Catalog) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, kind, "Row", nil, catalog)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, kind importKind, rowPrefix string, initialWarnings []string, catalog *model.Catalog) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}
	if catalog == nil {
		dc := model.DefaultCatalog()
		catalog = &dc
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if mapping.Grade == -1 && (mapping.GSM == -1 || mapping.BF == -1 || mapping.Shade == -1) {
			missing = append(missing, "Grade or GSM/BF/Shade")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if the width column is numeric (positional mapping)
		if len(rows[0]) >= 3 {
			if _, err := decimal.NewFromString(strings.TrimSpace(rows[0][1])); err != nil {
				// Not numeric - might be an unrecognized header.
				// Skip it as a header but keep positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		ref, width, qty, spec, errMsg := parseRow(row, mapping, catalog, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		switch kind {
		case kindOrders:
			line := model.NewOrderLine(spec, width, qty)
			if ref != "" {
				line.Ref = ref
			}
			result.Orders = append(result.Orders, line)
		case kindSupply:
			roll := model.NewSupplyRoll(spec, width, qty)
			if ref != "" {
				roll.Ref = ref
			}
			result.Supply = append(result.Supply, roll)
		}
	}

	return result
}
