// Package importer provides CSV and Excel import of cut lists and stock
// sheet lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cutplan/internal/model"
)

// Kind selects what a file describes.
type Kind int

const (
	KindCuts Kind = iota
	KindSheets
)

func (k Kind) String() string {
	if k == KindSheets {
		return "sheets"
	}
	return "cuts"
}

// Options controls how rows are turned into cuts or sheets.
type Options struct {
	Kind Kind
	// DefaultThickness is used when the file has no thickness column.
	// Zero makes the column required.
	DefaultThickness float64
	// DefaultPriority is given to sheets without a priority value.
	DefaultPriority model.Priority
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cuts     []model.Cut
	Sheets   []model.Sheet
	Errors   []string
	Warnings []string
}

// Err returns the row errors as a single error, or nil if there were none.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, msg := range r.Errors {
		errs[i] = errors.New(msg)
	}
	return errors.Join(errs...)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Width     int
	Length    int
	Thickness int
	Quantity  int
	Priority  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "part", "part name", "description", "desc", "piece", "item", "sheet", "material"},
	"width":     {"width", "w", "x"},
	"length":    {"length", "len", "l", "height", "h", "y"},
	"thickness": {"thickness", "thick", "t", "th", "depth", "d"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"priority":  {"priority", "prio", "p", "preference"},
}

// positionalMapping is used when the first row is not a header:
// Label, Width, Length, Thickness, Quantity, Priority.
var positionalMapping = ColumnMapping{
	Label:     0,
	Width:     1,
	Length:    2,
	Thickness: 3,
	Quantity:  4,
	Priority:  5,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts
	return reader
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:     -1,
		Width:     -1,
		Length:    -1,
		Thickness: -1,
		Quantity:  -1,
		Priority:  -1,
	}
	slots := map[string]*int{
		"label":     &mapping.Label,
		"width":     &mapping.Width,
		"length":    &mapping.Length,
		"thickness": &mapping.Thickness,
		"quantity":  &mapping.Quantity,
		"priority":  &mapping.Priority,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
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

// rowValues are the fields shared by cut and sheet rows.
type rowValues struct {
	label     string
	width     float64
	length    float64
	thickness float64
	quantity  int
	priority  model.Priority
}

// parseRow extracts the values of one row using the given column mapping.
// Returns the values, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, opts Options) (rowValues, string, string) {
	var v rowValues
	v.label = getCell(row, mapping.Label)

	var err error
	if v.width, err = parseNumber(row, mapping.Width, "width", rowLabel); err != nil {
		return v, err.Error(), ""
	}
	if v.length, err = parseNumber(row, mapping.Length, "length", rowLabel); err != nil {
		return v, err.Error(), ""
	}

	if getCell(row, mapping.Thickness) == "" && opts.DefaultThickness > 0 {
		v.thickness = opts.DefaultThickness
	} else if v.thickness, err = parseNumber(row, mapping.Thickness, "thickness", rowLabel); err != nil {
		return v, err.Error(), ""
	}

	v.quantity = 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return v, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		v.quantity = qty
	}

	if v.width <= 0 || v.length <= 0 || v.thickness <= 0 || v.quantity <= 0 {
		return v, fmt.Sprintf("%s: Width, length, thickness, and quantity must be positive", rowLabel), ""
	}

	v.priority = opts.DefaultPriority
	var warning string
	if prioStr := getCell(row, mapping.Priority); prioStr != "" && opts.Kind == KindSheets {
		p, err := model.ParsePriority(prioStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Unknown priority '%s', defaulting to %s", rowLabel, prioStr, opts.DefaultPriority)
		} else {
			v.priority = p
		}
	}

	return v, "", warning
}

// thousandsGrouped matches values such as 1,220 that read as a thousands
// separator rather than a decimal comma.
var thousandsGrouped = regexp.MustCompile(`^[1-9]\d{0,2}(,\d{3})+$`)

func parseNumber(row []string, idx int, name, rowLabel string) (float64, error) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Errorf("%s: Missing %s value", rowLabel, name)
	}
	if thousandsGrouped.MatchString(s) {
		return 0, fmt.Errorf("%s: Ambiguous %s '%s', write it without thousands separators", rowLabel, name, s)
	}
	// Accept a decimal comma as written by European spreadsheets
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return f, nil
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

// ImportFile imports a CSV or Excel file, chosen by extension.
func ImportFile(path string, opts Options) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, opts)
	default:
		return ImportCSV(path, opts)
	}
}

// ImportCSV imports cuts or sheets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, opts Options) ImportResult {
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

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings, opts)
}

// ImportCSVFromReader imports cuts or sheets from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil, opts)
}

// ImportExcel imports cuts or sheets from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, opts Options) ImportResult {
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

	return importFromRows(rows, "Row", nil, opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cuts or sheets.
// Rows failing the optimizer's input limits or repeating an earlier label
// are reported as errors and skipped.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, opts Options) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Thickness == -1 && opts.DefaultThickness <= 0 {
			missing = append(missing, "Thickness")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header over positional data
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		v, errMsg, warning := parseRow(row, mapping, rowLabel, opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		if v.label == "" {
			if opts.Kind == KindSheets {
				v.label = fmt.Sprintf("Sheet %d", len(result.Sheets)+1)
			} else {
				v.label = fmt.Sprintf("Part %d", len(result.Cuts)+1)
			}
		}
		if first, dup := seen[v.label]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate label '%s' (first used on %s)", rowLabel, v.label, first))
			continue
		}

		var err error
		if opts.Kind == KindSheets {
			s := model.NewSheet(v.label, v.width, v.length, v.thickness, v.priority, v.quantity)
			if err = model.ValidateSheet(s); err == nil {
				result.Sheets = append(result.Sheets, s)
			}
		} else {
			c := model.NewCut(v.label, v.width, v.length, v.thickness, v.quantity)
			if err = model.ValidateCut(c); err == nil {
				result.Cuts = append(result.Cuts, c)
			}
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", rowLabel, strings.ReplaceAll(err.Error(), "\n", "; ")))
			continue
		}
		seen[v.label] = rowLabel
	}

	return result
}
