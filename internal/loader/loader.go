// Package loader reads tabular source files (Excel workbooks and delimited
// text) into the generic table model consumed by the cleaning stage.
package loader

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/errors"
	"salesdash/internal/tabular"
)

// utf8BOM is the byte order mark Excel prepends to UTF-8 CSV exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadWorkbook reads one sheet of an Excel workbook into a table. When
// sheetName is empty the first sheet carrying data rows is used.
func LoadWorkbook(path, sheetName string) (*tabular.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewSourceLoadError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	rows, usedSheet, err := sheetRows(f, sheetName)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded workbook sheet",
		slog.String("path", path),
		slog.String("sheet", usedSheet),
		slog.Int("total_rows", len(rows)))

	return tableFromRows(path, rows)
}

// sheetRows resolves the sheet to read. A named sheet is taken verbatim;
// otherwise the first sheet with more than a header row wins.
func sheetRows(f *excelize.File, sheetName string) ([][]string, string, error) {
	if sheetName != "" {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, "", errors.NewSourceLoadError(fmt.Sprintf("sheet %s not readable", sheetName), err)
		}
		return rows, sheetName, nil
	}

	for _, name := range f.GetSheetList() {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 1 {
			return rows, name, nil
		}
	}
	return nil, "", errors.NewSourceLoadError("no sheet with data rows found in workbook", nil)
}

// LoadCSV reads a delimited text file into a table, tolerating a UTF-8 BOM.
func LoadCSV(path string) (*tabular.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceLoadError(fmt.Sprintf("failed to read file %s", path), err)
	}

	if len(content) >= 3 && content[0] == utf8BOM[0] && content[1] == utf8BOM[1] && content[2] == utf8BOM[2] {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewSourceLoadError(fmt.Sprintf("failed to parse CSV %s", path), err)
	}

	slog.Info("Loaded CSV file",
		slog.String("path", path),
		slog.Int("total_rows", len(records)))

	return tableFromRows(path, records)
}

// tableFromRows converts raw string rows into a typed table. The first row
// with any non-empty cell is the header; a source with no rows beyond the
// header is an empty source, which aborts the run.
func tableFromRows(source string, rows [][]string) (*tabular.Table, error) {
	headerIdx := -1
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx == -1 {
		return nil, errors.NewSourceEmptyError(source)
	}

	columns := make([]string, len(rows[headerIdx]))
	for i, col := range rows[headerIdx] {
		columns[i] = cleanHeader(col)
	}

	table := tabular.New(columns)
	for _, row := range rows[headerIdx+1:] {
		empty := true
		cells := make([]tabular.Cell, len(row))
		for i, raw := range row {
			cells[i] = tabular.Parse(raw)
			if !cells[i].IsMissing() {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.AppendRow(cells)
	}

	if table.Len() == 0 {
		return nil, errors.NewSourceEmptyError(source)
	}
	return table, nil
}

// cleanHeader strips the BOM and zero-width characters that Excel exports
// leave on the first column name.
func cleanHeader(col string) string {
	clean := strings.TrimSpace(col)
	clean = strings.TrimPrefix(clean, "\uFEFF")
	clean = strings.TrimLeft(clean, "\u200B\u200C\u200D\u2060\uFEFF")
	return strings.TrimSpace(clean)
}
