package dataprocessing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"salesdash/internal/tabular"
)

// magnitudeColumns are forced non-negative during cleaning.
var magnitudeColumns = []string{"Order Quantity", "Unit Selling Price", "Unit Cost"}

// dateFormats are tried in order when coercing date-column text.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"January 2, 2006",
}

// Cleaner repairs a raw tabular dataset before schema negotiation.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new cleaner.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// CleanReport summarizes what a cleaning pass changed.
type CleanReport struct {
	RowsBefore        int `json:"rows_before"`
	RowsAfter         int `json:"rows_after"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	NumericImputed    int `json:"numeric_imputed"`
	TextImputed       int `json:"text_imputed"`
	InvalidDates      int `json:"invalid_dates"`
}

// Clean applies the repair steps in order: drop exact-duplicate rows (first
// occurrence wins), impute numeric columns with their median, impute text
// columns with "Unknown", coerce date-named columns marking unparsable
// values invalid, and sign-normalize the magnitude columns. Steps that
// reference absent columns are skipped; missing optional columns are never
// an error. The input table is not modified.
func (c *Cleaner) Clean(ctx context.Context, raw *tabular.Table) (*tabular.Table, *CleanReport) {
	report := &CleanReport{RowsBefore: raw.Len()}

	table := dropDuplicates(raw, report)

	for col := range table.Columns {
		switch {
		case table.IsNumeric(col):
			imputeMedian(table, col, report)
		case table.IsText(col):
			imputeUnknown(table, col, report)
		}
	}

	for col, name := range table.Columns {
		if strings.Contains(strings.ToLower(name), "date") {
			coerceDates(table, col, report)
		}
	}

	for _, name := range magnitudeColumns {
		if col := table.ColumnIndex(name); col >= 0 {
			absColumn(table, col)
		}
	}

	report.RowsAfter = table.Len()
	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("rows_before", report.RowsBefore),
		slog.Int("rows_after", report.RowsAfter),
		slog.Int("duplicates_removed", report.DuplicatesRemoved),
		slog.Int("numeric_imputed", report.NumericImputed),
		slog.Int("text_imputed", report.TextImputed),
		slog.Int("invalid_dates", report.InvalidDates))

	return table, report
}

// dropDuplicates copies the table keeping only the first occurrence of
// each exact-duplicate row.
func dropDuplicates(raw *tabular.Table, report *CleanReport) *tabular.Table {
	out := tabular.New(append([]string(nil), raw.Columns...))
	seen := make(map[string]bool, raw.Len())

	for i := range raw.Rows {
		key := raw.Fingerprint(i)
		if seen[key] {
			report.DuplicatesRemoved++
			continue
		}
		seen[key] = true
		out.AppendRow(raw.Rows[i])
	}
	return out
}

// imputeMedian fills missing cells of a numeric column with its median.
func imputeMedian(table *tabular.Table, col int, report *CleanReport) {
	median, ok := table.Median(col)
	if !ok {
		return
	}
	for i := range table.Rows {
		if table.Rows[i][col].IsMissing() {
			table.Rows[i][col] = tabular.Number(median)
			report.NumericImputed++
		}
	}
}

// imputeUnknown fills missing cells of a text column with the sentinel.
func imputeUnknown(table *tabular.Table, col int, report *CleanReport) {
	for i := range table.Rows {
		if table.Rows[i][col].IsMissing() {
			table.Rows[i][col] = tabular.String("Unknown")
			report.TextImputed++
		}
	}
}

// coerceDates parses the cells of a date-named column. Values that cannot
// be parsed get the explicit invalid-date marker, never a silent zero.
func coerceDates(table *tabular.Table, col int, report *CleanReport) {
	for i := range table.Rows {
		cell := table.Rows[i][col]
		switch cell.Kind {
		case tabular.KindTime, tabular.KindInvalidDate:
			// already coerced on a previous pass
		case tabular.KindString:
			if t, ok := parseDate(cell.Str); ok {
				table.Rows[i][col] = tabular.Date(t)
			} else {
				table.Rows[i][col] = tabular.InvalidDate(cell.Str)
				report.InvalidDates++
			}
		default:
			table.Rows[i][col] = tabular.InvalidDate(cell.Format())
			report.InvalidDates++
		}
	}
}

// parseDate tries the supported date layouts in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// absColumn replaces numeric cells with their absolute value.
func absColumn(table *tabular.Table, col int) {
	for i := range table.Rows {
		if cell := table.Rows[i][col]; cell.Kind == tabular.KindNumber && cell.Num < 0 {
			table.Rows[i][col] = tabular.Number(-cell.Num)
		}
	}
}
