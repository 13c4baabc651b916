// Package calendar builds the day-granularity date table used for
// time-based analysis, including fiscal-year attributes offset from the
// calendar year by a configurable start month.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// DefaultFiscalStartMonth is April.
const DefaultFiscalStartMonth = 4

// Build generates one calendar row per day from start to end inclusive.
// The produced table is gap-free with strictly increasing dates. Both
// bounds are truncated to midnight UTC before generation, so identical
// inputs always yield identical output.
func Build(start, end time.Time, fiscalStartMonth int) (*domain.CalendarTable, error) {
	if fiscalStartMonth < 1 || fiscalStartMonth > 12 {
		return nil, errors.NewInvalidConfigError(fmt.Sprintf("fiscal start month %d outside 1..12", fiscalStartMonth))
	}

	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, errors.NewInvalidRangeError(fmt.Sprintf("end %s precedes start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02")))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	table := &domain.CalendarTable{
		Start: start,
		End:   end,
		Rows:  make([]domain.CalendarRow, 0, days),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		table.Rows = append(table.Rows, buildRow(d, fiscalStartMonth))
	}

	return table, nil
}

// BuildOptions configures calendar inference from a fact table.
type BuildOptions struct {
	// DateColumns restricts which fact columns feed the range. Empty
	// means auto-detect every column whose name contains "date".
	DateColumns []domain.Column
	// BufferMonths widens the range on both sides before snapping.
	BufferMonths int
	// FiscalStartMonth defaults to April when zero.
	FiscalStartMonth int
}

// BuildFromFacts computes the date range spanned by the fact table's date
// columns, widens it by the buffer, snaps the start to the first day of
// its month and the end to the last day of its month, and delegates to
// Build.
func BuildFromFacts(facts *domain.FactTable, opts BuildOptions) (*domain.CalendarTable, error) {
	if opts.FiscalStartMonth == 0 {
		opts.FiscalStartMonth = DefaultFiscalStartMonth
	}

	columns := opts.DateColumns
	if len(columns) == 0 {
		columns = detectDateColumns(facts)
	}
	if len(columns) == 0 {
		return nil, errors.NewNoDateColumnError()
	}

	var minDate, maxDate time.Time
	for _, col := range columns {
		for i := range facts.Rows {
			d := facts.Rows[i].Date(col)
			if d.IsZero() {
				continue
			}
			if minDate.IsZero() || d.Before(minDate) {
				minDate = d
			}
			if maxDate.IsZero() || d.After(maxDate) {
				maxDate = d
			}
		}
	}
	if minDate.IsZero() {
		return nil, errors.NewNoDateColumnError()
	}

	start := monthStart(minDate.AddDate(0, -opts.BufferMonths, 0))
	end := monthEnd(maxDate.AddDate(0, opts.BufferMonths, 0))

	return Build(start, end, opts.FiscalStartMonth)
}

// detectDateColumns returns the fact columns whose name contains "date".
func detectDateColumns(facts *domain.FactTable) []domain.Column {
	var out []domain.Column
	for _, col := range facts.Columns {
		if strings.Contains(strings.ToLower(string(col)), "date") {
			out = append(out, col)
		}
	}
	return out
}

// buildRow derives every calendar attribute for one day.
func buildRow(d time.Time, fiscalStartMonth int) domain.CalendarRow {
	year, month, day := d.Date()
	quarter := (int(month)-1)/3 + 1
	_, isoWeek := d.ISOWeek()
	dayOfWeek := isoWeekday(d)

	row := domain.CalendarRow{
		Date:        d,
		Year:        year,
		Quarter:     quarter,
		QuarterName: fmt.Sprintf("Q%d", quarter),
		Month:       int(month),
		MonthNo:     int(month),
		MonthName:   month.String(),
		MonthShort:  d.Format("Jan"),
		Day:         day,
		DayName:     d.Weekday().String(),
		DayShort:    d.Format("Mon"),
		WeekNo:      isoWeek,
		DayOfWeek:   dayOfWeek,
		DayOfYear:   d.YearDay(),
		IsWeekend:   dayOfWeek >= 6,
		YearMonth:   d.Format("2006-01"),
		YearQuarter: fmt.Sprintf("%d-Q%d", year, quarter),
		DatePY:      shiftYearBack(d),
	}

	row.IsMonthStart = day == 1
	row.IsMonthEnd = d.AddDate(0, 0, 1).Day() == 1
	row.IsQuarterStart = row.IsMonthStart && (int(month)-1)%3 == 0
	row.IsQuarterEnd = row.IsMonthEnd && int(month)%3 == 0
	row.IsYearStart = int(month) == 1 && day == 1
	row.IsYearEnd = int(month) == 12 && day == 31

	// Fiscal year: the calendar year when the month has reached the fiscal
	// start month, else the year before.
	if int(month) >= fiscalStartMonth {
		row.FiscalYear = year
	} else {
		row.FiscalYear = year - 1
	}
	row.FiscalQuarter = ((int(month)-fiscalStartMonth)%12+12)%12/3 + 1

	return row
}

// isoWeekday numbers Monday=1 .. Sunday=7.
func isoWeekday(d time.Time) int {
	return (int(d.Weekday())+6)%7 + 1
}

// shiftYearBack moves a date one year earlier, landing Feb 29 on Feb 28.
func shiftYearBack(d time.Time) time.Time {
	shifted := d.AddDate(-1, 0, 0)
	if shifted.Month() != d.Month() {
		// Go normalizes Feb 29 of a non-leap target into Mar 1.
		shifted = shifted.AddDate(0, 0, -1)
	}
	return shifted
}

func truncateDay(d time.Time) time.Time {
	year, month, day := d.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthStart(d time.Time) time.Time {
	year, month, _ := d.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(d time.Time) time.Time {
	return monthStart(d).AddDate(0, 1, -1)
}
