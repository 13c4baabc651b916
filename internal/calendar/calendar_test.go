package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildRange(t *testing.T) {
	table, err := Build(date(2023, time.January, 1), date(2023, time.December, 31), 4)
	require.NoError(t, err)
	require.Len(t, table.Rows, 365)

	assert.Equal(t, date(2023, time.January, 1), table.Rows[0].Date)
	assert.Equal(t, date(2023, time.December, 31), table.Rows[364].Date)

	// Gap-free and strictly increasing.
	for i := 1; i < len(table.Rows); i++ {
		assert.Equal(t, table.Rows[i-1].Date.AddDate(0, 0, 1), table.Rows[i].Date)
	}
}

func TestBuildLeapYear(t *testing.T) {
	table, err := Build(date(2024, time.January, 1), date(2024, time.December, 31), 4)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 366)
}

func TestBuildSingleDay(t *testing.T) {
	table, err := Build(date(2023, time.June, 15), date(2023, time.June, 15), 4)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, date(2023, time.June, 15), table.Rows[0].Date)
}

func TestBuildInvalidRange(t *testing.T) {
	_, err := Build(date(2023, time.June, 2), date(2023, time.June, 1), 4)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInvalidRange))
}

func TestBuildInvalidFiscalMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := Build(date(2023, time.January, 1), date(2023, time.January, 31), month)
		require.Error(t, err, "month %d", month)
		assert.True(t, errors.IsType(err, errors.ErrTypeInvalidConfig))
	}
}

func TestRowAttributes(t *testing.T) {
	table, err := Build(date(2023, time.June, 15), date(2023, time.June, 15), 4)
	require.NoError(t, err)
	row := table.Rows[0]

	assert.Equal(t, 2023, row.Year)
	assert.Equal(t, 2, row.Quarter)
	assert.Equal(t, "Q2", row.QuarterName)
	assert.Equal(t, 6, row.Month)
	assert.Equal(t, "June", row.MonthName)
	assert.Equal(t, "Jun", row.MonthShort)
	assert.Equal(t, 15, row.Day)
	assert.Equal(t, "Thursday", row.DayName)
	assert.Equal(t, "Thu", row.DayShort)
	assert.Equal(t, 4, row.DayOfWeek)
	assert.Equal(t, 166, row.DayOfYear)
	assert.False(t, row.IsWeekend)
	assert.Equal(t, "2023-06", row.YearMonth)
	assert.Equal(t, "2023-Q2", row.YearQuarter)
	assert.Equal(t, date(2022, time.June, 15), row.DatePY)
}

func TestDayOfWeekMondayBased(t *testing.T) {
	// 2023-06-12 is a Monday.
	table, err := Build(date(2023, time.June, 12), date(2023, time.June, 18), 4)
	require.NoError(t, err)
	for i, row := range table.Rows {
		assert.Equal(t, i+1, row.DayOfWeek, row.Date.Format("2006-01-02"))
	}
	assert.False(t, table.Rows[4].IsWeekend)
	assert.True(t, table.Rows[5].IsWeekend)
	assert.True(t, table.Rows[6].IsWeekend)
}

func TestBoundaryFlags(t *testing.T) {
	table, err := Build(date(2023, time.January, 1), date(2024, time.January, 1), 4)
	require.NoError(t, err)

	byDate := make(map[string]domain.CalendarRow, len(table.Rows))
	for _, row := range table.Rows {
		byDate[row.Date.Format("2006-01-02")] = row
	}

	jan1 := byDate["2023-01-01"]
	assert.True(t, jan1.IsMonthStart)
	assert.True(t, jan1.IsQuarterStart)
	assert.True(t, jan1.IsYearStart)
	assert.False(t, jan1.IsYearEnd)

	feb28 := byDate["2023-02-28"]
	assert.True(t, feb28.IsMonthEnd)
	assert.False(t, feb28.IsQuarterEnd)

	mar31 := byDate["2023-03-31"]
	assert.True(t, mar31.IsMonthEnd)
	assert.True(t, mar31.IsQuarterEnd)

	dec31 := byDate["2023-12-31"]
	assert.True(t, dec31.IsYearEnd)
	assert.True(t, dec31.IsQuarterEnd)

	apr1 := byDate["2023-04-01"]
	assert.True(t, apr1.IsQuarterStart)
	assert.False(t, apr1.IsYearStart)
}

func TestFiscalAttributes(t *testing.T) {
	tests := []struct {
		date          time.Time
		startMonth    int
		fiscalYear    int
		fiscalQuarter int
	}{
		{date(2023, time.April, 1), 4, 2023, 1},
		{date(2023, time.June, 30), 4, 2023, 1},
		{date(2023, time.July, 1), 4, 2023, 2},
		{date(2023, time.December, 31), 4, 2023, 3},
		{date(2024, time.January, 1), 4, 2023, 4},
		{date(2024, time.March, 31), 4, 2023, 4},
		{date(2023, time.January, 1), 1, 2023, 1},
		{date(2023, time.December, 31), 1, 2023, 4},
		{date(2023, time.June, 15), 7, 2022, 4},
		{date(2023, time.July, 1), 7, 2023, 1},
	}
	for _, tt := range tests {
		table, err := Build(tt.date, tt.date, tt.startMonth)
		require.NoError(t, err)
		row := table.Rows[0]
		assert.Equal(t, tt.fiscalYear, row.FiscalYear,
			"%s start=%d", tt.date.Format("2006-01-02"), tt.startMonth)
		assert.Equal(t, tt.fiscalQuarter, row.FiscalQuarter,
			"%s start=%d", tt.date.Format("2006-01-02"), tt.startMonth)
	}
}

func TestEpochMonday1973(t *testing.T) {
	// 1973-01-01 was a Monday.
	table, err := Build(date(1973, time.January, 1), date(1973, time.January, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows[0].DayOfWeek)
	assert.Equal(t, "Monday", table.Rows[0].DayName)
	assert.Equal(t, 1, table.Rows[0].FiscalQuarter)
	assert.Equal(t, 1973, table.Rows[0].FiscalYear)
}

func TestDatePYLeapDay(t *testing.T) {
	table, err := Build(date(2024, time.February, 29), date(2024, time.February, 29), 4)
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.February, 28), table.Rows[0].DatePY)
}

func factsWithDates(dates ...time.Time) *domain.FactTable {
	facts := &domain.FactTable{Columns: []domain.Column{domain.ColOrderDate}}
	for _, d := range dates {
		facts.Rows = append(facts.Rows, domain.FactRow{OrderDate: d})
	}
	return facts
}

func TestBuildFromFacts(t *testing.T) {
	facts := factsWithDates(
		date(2023, time.March, 14),
		date(2023, time.August, 2),
		time.Time{}, // invalid dates are ignored
	)

	table, err := BuildFromFacts(facts, BuildOptions{BufferMonths: 1, FiscalStartMonth: 4})
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.February, 1), table.Start)
	assert.Equal(t, date(2023, time.September, 30), table.End)
}

func TestBuildFromFactsSnapsToMonth(t *testing.T) {
	facts := factsWithDates(date(2023, time.June, 15))

	table, err := BuildFromFacts(facts, BuildOptions{FiscalStartMonth: 4})
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.June, 1), table.Start)
	assert.Equal(t, date(2023, time.June, 30), table.End)
}

func TestBuildFromFactsMultipleDateColumns(t *testing.T) {
	facts := &domain.FactTable{
		Columns: []domain.Column{domain.ColOrderDate, domain.ColShipDate},
		Rows: []domain.FactRow{
			{OrderDate: date(2023, time.May, 10), ShipDate: date(2023, time.July, 20)},
		},
	}

	table, err := BuildFromFacts(facts, BuildOptions{FiscalStartMonth: 4})
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.May, 1), table.Start)
	assert.Equal(t, date(2023, time.July, 31), table.End)
}

func TestBuildFromFactsNoDateColumn(t *testing.T) {
	facts := &domain.FactTable{Columns: []domain.Column{domain.ColChannel}}

	_, err := BuildFromFacts(facts, BuildOptions{FiscalStartMonth: 4})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNoDateColumn))
}

func TestBuildFromFactsAllDatesInvalid(t *testing.T) {
	facts := factsWithDates(time.Time{}, time.Time{})

	_, err := BuildFromFacts(facts, BuildOptions{FiscalStartMonth: 4})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNoDateColumn))
}

func TestBuildFromFactsDefaultFiscalMonth(t *testing.T) {
	facts := factsWithDates(date(2023, time.April, 1))

	table, err := BuildFromFacts(facts, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2023, table.Rows[0].FiscalYear)
	assert.Equal(t, 1, table.Rows[0].FiscalQuarter)
}
