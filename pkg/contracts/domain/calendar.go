package domain

import (
	"time"
)

// CalendarRow is one calendar day with its derived temporal attributes.
// Day_Of_Week uses ISO numbering (Monday=1 .. Sunday=7). Fiscal attributes
// are computed relative to a configurable fiscal-year start month.
type CalendarRow struct {
	Date           time.Time `json:"date"`
	Year           int       `json:"year"`
	Quarter        int       `json:"quarter"`
	QuarterName    string    `json:"quarter_name"`
	Month          int       `json:"month"`
	MonthNo        int       `json:"month_no"`
	MonthName      string    `json:"month_name"`
	MonthShort     string    `json:"month_short"`
	Day            int       `json:"day"`
	DayName        string    `json:"day_name"`
	DayShort       string    `json:"day_short"`
	WeekNo         int       `json:"week_no"`
	DayOfWeek      int       `json:"day_of_week"`
	DayOfYear      int       `json:"day_of_year"`
	IsWeekend      bool      `json:"is_weekend"`
	IsMonthStart   bool      `json:"is_month_start"`
	IsMonthEnd     bool      `json:"is_month_end"`
	IsQuarterStart bool      `json:"is_quarter_start"`
	IsQuarterEnd   bool      `json:"is_quarter_end"`
	IsYearStart    bool      `json:"is_year_start"`
	IsYearEnd      bool      `json:"is_year_end"`
	YearMonth      string    `json:"year_month"`
	YearQuarter    string    `json:"year_quarter"`
	DatePY         time.Time `json:"date_py"`
	FiscalYear     int       `json:"fiscal_year"`
	FiscalQuarter  int       `json:"fiscal_quarter"`
}

// CalendarColumns lists the calendar export header in canonical order.
var CalendarColumns = []string{
	"Date", "Year", "Quarter", "Quarter_Name", "Month", "Month_No",
	"Month_Name", "Month_Short", "Day", "Day_Name", "Day_Short", "Week_No",
	"Day_Of_Week", "Day_Of_Year", "Is_Weekend", "Is_Month_Start",
	"Is_Month_End", "Is_Quarter_Start", "Is_Quarter_End", "Is_Year_Start",
	"Is_Year_End", "Year_Month", "Year_Quarter", "Date_PY", "Fiscal_Year",
	"Fiscal_Quarter",
}

// CalendarTable is a gap-free day-granularity calendar spanning an
// inclusive date range. Dates are unique and strictly increasing.
type CalendarTable struct {
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Rows  []CalendarRow `json:"rows"`
}

// Len returns the number of calendar days.
func (t *CalendarTable) Len() int { return len(t.Rows) }
