// Package measures computes year-over-year KPI bundles and per-dimension
// aggregate tables from the fact table. Percentage variances follow the
// zero-guard policy: a zero current-year denominator yields 0, never an
// error.
package measures

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// MonthDimension is the pseudo-dimension that groups fact rows by the
// calendar month of the date column instead of a fact label column.
const MonthDimension = "Month"

// Engine computes measures over a fact table. Methods never mutate the
// table beyond ensuring derived columns, so one engine can serve many
// concurrent readers of the same table once derivation has run.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a measures engine. A nil logger falls back to the
// process default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// CalculateAll computes the scalar KPI bundle for currentYear against
// currentYear-1. A currentYear of 0 means infer the maximum calendar year
// present in dateColumn. The prior year is always currentYear-1 even when
// no row falls in it; empty years yield zero sums.
func (e *Engine) CalculateAll(ctx context.Context, facts *domain.FactTable, dateColumn domain.Column, currentYear int) (*domain.SalesMeasures, error) {
	facts.EnsureDerived()

	currentYear, err := resolveYear(facts, dateColumn, currentYear)
	if err != nil {
		return nil, err
	}
	priorYear := currentYear - 1

	m := &domain.SalesMeasures{CurrentYear: currentYear}
	var qtyCY, qtyPY float64
	for i := range facts.Rows {
		r := &facts.Rows[i]
		m.TotalCost += r.TotalCost

		switch yearOf(r.Date(dateColumn)) {
		case currentYear:
			m.TotalSales += r.Sales
			m.TotalProfit += r.Profit
			qtyCY += r.Quantity
		case priorYear:
			m.TotalSalesPY += r.Sales
			m.TotalProfitPY += r.Profit
			qtyPY += r.Quantity
		}
	}

	m.TotalSalesVar = m.TotalSales - m.TotalSalesPY
	m.TotalSalesVarPct = guardedPct(m.TotalSalesVar, m.TotalSales)
	m.TotalProfitVar = m.TotalProfit - m.TotalProfitPY
	m.TotalProfitVarPct = guardedPct(m.TotalProfitVar, m.TotalProfit)
	m.ProfitMarginPct = guardedPct(m.TotalProfit, m.TotalSales)

	m.TotalOrderQuantity = int64(qtyCY)
	m.TotalOrderQuantityPY = int64(qtyPY)
	m.TotalOrderQuantityVar = m.TotalOrderQuantity - m.TotalOrderQuantityPY
	m.TotalOrderQuantityVarPct = guardedPct(qtyCY-qtyPY, qtyCY)

	e.logger.InfoContext(ctx, "calculated measures bundle",
		slog.Int("current_year", currentYear),
		slog.Float64("total_sales", m.TotalSales),
		slog.Float64("total_profit", m.TotalProfit),
	)

	return m, nil
}

// ByDimension groups current-year and prior-year rows independently by the
// dimension column's distinct values and full-outer-joins the two grouped
// results, zero-filling the missing side. Rows are ordered by dimension
// value; callers apply top-N and ordering selectors themselves.
func (e *Engine) ByDimension(ctx context.Context, facts *domain.FactTable, dimension, dateColumn domain.Column, currentYear int) (*domain.DimensionAggregate, error) {
	facts.EnsureDerived()

	currentYear, err := resolveYear(facts, dateColumn, currentYear)
	if err != nil {
		return nil, err
	}

	agg := e.aggregate(facts, dateColumn, currentYear, func(r *domain.FactRow) string {
		return r.Label(dimension)
	})
	agg.Dimension = string(dimension)

	sort.Slice(agg.Rows, func(i, j int) bool {
		return agg.Rows[i].Value < agg.Rows[j].Value
	})

	e.logger.InfoContext(ctx, "calculated dimension aggregate",
		slog.String("dimension", string(dimension)),
		slog.Int("current_year", currentYear),
		slog.Int("values", agg.Len()),
	)

	return agg, nil
}

// ByMonth groups fact rows by the calendar month name of the date column.
// The result is ordered January through December, not alphabetically, and
// holds only months with activity in either year.
func (e *Engine) ByMonth(ctx context.Context, facts *domain.FactTable, dateColumn domain.Column, currentYear int) (*domain.DimensionAggregate, error) {
	facts.EnsureDerived()

	currentYear, err := resolveYear(facts, dateColumn, currentYear)
	if err != nil {
		return nil, err
	}

	agg := e.aggregate(facts, dateColumn, currentYear, func(r *domain.FactRow) string {
		d := r.Date(dateColumn)
		if d.IsZero() {
			return ""
		}
		return d.Month().String()
	})
	agg.Dimension = MonthDimension

	sort.Slice(agg.Rows, func(i, j int) bool {
		return monthNumber(agg.Rows[i].Value) < monthNumber(agg.Rows[j].Value)
	})

	e.logger.InfoContext(ctx, "calculated month aggregate",
		slog.Int("current_year", currentYear),
		slog.Int("values", agg.Len()),
	)

	return agg, nil
}

// aggregate performs the grouped CY/PY sums and the outer join for an
// arbitrary row keying function. Rows whose key is empty are skipped.
func (e *Engine) aggregate(facts *domain.FactTable, dateColumn domain.Column, currentYear int, key func(*domain.FactRow) string) *domain.DimensionAggregate {
	priorYear := currentYear - 1
	groups := make(map[string]*domain.DimensionAggregateRow)

	for i := range facts.Rows {
		r := &facts.Rows[i]
		value := key(r)
		if value == "" {
			continue
		}

		year := yearOf(r.Date(dateColumn))
		if year != currentYear && year != priorYear {
			continue
		}

		row, ok := groups[value]
		if !ok {
			row = &domain.DimensionAggregateRow{Value: value}
			groups[value] = row
		}
		if year == currentYear {
			row.SalesCY += r.Sales
			row.ProfitCY += r.Profit
			row.QtyCY += r.Quantity
			row.CostCY += r.TotalCost
		} else {
			row.SalesPY += r.Sales
			row.ProfitPY += r.Profit
			row.QtyPY += r.Quantity
			row.CostPY += r.TotalCost
		}
	}

	agg := &domain.DimensionAggregate{
		CurrentYear: currentYear,
		Rows:        make([]domain.DimensionAggregateRow, 0, len(groups)),
	}
	for _, row := range groups {
		row.SalesVar = row.SalesCY - row.SalesPY
		row.SalesVarPct = guardedPct(row.SalesVar, row.SalesCY)
		row.ProfitMarginPct = guardedPct(row.ProfitCY, row.SalesCY)
		agg.Rows = append(agg.Rows, *row)
	}

	return agg
}

// resolveYear returns the explicit year, or the maximum calendar year
// present in dateColumn when year is 0.
func resolveYear(facts *domain.FactTable, dateColumn domain.Column, year int) (int, error) {
	if year != 0 {
		return year, nil
	}
	maxYear := 0
	for i := range facts.Rows {
		if y := yearOf(facts.Rows[i].Date(dateColumn)); y > maxYear {
			maxYear = y
		}
	}
	if maxYear == 0 {
		return 0, errors.NewNoDateColumnError()
	}
	return maxYear, nil
}

// yearOf returns 0 for the zero time so absent dates never match a year.
func yearOf(d time.Time) int {
	if d.IsZero() {
		return 0
	}
	return d.Year()
}

// guardedPct returns part/whole*100 with the zero-guard policy applied.
func guardedPct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// monthNumber maps an English month name to 1..12, 0 when unknown.
func monthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 0
}
