package domain

// SalesMeasures is the fixed-shape scalar KPI bundle for a year-over-year
// comparison. Percentage variances follow the zero-guard policy: when the
// current-year total is exactly 0 the percentage is 0, which callers must
// not read as an actual 0% change.
type SalesMeasures struct {
	TotalSales       float64 `json:"total_sales"`
	TotalSalesPY     float64 `json:"total_sales_py"`
	TotalSalesVar    float64 `json:"total_sales_py_var"`
	TotalSalesVarPct float64 `json:"total_sales_py_var_pct"`

	TotalProfit       float64 `json:"total_profit"`
	TotalProfitPY     float64 `json:"total_profit_py"`
	TotalProfitVar    float64 `json:"total_profit_py_var"`
	TotalProfitVarPct float64 `json:"total_profit_py_var_pct"`

	ProfitMarginPct float64 `json:"profit_margin_pct"`
	TotalCost       float64 `json:"total_cost"`

	TotalOrderQuantity       int64   `json:"total_order_quantity"`
	TotalOrderQuantityPY     int64   `json:"total_order_quantity_py"`
	TotalOrderQuantityVar    int64   `json:"total_order_quantity_py_var"`
	TotalOrderQuantityVarPct float64 `json:"total_order_quantity_py_var_pct"`

	CurrentYear int `json:"current_year"`
}

// DimensionAggregateRow is one distinct dimension value with its
// current-year and prior-year sums. A value active in only one of the two
// years still appears, with zeros on the missing side.
type DimensionAggregateRow struct {
	Value string `json:"value"`

	SalesCY  float64 `json:"sales_cy"`
	SalesPY  float64 `json:"sales_py"`
	ProfitCY float64 `json:"profit_cy"`
	ProfitPY float64 `json:"profit_py"`
	QtyCY    float64 `json:"qty_cy"`
	QtyPY    float64 `json:"qty_py"`
	CostCY   float64 `json:"cost_cy"`
	CostPY   float64 `json:"cost_py"`

	SalesVar        float64 `json:"sales_var"`
	SalesVarPct     float64 `json:"sales_var_pct"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
}

// DimensionAggregate is a per-dimension year-over-year aggregate table.
// The core always returns the full dimension set; top-N and ordering
// selectors are applied by consumers, never here.
type DimensionAggregate struct {
	Dimension   string                  `json:"dimension"`
	CurrentYear int                     `json:"current_year"`
	Rows        []DimensionAggregateRow `json:"rows"`
}

// Len returns the number of aggregate rows.
func (a *DimensionAggregate) Len() int { return len(a.Rows) }
