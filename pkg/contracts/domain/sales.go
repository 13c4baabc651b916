package domain

import (
	"time"
)

// Column identifies a fact table column by its canonical header name.
type Column string

// Source columns recognized by the fact table allow-list.
const (
	ColOrderNumber         Column = "OrderNumber"
	ColOrderDate           Column = "OrderDate"
	ColShipDate            Column = "Ship Date"
	ColCustomerName        Column = "Customer Name"
	ColCustomerIndex       Column = "Customer Index"
	ColProductIndex        Column = "Index"
	ColChannel             Column = "Channel"
	ColCurrencyCode        Column = "Currency Code"
	ColWarehouseCode       Column = "Warehouse Code"
	ColDeliveryRegionIndex Column = "Delivery Region Index"
	ColCity                Column = "City"
	ColProductDescription  Column = "Product Description"
	ColOrderQuantity       Column = "Order Quantity"
	ColUnitSellingPrice    Column = "Unit Selling Price"
	ColUnitCost            Column = "Unit Cost"
)

// Derived columns appended by EnsureDerived.
const (
	ColSales     Column = "Sales"
	ColTotalCost Column = "Total_Cost"
	ColProfit    Column = "Profit"
)

// FactAllowList is the fixed set of source columns retained in the fact
// table, in canonical output order.
var FactAllowList = []Column{
	ColOrderNumber,
	ColOrderDate,
	ColShipDate,
	ColCustomerName,
	ColCustomerIndex,
	ColProductIndex,
	ColChannel,
	ColCurrencyCode,
	ColWarehouseCode,
	ColDeliveryRegionIndex,
	ColCity,
	ColProductDescription,
	ColOrderQuantity,
	ColUnitSellingPrice,
	ColUnitCost,
}

// FactRow is one sales transaction. Field presence is a table-level fact
// recorded in FactTable.Columns; fields whose column is absent hold zero
// values. Date fields use the zero time for absent or unparsable dates.
type FactRow struct {
	OrderNumber         string    `json:"order_number,omitempty"`
	OrderDate           time.Time `json:"order_date,omitempty"`
	ShipDate            time.Time `json:"ship_date,omitempty"`
	CustomerName        string    `json:"customer_name,omitempty"`
	CustomerIndex       string    `json:"customer_index,omitempty"`
	ProductIndex        string    `json:"product_index,omitempty"`
	Channel             string    `json:"channel,omitempty"`
	CurrencyCode        string    `json:"currency_code,omitempty"`
	WarehouseCode       string    `json:"warehouse_code,omitempty"`
	DeliveryRegionIndex string    `json:"delivery_region_index,omitempty"`
	City                string    `json:"city,omitempty"`
	ProductDescription  string    `json:"product_description,omitempty"`
	Quantity            float64   `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	UnitCost            float64   `json:"unit_cost"`

	Sales     float64 `json:"sales"`
	TotalCost float64 `json:"total_cost"`
	Profit    float64 `json:"profit"`
}

// FactTable is the transactional table produced by the dimension extractor.
// Rows keep the order of the cleaned source. The table is owned by the
// pipeline run that created it; EnsureDerived is the only mutation
// downstream consumers may apply.
type FactTable struct {
	Columns []Column  `json:"columns"`
	Rows    []FactRow `json:"rows"`
}

// Has reports whether the table carries the given column.
func (t *FactTable) Has(col Column) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Len returns the number of fact rows.
func (t *FactTable) Len() int { return len(t.Rows) }

// EnsureDerived appends the derived Sales, Total_Cost and Profit columns
// whenever their prerequisites exist. Each derived column is independently
// optional and the operation is idempotent, so every consumer may safely
// re-invoke it on a table it received.
func (t *FactTable) EnsureDerived() {
	if t.Has(ColOrderQuantity) && t.Has(ColUnitSellingPrice) && !t.Has(ColSales) {
		for i := range t.Rows {
			t.Rows[i].Sales = t.Rows[i].Quantity * t.Rows[i].UnitPrice
		}
		t.Columns = append(t.Columns, ColSales)
	}
	if t.Has(ColOrderQuantity) && t.Has(ColUnitCost) && !t.Has(ColTotalCost) {
		for i := range t.Rows {
			t.Rows[i].TotalCost = t.Rows[i].Quantity * t.Rows[i].UnitCost
		}
		t.Columns = append(t.Columns, ColTotalCost)
	}
	if t.Has(ColSales) && t.Has(ColTotalCost) && !t.Has(ColProfit) {
		for i := range t.Rows {
			t.Rows[i].Profit = t.Rows[i].Sales - t.Rows[i].TotalCost
		}
		t.Columns = append(t.Columns, ColProfit)
	}
}

// Date returns the value of a date-bearing column for the row.
// The zero time is returned for columns that are not dates.
func (r *FactRow) Date(col Column) time.Time {
	switch col {
	case ColOrderDate:
		return r.OrderDate
	case ColShipDate:
		return r.ShipDate
	}
	return time.Time{}
}

// Measure returns the numeric value of a measure column for the row.
func (r *FactRow) Measure(col Column) float64 {
	switch col {
	case ColOrderQuantity:
		return r.Quantity
	case ColUnitSellingPrice:
		return r.UnitPrice
	case ColUnitCost:
		return r.UnitCost
	case ColSales:
		return r.Sales
	case ColTotalCost:
		return r.TotalCost
	case ColProfit:
		return r.Profit
	}
	return 0
}

// Label returns the textual value of a grouping column for the row.
func (r *FactRow) Label(col Column) string {
	switch col {
	case ColOrderNumber:
		return r.OrderNumber
	case ColCustomerName:
		return r.CustomerName
	case ColCustomerIndex:
		return r.CustomerIndex
	case ColProductIndex:
		return r.ProductIndex
	case ColChannel:
		return r.Channel
	case ColCurrencyCode:
		return r.CurrencyCode
	case ColWarehouseCode:
		return r.WarehouseCode
	case ColDeliveryRegionIndex:
		return r.DeliveryRegionIndex
	case ColCity:
		return r.City
	case ColProductDescription:
		return r.ProductDescription
	}
	return ""
}

// Customer is one row of the customer dimension table.
type Customer struct {
	ID      string `json:"customer_id"`
	Index   string `json:"customer_index,omitempty"`
	Name    string `json:"customer_name,omitempty"`
	Size    string `json:"size,omitempty"`
	Capital string `json:"capital,omitempty"`
}

// Product is one row of the product dimension table.
type Product struct {
	ID            string `json:"product_id"`
	Index         string `json:"index,omitempty"`
	Name          string `json:"product_name,omitempty"`
	Description   string `json:"product_description,omitempty"`
	CustomerIndex string `json:"customer_index,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	Size          string `json:"size,omitempty"`
	Capital       string `json:"capital,omitempty"`
}

// Region is one row of the region dimension table.
type Region struct {
	ID                  string `json:"region_id"`
	Index               string `json:"index,omitempty"`
	Suburb              string `json:"suburb,omitempty"`
	City                string `json:"city,omitempty"`
	Postcode            string `json:"postcode,omitempty"`
	Longitude           string `json:"longitude,omitempty"`
	Latitude            string `json:"latitude,omitempty"`
	DeliveryRegionIndex string `json:"delivery_region_index,omitempty"`
	FullAddress         string `json:"full_address,omitempty"`
}

// CustomerTable is the customer dimension. Empty when the source carries
// no customer-related columns; callers must tolerate zero rows.
type CustomerTable struct {
	Columns []string   `json:"columns"`
	Rows    []Customer `json:"rows"`
}

// ProductTable is the product dimension.
type ProductTable struct {
	Columns []string  `json:"columns"`
	Rows    []Product `json:"rows"`
}

// RegionTable is the region dimension.
type RegionTable struct {
	Columns []string `json:"columns"`
	Rows    []Region `json:"rows"`
}
