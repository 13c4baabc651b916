package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"salesdash/internal/tabular"
	"salesdash/pkg/contracts/domain"
)

// Sources carries the optional dedicated dimension source tables. A nil
// table means the dimension falls back to projecting the fact source.
type Sources struct {
	Customers *tabular.Table
	Products  *tabular.Table
	Regions   *tabular.Table
}

// Extractor derives dimension tables and the sales fact table from a
// cleaned source.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new dimension extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract builds the customer, product and region dimensions and the fact
// table. Dedicated sources are preferred for dimensions; otherwise the
// fact source is projected; a dimension with no recognizable columns comes
// back empty rather than failing. Fact rows keep the clean source's order.
func (e *Extractor) Extract(ctx context.Context, clean *tabular.Table, sources Sources) (*domain.CustomerTable, *domain.ProductTable, *domain.RegionTable, *domain.FactTable) {
	schema := Probe(clean)

	customers := e.extractCustomers(clean, schema, sources.Customers)
	products := e.extractProducts(clean, schema, sources.Products)
	regions := e.extractRegions(clean, schema, sources.Regions)
	facts := e.extractFacts(clean, schema)

	e.logger.InfoContext(ctx, "dimensional tables created",
		slog.Int("customers", len(customers.Rows)),
		slog.Int("products", len(products.Rows)),
		slog.Int("regions", len(regions.Rows)),
		slog.Int("facts", facts.Len()))

	return customers, products, regions, facts
}

// dedicated-source projections, richest first
var (
	customerSourceColumns = []string{"Customer Index", "Customer Names", "Size", "Capital"}
	productSourceColumns  = []string{"Index", "Product Name", "Customer Index", "Customer Names", "Size", "Capital"}
	regionSourceColumns   = []string{"Index", "Suburb", "City", "postcode", "Longitude", "Latitude", "Full Address"}
)

func (e *Extractor) extractCustomers(clean *tabular.Table, schema *Schema, source *tabular.Table) *domain.CustomerTable {
	out := &domain.CustomerTable{}

	if source != nil {
		proj := project(source, customerSourceColumns)
		out.Columns = proj.Columns
		for _, row := range proj.Rows {
			out.Rows = append(out.Rows, domain.Customer{
				ID:      row["Customer Index"],
				Index:   row["Customer Index"],
				Name:    row["Customer Names"],
				Size:    row["Size"],
				Capital: row["Capital"],
			})
		}
		return out
	}

	if !schema.HasCustomerColumns {
		return out
	}

	proj := project(clean, []string{"Customer Index", "Customer Name"})
	out.Columns = proj.Columns
	for i, row := range proj.Rows {
		customer := domain.Customer{
			Index: row["Customer Index"],
			Name:  row["Customer Name"],
		}
		// Identifier comes from the natural key when present, else the name.
		if customer.Index != "" {
			customer.ID = customer.Index
		} else if customer.Name != "" {
			customer.ID = customer.Name
		} else {
			customer.ID = strconv.Itoa(i + 1)
		}
		out.Rows = append(out.Rows, customer)
	}
	return out
}

func (e *Extractor) extractProducts(clean *tabular.Table, schema *Schema, source *tabular.Table) *domain.ProductTable {
	out := &domain.ProductTable{}

	if source != nil {
		proj := project(source, productSourceColumns)
		out.Columns = proj.Columns
		for _, row := range proj.Rows {
			out.Rows = append(out.Rows, domain.Product{
				ID:            row["Index"],
				Index:         row["Index"],
				Name:          row["Product Name"],
				CustomerIndex: row["Customer Index"],
				CustomerName:  row["Customer Names"],
				Size:          row["Size"],
				Capital:       row["Capital"],
			})
		}
		return out
	}

	if !schema.HasProductColumns {
		return out
	}

	proj := project(clean, []string{"Product Description"})
	out.Columns = proj.Columns
	for i, row := range proj.Rows {
		out.Rows = append(out.Rows, domain.Product{
			ID:          strconv.Itoa(i + 1),
			Description: row["Product Description"],
		})
	}
	return out
}

func (e *Extractor) extractRegions(clean *tabular.Table, schema *Schema, source *tabular.Table) *domain.RegionTable {
	out := &domain.RegionTable{}

	if source != nil {
		proj := project(source, regionSourceColumns)
		out.Columns = proj.Columns
		for _, row := range proj.Rows {
			out.Rows = append(out.Rows, domain.Region{
				ID:          row["Index"],
				Index:       row["Index"],
				Suburb:      row["Suburb"],
				City:        row["City"],
				Postcode:    row["postcode"],
				Longitude:   row["Longitude"],
				Latitude:    row["Latitude"],
				FullAddress: row["Full Address"],
			})
		}
		return out
	}

	if !schema.HasRegionColumns {
		return out
	}

	proj := project(clean, []string{"Delivery Region Index", "City"})
	out.Columns = proj.Columns
	for i, row := range proj.Rows {
		out.Rows = append(out.Rows, domain.Region{
			ID:                  strconv.Itoa(i + 1),
			DeliveryRegionIndex: row["Delivery Region Index"],
			City:                row["City"],
		})
	}
	return out
}

// extractFacts projects the allow-listed columns into typed fact rows,
// preserving source row order, then ensures the derived measure columns.
func (e *Extractor) extractFacts(clean *tabular.Table, schema *Schema) *domain.FactTable {
	facts := &domain.FactTable{Columns: schema.Columns()}

	facts.Rows = make([]domain.FactRow, 0, clean.Len())
	for i := range clean.Rows {
		var row domain.FactRow
		for _, col := range facts.Columns {
			cell := clean.Cell(i, schema.Index(col))
			switch col {
			case domain.ColOrderDate:
				row.OrderDate = cell.Time
			case domain.ColShipDate:
				row.ShipDate = cell.Time
			case domain.ColOrderQuantity:
				row.Quantity = cell.Num
			case domain.ColUnitSellingPrice:
				row.UnitPrice = cell.Num
			case domain.ColUnitCost:
				row.UnitCost = cell.Num
			case domain.ColOrderNumber:
				row.OrderNumber = cell.Format()
			case domain.ColCustomerName:
				row.CustomerName = cell.Format()
			case domain.ColCustomerIndex:
				row.CustomerIndex = cell.Format()
			case domain.ColProductIndex:
				row.ProductIndex = cell.Format()
			case domain.ColChannel:
				row.Channel = cell.Format()
			case domain.ColCurrencyCode:
				row.CurrencyCode = cell.Format()
			case domain.ColWarehouseCode:
				row.WarehouseCode = cell.Format()
			case domain.ColDeliveryRegionIndex:
				row.DeliveryRegionIndex = cell.Format()
			case domain.ColCity:
				row.City = cell.Format()
			case domain.ColProductDescription:
				row.ProductDescription = cell.Format()
			}
		}
		facts.Rows = append(facts.Rows, row)
	}

	facts.EnsureDerived()
	return facts
}

// projection is a deduplicated column subset of a table with stringified
// cells, keeping first-occurrence row order.
type projection struct {
	Columns []string
	Rows    []map[string]string
}

// project extracts the subset of wanted columns present in the table and
// drops duplicate projected rows (first occurrence wins).
func project(table *tabular.Table, wanted []string) projection {
	var proj projection
	var indices []int
	for _, name := range wanted {
		if idx := table.ColumnIndex(name); idx >= 0 {
			proj.Columns = append(proj.Columns, name)
			indices = append(indices, idx)
		}
	}
	if len(indices) == 0 {
		return proj
	}

	seen := make(map[string]bool)
	for i := range table.Rows {
		values := make(map[string]string, len(indices))
		var key strings.Builder
		for j, idx := range indices {
			text := table.Cell(i, idx).Format()
			values[proj.Columns[j]] = text
			key.WriteString(text)
			key.WriteByte('\x1f')
		}
		if seen[key.String()] {
			continue
		}
		seen[key.String()] = true
		proj.Rows = append(proj.Rows, values)
	}
	return proj
}
