package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// Artifact file names under the reports directory.
const (
	FactFileName      = "sales_fact.csv"
	CalendarFileName  = "calendar.csv"
	CustomersFileName = "dim_customers.csv"
	ProductsFileName  = "dim_products.csv"
	RegionsFileName   = "dim_regions.csv"
	DashboardFileName = "dashboard.json"
)

// ArtifactExporter writes the typed pipeline outputs as flat files.
type ArtifactExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewArtifactExporter creates an exporter writing under baseDir.
func NewArtifactExporter(baseDir string, logger *slog.Logger) *ArtifactExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtifactExporter{
		csv:    NewCSVWriter(baseDir),
		logger: logger,
	}
}

// ExportFacts streams the fact table to CSV. The header row carries the
// table's exact column names, including any derived columns.
func (e *ArtifactExporter) ExportFacts(ctx context.Context, facts *domain.FactTable, name string) error {
	headers := make([]string, len(facts.Columns))
	for i, col := range facts.Columns {
		headers[i] = string(col)
	}

	stream, err := e.csv.CreateStreamWriter(name, headers)
	if err != nil {
		return errors.NewStorageError("failed to create fact export", err)
	}

	for i := range facts.Rows {
		if err := stream.WriteRecord(factRecord(&facts.Rows[i], facts.Columns)); err != nil {
			stream.Close()
			return errors.NewStorageError("failed to write fact row", err)
		}
	}
	if err := stream.Close(); err != nil {
		return errors.NewStorageError("failed to finalize fact export", err)
	}

	e.logger.InfoContext(ctx, "exported fact table",
		slog.String("file", name),
		slog.Int("rows", facts.Len()))
	return nil
}

// factRecord renders one fact row in the table's column order.
func factRecord(row *domain.FactRow, columns []domain.Column) []string {
	record := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case domain.ColOrderDate, domain.ColShipDate:
			record[i] = formatDate(row.Date(col))
		case domain.ColOrderQuantity, domain.ColUnitSellingPrice, domain.ColUnitCost,
			domain.ColSales, domain.ColTotalCost, domain.ColProfit:
			record[i] = formatFloat(row.Measure(col))
		default:
			record[i] = row.Label(col)
		}
	}
	return record
}

// ExportCalendar writes the calendar table to CSV with the canonical
// column set.
func (e *ArtifactExporter) ExportCalendar(ctx context.Context, calendar *domain.CalendarTable, name string) error {
	records := make([][]string, 0, len(calendar.Rows))
	for i := range calendar.Rows {
		records = append(records, calendarRecord(&calendar.Rows[i]))
	}

	if err := e.csv.WriteSimpleCSV(name, domain.CalendarColumns, records); err != nil {
		return errors.NewStorageError("failed to write calendar export", err)
	}

	e.logger.InfoContext(ctx, "exported calendar table",
		slog.String("file", name),
		slog.Int("rows", len(calendar.Rows)))
	return nil
}

// calendarRecord renders one calendar row in domain.CalendarColumns order.
func calendarRecord(row *domain.CalendarRow) []string {
	return []string{
		formatDate(row.Date),
		formatInt(int64(row.Year)),
		formatInt(int64(row.Quarter)),
		row.QuarterName,
		formatInt(int64(row.Month)),
		formatInt(int64(row.MonthNo)),
		row.MonthName,
		row.MonthShort,
		formatInt(int64(row.Day)),
		row.DayName,
		row.DayShort,
		formatInt(int64(row.WeekNo)),
		formatInt(int64(row.DayOfWeek)),
		formatInt(int64(row.DayOfYear)),
		formatBool(row.IsWeekend),
		formatBool(row.IsMonthStart),
		formatBool(row.IsMonthEnd),
		formatBool(row.IsQuarterStart),
		formatBool(row.IsQuarterEnd),
		formatBool(row.IsYearStart),
		formatBool(row.IsYearEnd),
		row.YearMonth,
		row.YearQuarter,
		formatDate(row.DatePY),
		formatInt(int64(row.FiscalYear)),
		formatInt(int64(row.FiscalQuarter)),
	}
}

// ExportCustomers writes the customer dimension to CSV.
func (e *ArtifactExporter) ExportCustomers(ctx context.Context, customers *domain.CustomerTable, name string) error {
	headers := append([]string{"Customer_ID"}, customers.Columns...)
	records := make([][]string, 0, len(customers.Rows))
	for _, row := range customers.Rows {
		record := []string{row.ID}
		for _, col := range customers.Columns {
			switch col {
			case "Customer Index":
				record = append(record, row.Index)
			case "Customer Names", "Customer Name":
				record = append(record, row.Name)
			case "Size":
				record = append(record, row.Size)
			case "Capital":
				record = append(record, row.Capital)
			default:
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	if err := e.csv.WriteSimpleCSV(name, headers, records); err != nil {
		return errors.NewStorageError("failed to write customer export", err)
	}
	e.logger.InfoContext(ctx, "exported customer dimension",
		slog.String("file", name), slog.Int("rows", len(records)))
	return nil
}

// ExportProducts writes the product dimension to CSV.
func (e *ArtifactExporter) ExportProducts(ctx context.Context, products *domain.ProductTable, name string) error {
	headers := append([]string{"Product_ID"}, products.Columns...)
	records := make([][]string, 0, len(products.Rows))
	for _, row := range products.Rows {
		record := []string{row.ID}
		for _, col := range products.Columns {
			switch col {
			case "Index":
				record = append(record, row.Index)
			case "Product Name":
				record = append(record, row.Name)
			case "Product Description":
				record = append(record, row.Description)
			case "Customer Index":
				record = append(record, row.CustomerIndex)
			case "Customer Names":
				record = append(record, row.CustomerName)
			case "Size":
				record = append(record, row.Size)
			case "Capital":
				record = append(record, row.Capital)
			default:
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	if err := e.csv.WriteSimpleCSV(name, headers, records); err != nil {
		return errors.NewStorageError("failed to write product export", err)
	}
	e.logger.InfoContext(ctx, "exported product dimension",
		slog.String("file", name), slog.Int("rows", len(records)))
	return nil
}

// ExportRegions writes the region dimension to CSV.
func (e *ArtifactExporter) ExportRegions(ctx context.Context, regions *domain.RegionTable, name string) error {
	headers := append([]string{"Region_ID"}, regions.Columns...)
	records := make([][]string, 0, len(regions.Rows))
	for _, row := range regions.Rows {
		record := []string{row.ID}
		for _, col := range regions.Columns {
			switch col {
			case "Index":
				record = append(record, row.Index)
			case "Suburb":
				record = append(record, row.Suburb)
			case "City":
				record = append(record, row.City)
			case "postcode":
				record = append(record, row.Postcode)
			case "Longitude":
				record = append(record, row.Longitude)
			case "Latitude":
				record = append(record, row.Latitude)
			case "Full Address":
				record = append(record, row.FullAddress)
			case "Delivery Region Index":
				record = append(record, row.DeliveryRegionIndex)
			default:
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	if err := e.csv.WriteSimpleCSV(name, headers, records); err != nil {
		return errors.NewStorageError("failed to write region export", err)
	}
	e.logger.InfoContext(ctx, "exported region dimension",
		slog.String("file", name), slog.Int("rows", len(records)))
	return nil
}

// DashboardPayload is the JSON artifact the dashboard renderer consumes.
type DashboardPayload struct {
	GeneratedAt time.Time                             `json:"generated_at"`
	Measures    *domain.SalesMeasures                 `json:"measures"`
	Aggregates  map[string]*domain.DimensionAggregate `json:"aggregates"`
}

// ExportDashboardJSON writes the measures bundle and aggregate tables as
// one JSON document.
func (e *ArtifactExporter) ExportDashboardJSON(ctx context.Context, payload *DashboardPayload, name string) error {
	fullPath := e.csv.resolvePath(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create reports directory", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to encode dashboard payload", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return errors.NewStorageError("failed to write dashboard payload", err)
	}

	e.logger.InfoContext(ctx, "exported dashboard payload",
		slog.String("file", name),
		slog.Int("aggregates", len(payload.Aggregates)))
	return nil
}

// Artifacts bundles everything one pipeline run produces for export.
// Nil members are skipped.
type Artifacts struct {
	Facts     *domain.FactTable
	Calendar  *domain.CalendarTable
	Customers *domain.CustomerTable
	Products  *domain.ProductTable
	Regions   *domain.RegionTable
	Dashboard *DashboardPayload
}

// ExportAll writes every artifact concurrently. Files are independent, so
// one failed export does not corrupt the others; the first error wins.
func (e *ArtifactExporter) ExportAll(ctx context.Context, artifacts Artifacts) error {
	g, ctx := errgroup.WithContext(ctx)

	if artifacts.Facts != nil {
		g.Go(func() error { return e.ExportFacts(ctx, artifacts.Facts, FactFileName) })
	}
	if artifacts.Calendar != nil {
		g.Go(func() error { return e.ExportCalendar(ctx, artifacts.Calendar, CalendarFileName) })
	}
	if artifacts.Customers != nil {
		g.Go(func() error { return e.ExportCustomers(ctx, artifacts.Customers, CustomersFileName) })
	}
	if artifacts.Products != nil {
		g.Go(func() error { return e.ExportProducts(ctx, artifacts.Products, ProductsFileName) })
	}
	if artifacts.Regions != nil {
		g.Go(func() error { return e.ExportRegions(ctx, artifacts.Regions, RegionsFileName) })
	}
	if artifacts.Dashboard != nil {
		g.Go(func() error { return e.ExportDashboardJSON(ctx, artifacts.Dashboard, DashboardFileName) })
	}

	return g.Wait()
}
