package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"salesdash/internal/calendar"
	"salesdash/internal/config"
	"salesdash/internal/dataprocessing"
	"salesdash/internal/exporter"
	"salesdash/internal/files"
	"salesdash/internal/infrastructure"
	"salesdash/internal/loader"
	"salesdash/internal/measures"
	"salesdash/internal/services"
	"salesdash/internal/tabular"
	transport "salesdash/internal/transport/http"
	"salesdash/pkg/contracts/domain"
)

const version = "1.0.0"

func main() {
	dataPath := flag.String("data", "", "input dataset (.xlsx or .csv)")
	sheetName := flag.String("sheet", "", "worksheet name for xlsx input (defaults to first populated sheet)")
	outDir := flag.String("out", "", "output directory for artifacts (defaults to configured reports dir)")
	sample := flag.Bool("sample", false, "run on generated sample data instead of a file")
	sampleSize := flag.Int("sample-size", 1000, "number of sample rows to generate")
	sampleSeed := flag.Int64("sample-seed", 42, "seed for sample data generation")
	serve := flag.Bool("serve", false, "serve the dashboard API after the analysis run")
	port := flag.Int("port", 0, "dashboard API port (defaults to configured port)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	raw, err := loadInput(ctx, cfg, *dataPath, *sheetName, *sample, *sampleSize, *sampleSeed)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load input data", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d rows, %d columns\n", raw.Len(), len(raw.Columns))

	clean, report := dataprocessing.NewCleaner(logger).Clean(ctx, raw)
	fmt.Printf("Cleaned data: %d rows (%d duplicates removed, %d values imputed, %d invalid dates)\n",
		report.RowsAfter, report.DuplicatesRemoved,
		report.NumericImputed+report.TextImputed, report.InvalidDates)

	customers, products, regions, facts := dataprocessing.NewExtractor(logger).Extract(ctx, clean, dataprocessing.Sources{})
	fmt.Printf("Dimensions: %d customers, %d products, %d regions; %d fact rows\n",
		len(customers.Rows), len(products.Rows), len(regions.Rows), facts.Len())

	dateColumn := domain.Column(cfg.Analysis.DateColumn)

	calendarTable, err := calendar.BuildFromFacts(facts, calendar.BuildOptions{
		BufferMonths:     cfg.Analysis.BufferMonths,
		FiscalStartMonth: cfg.Analysis.FiscalStartMonth,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build calendar", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Calendar: %s to %s (%d days)\n",
		calendarTable.Start.Format("2006-01-02"),
		calendarTable.End.Format("2006-01-02"),
		len(calendarTable.Rows))

	engine := measures.NewEngine(logger)
	bundle, err := engine.CalculateAll(ctx, facts, dateColumn, cfg.Analysis.CurrentYear)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to calculate measures", "error", err)
		os.Exit(1)
	}
	printMeasuresSummary(bundle)

	aggregates, err := buildAggregates(ctx, engine, facts, dateColumn, bundle.CurrentYear)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to calculate aggregates", "error", err)
		os.Exit(1)
	}

	artifactExporter := exporter.NewArtifactExporter(cfg.Paths.ReportsDir, logger)
	err = artifactExporter.ExportAll(ctx, exporter.Artifacts{
		Facts:     facts,
		Calendar:  calendarTable,
		Customers: customers,
		Products:  products,
		Regions:   regions,
		Dashboard: &exporter.DashboardPayload{
			GeneratedAt: time.Now().UTC(),
			Measures:    bundle,
			Aggregates:  aggregates,
		},
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to export artifacts", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Artifacts written to %s\n", cfg.Paths.ReportsDir)

	if *serve {
		if err := serveDashboard(cfg, facts, bundle.CurrentYear, dateColumn, logger); err != nil {
			logger.ErrorContext(ctx, "Dashboard API failed", "error", err)
			os.Exit(1)
		}
	}
}

// loadInput materializes the raw table from a file or the sample generator.
func loadInput(ctx context.Context, cfg *config.Config, dataPath, sheetName string, sample bool, sampleSize int, sampleSeed int64) (*tabular.Table, error) {
	if sample {
		endYear := cfg.Analysis.CurrentYear
		if endYear == 0 {
			endYear = time.Now().Year()
		}
		infrastructure.LoggerWithContext(ctx).InfoContext(ctx, "generating sample data",
			slog.Int("rows", sampleSize), slog.Int64("seed", sampleSeed), slog.Int("end_year", endYear))
		return dataprocessing.GenerateSampleData(sampleSize, sampleSeed, endYear), nil
	}

	if dataPath == "" {
		return nil, fmt.Errorf("no input: pass -data <file or directory> or -sample")
	}

	if info, err := os.Stat(dataPath); err == nil && info.IsDir() {
		latest, err := files.NewDiscovery("").Latest(dataPath)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Using newest dataset in %s: %s\n", dataPath, latest.Name)
		dataPath = latest.Path
	}

	switch strings.ToLower(filepath.Ext(dataPath)) {
	case ".xlsx", ".xlsm":
		return loader.LoadWorkbook(dataPath, sheetName)
	case ".csv":
		return loader.LoadCSV(dataPath)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", filepath.Ext(dataPath))
	}
}

// buildAggregates computes the aggregate tables the dashboard consumes.
func buildAggregates(ctx context.Context, engine *measures.Engine, facts *domain.FactTable, dateColumn domain.Column, currentYear int) (map[string]*domain.DimensionAggregate, error) {
	byColumn := map[string]domain.Column{
		"product":  domain.ColProductDescription,
		"city":     domain.ColCity,
		"channel":  domain.ColChannel,
		"customer": domain.ColCustomerName,
	}

	out := make(map[string]*domain.DimensionAggregate, len(byColumn)+1)
	for name, col := range byColumn {
		agg, err := engine.ByDimension(ctx, facts, col, dateColumn, currentYear)
		if err != nil {
			return nil, err
		}
		out[name] = agg
	}

	month, err := engine.ByMonth(ctx, facts, dateColumn, currentYear)
	if err != nil {
		return nil, err
	}
	out["month"] = month

	return out, nil
}

// printMeasuresSummary renders the KPI bundle for the terminal.
func printMeasuresSummary(m *domain.SalesMeasures) {
	fmt.Println()
	fmt.Printf("=== Sales Measures (%d vs %d) ===\n", m.CurrentYear, m.CurrentYear-1)
	fmt.Printf("Total Sales:     %14s (PY %s, %+.1f%%)\n",
		formatAmount(m.TotalSales), formatAmount(m.TotalSalesPY), m.TotalSalesVarPct)
	fmt.Printf("Total Profit:    %14s (PY %s, %+.1f%%)\n",
		formatAmount(m.TotalProfit), formatAmount(m.TotalProfitPY), m.TotalProfitVarPct)
	fmt.Printf("Profit Margin:   %13.1f%%\n", m.ProfitMarginPct)
	fmt.Printf("Total Cost:      %14s\n", formatAmount(m.TotalCost))
	fmt.Printf("Order Quantity:  %14d (PY %d, %+.1f%%)\n",
		m.TotalOrderQuantity, m.TotalOrderQuantityPY, m.TotalOrderQuantityVarPct)
	fmt.Println()
}

// formatAmount renders a monetary value with thousands separators.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String() + fracPart
	}
	return b.String() + fracPart
}

// serveDashboard runs the dashboard API until interrupted.
func serveDashboard(cfg *config.Config, facts *domain.FactTable, currentYear int, dateColumn domain.Column, logger *slog.Logger) error {
	analysis := services.NewAnalysisService(facts, dateColumn, currentYear, logger)
	health := services.NewHealthService(version, facts, logger)

	router := transport.NewRouter(analysis, health, cfg.Server, logger)
	srv := transport.NewServer(router, cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Dashboard API listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down dashboard API")
	return srv.Shutdown(shutdownCtx)
}
