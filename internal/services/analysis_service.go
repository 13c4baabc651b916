// Package services exposes the pipeline outputs to the transport layer.
package services

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"salesdash/internal/errors"
	"salesdash/internal/measures"
	"salesdash/pkg/contracts/domain"
)

// Dimension names accepted by the aggregates endpoint.
var aggregateDimensions = map[string]domain.Column{
	"product":  domain.ColProductDescription,
	"city":     domain.ColCity,
	"channel":  domain.ColChannel,
	"customer": domain.ColCustomerName,
}

// AnalysisService serves measures and aggregates computed from one
// completed pipeline run. The fact table is treated as read-only after
// construction, so methods are safe for concurrent requests.
type AnalysisService struct {
	facts       *domain.FactTable
	engine      *measures.Engine
	dateColumn  domain.Column
	currentYear int
	logger      *slog.Logger
}

// NewAnalysisService wraps a completed run's fact table. Derived columns
// are ensured here so later reads never mutate the table.
func NewAnalysisService(facts *domain.FactTable, dateColumn domain.Column, currentYear int, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	facts.EnsureDerived()
	return &AnalysisService{
		facts:       facts,
		engine:      measures.NewEngine(logger),
		dateColumn:  dateColumn,
		currentYear: currentYear,
		logger:      logger.With(slog.String("service", "analysis")),
	}
}

// Measures computes the scalar KPI bundle.
func (s *AnalysisService) Measures(ctx context.Context) (*domain.SalesMeasures, error) {
	return s.engine.CalculateAll(ctx, s.facts, s.dateColumn, s.currentYear)
}

// Aggregate computes the full aggregate table for the named dimension.
// The dimension name is matched case-insensitively; "month" selects the
// calendar-ordered month pseudo-dimension.
func (s *AnalysisService) Aggregate(ctx context.Context, dimension string) (*domain.DimensionAggregate, error) {
	name := strings.ToLower(strings.TrimSpace(dimension))
	if name == "month" {
		return s.engine.ByMonth(ctx, s.facts, s.dateColumn, s.currentYear)
	}
	col, ok := aggregateDimensions[name]
	if !ok {
		return nil, errors.NewNotFoundError("dimension " + dimension)
	}
	return s.engine.ByDimension(ctx, s.facts, col, s.dateColumn, s.currentYear)
}

// Dimensions lists the dimension names the aggregates endpoint accepts.
func (s *AnalysisService) Dimensions() []string {
	names := []string{"channel", "city", "customer", "month", "product"}
	return names
}

// HealthService reports process health for the dashboard API.
type HealthService struct {
	version   string
	startTime time.Time
	facts     *domain.FactTable
	logger    *slog.Logger
}

// NewHealthService creates a health service.
func NewHealthService(version string, facts *domain.FactTable, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		facts:     facts,
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Runtime   map[string]any `json:"runtime,omitempty"`
}

// HealthCheck reports overall process health.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := "healthy"
	if s.facts == nil || s.facts.Len() == 0 {
		status = "degraded"
	}
	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]any{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"fact_rows":      s.factRows(),
		},
	}
}

func (s *HealthService) factRows() int {
	if s.facts == nil {
		return 0
	}
	return s.facts.Len()
}
