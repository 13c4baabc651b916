package http

import (
	"context"

	"salesdash/pkg/contracts/domain"
)

// AnalysisServiceInterface defines what the dashboard handler needs from
// the analysis layer. Kept minimal so tests can substitute fakes.
type AnalysisServiceInterface interface {
	Measures(ctx context.Context) (*domain.SalesMeasures, error)
	Aggregate(ctx context.Context, dimension string) (*domain.DimensionAggregate, error)
	Dimensions() []string
}
