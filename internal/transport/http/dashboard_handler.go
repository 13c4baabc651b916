package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// DashboardHandler serves the measures bundle and aggregate tables.
type DashboardHandler struct {
	service AnalysisServiceInterface
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service AnalysisServiceInterface, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service: service,
		logger:  logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/measures", h.GetMeasures)
	r.Get("/aggregates", h.ListDimensions)
	r.Get("/aggregates/{dimension}", h.GetAggregate)

	return r
}

// GetMeasures handles GET /api/measures
func (h *DashboardHandler) GetMeasures(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Measures(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute measures",
			slog.String("error", err.Error()))
		apierrors.WriteError(w, err)
		return
	}
	render.JSON(w, r, m)
}

// ListDimensions handles GET /api/aggregates
func (h *DashboardHandler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string][]string{"dimensions": h.service.Dimensions()})
}

// GetAggregate handles GET /api/aggregates/{dimension}.
// The optional top_n and ascending query parameters reorder and truncate
// the response only; the underlying aggregation always covers the full
// dimension set.
func (h *DashboardHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")

	topN, ascending, err := aggregateSelectors(r)
	if err != nil {
		apierrors.WriteError(w, err)
		return
	}

	agg, err := h.service.Aggregate(r.Context(), dimension)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute aggregate",
			slog.String("dimension", dimension),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, err)
		return
	}

	render.JSON(w, r, applySelectors(agg, topN, ascending))
}

// aggregateSelectors parses the top_n and ascending query parameters.
// A missing ascending means "leave the core ordering alone" and is
// reported via the bool pointer.
func aggregateSelectors(r *http.Request) (int, *bool, error) {
	var topN int
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, nil, apierrors.NewValidationError("top_n must be a non-negative integer")
		}
		topN = n
	}

	var ascending *bool
	if raw := r.URL.Query().Get("ascending"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return 0, nil, apierrors.NewValidationError("ascending must be a boolean")
		}
		ascending = &b
	}

	return topN, ascending, nil
}

// applySelectors returns a copy of the aggregate with the edge selectors
// applied. When either selector is set, rows are ordered by current-year
// sales before truncation; the input aggregate is never modified.
func applySelectors(agg *domain.DimensionAggregate, topN int, ascending *bool) *domain.DimensionAggregate {
	if topN == 0 && ascending == nil {
		return agg
	}

	out := &domain.DimensionAggregate{
		Dimension:   agg.Dimension,
		CurrentYear: agg.CurrentYear,
		Rows:        append([]domain.DimensionAggregateRow(nil), agg.Rows...),
	}

	asc := ascending != nil && *ascending
	sort.SliceStable(out.Rows, func(i, j int) bool {
		if asc {
			return out.Rows[i].SalesCY < out.Rows[j].SalesCY
		}
		return out.Rows[i].SalesCY > out.Rows[j].SalesCY
	})

	if topN > 0 && topN < len(out.Rows) {
		out.Rows = out.Rows[:topN]
	}

	return out
}
