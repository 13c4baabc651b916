package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

type fakeAnalysisService struct {
	measures   *domain.SalesMeasures
	aggregates map[string]*domain.DimensionAggregate
	err        error
}

func (f *fakeAnalysisService) Measures(ctx context.Context) (*domain.SalesMeasures, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.measures, nil
}

func (f *fakeAnalysisService) Aggregate(ctx context.Context, dimension string) (*domain.DimensionAggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	agg, ok := f.aggregates[dimension]
	if !ok {
		return nil, apierrors.NewNotFoundError("dimension " + dimension)
	}
	return agg, nil
}

func (f *fakeAnalysisService) Dimensions() []string {
	return []string{"channel", "city", "customer", "month", "product"}
}

func channelAggregate() *domain.DimensionAggregate {
	return &domain.DimensionAggregate{
		Dimension:   "Channel",
		CurrentYear: 2023,
		Rows: []domain.DimensionAggregateRow{
			{Value: "Distributor", SalesCY: 50},
			{Value: "Export", SalesCY: 200},
			{Value: "Retail", SalesCY: 100},
		},
	}
}

func testRouter(service AnalysisServiceInterface) chi.Router {
	r := chi.NewRouter()
	r.Mount("/api", NewDashboardHandler(service, nil).Routes())
	return r
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetMeasures(t *testing.T) {
	service := &fakeAnalysisService{
		measures: &domain.SalesMeasures{TotalSales: 20, TotalSalesPY: 10, CurrentYear: 2023},
	}

	rec := doRequest(t, testRouter(service), "/api/measures")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.SalesMeasures
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 20.0, got.TotalSales, 1e-9)
	assert.Equal(t, 2023, got.CurrentYear)
}

func TestGetMeasuresError(t *testing.T) {
	service := &fakeAnalysisService{err: apierrors.NewNoDateColumnError()}

	rec := doRequest(t, testRouter(service), "/api/measures")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "NO_DATE_COLUMN", apiErr.ErrorCode)
}

func TestGetAggregate(t *testing.T) {
	service := &fakeAnalysisService{
		aggregates: map[string]*domain.DimensionAggregate{"channel": channelAggregate()},
	}

	rec := doRequest(t, testRouter(service), "/api/aggregates/channel")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DimensionAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Rows, 3)
	// No selectors: the core ordering is passed through untouched.
	assert.Equal(t, "Distributor", got.Rows[0].Value)
}

func TestGetAggregateUnknownDimension(t *testing.T) {
	service := &fakeAnalysisService{aggregates: map[string]*domain.DimensionAggregate{}}

	rec := doRequest(t, testRouter(service), "/api/aggregates/warehouse")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAggregateTopN(t *testing.T) {
	service := &fakeAnalysisService{
		aggregates: map[string]*domain.DimensionAggregate{"channel": channelAggregate()},
	}

	rec := doRequest(t, testRouter(service), "/api/aggregates/channel?top_n=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DimensionAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Rows, 2)
	// Descending by current-year sales when a selector is present.
	assert.Equal(t, "Export", got.Rows[0].Value)
	assert.Equal(t, "Retail", got.Rows[1].Value)
}

func TestGetAggregateAscending(t *testing.T) {
	aggregates := map[string]*domain.DimensionAggregate{"channel": channelAggregate()}
	service := &fakeAnalysisService{aggregates: aggregates}

	rec := doRequest(t, testRouter(service), "/api/aggregates/channel?ascending=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DimensionAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "Distributor", got.Rows[0].Value)
	assert.Equal(t, "Export", got.Rows[2].Value)

	// The service's aggregate is never reordered in place.
	assert.Equal(t, "Distributor", aggregates["channel"].Rows[0].Value)
	assert.Equal(t, "Export", aggregates["channel"].Rows[1].Value)
}

func TestGetAggregateInvalidSelectors(t *testing.T) {
	service := &fakeAnalysisService{
		aggregates: map[string]*domain.DimensionAggregate{"channel": channelAggregate()},
	}
	router := testRouter(service)

	for _, path := range []string{
		"/api/aggregates/channel?top_n=abc",
		"/api/aggregates/channel?top_n=-1",
		"/api/aggregates/channel?ascending=maybe",
	} {
		rec := doRequest(t, router, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestListDimensions(t *testing.T) {
	service := &fakeAnalysisService{}

	rec := doRequest(t, testRouter(service), "/api/aggregates")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got["dimensions"], "month")
	assert.Contains(t, got["dimensions"], "product")
}
