package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/config"
	"salesdash/internal/services"
	"salesdash/pkg/contracts/domain"
)

func serverFacts() *domain.FactTable {
	facts := &domain.FactTable{
		Columns: []domain.Column{
			domain.ColOrderDate, domain.ColChannel,
			domain.ColOrderQuantity, domain.ColUnitSellingPrice, domain.ColUnitCost,
		},
		Rows: []domain.FactRow{
			{OrderDate: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), Channel: "Export", Quantity: 2, UnitPrice: 10, UnitCost: 4},
			{OrderDate: time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC), Channel: "Retail", Quantity: 1, UnitPrice: 10, UnitCost: 4},
		},
	}
	return facts
}

func TestRouterEndToEnd(t *testing.T) {
	facts := serverFacts()
	analysis := services.NewAnalysisService(facts, domain.ColOrderDate, 0, nil)
	health := services.NewHealthService("1.0.0-test", facts, nil)

	router := NewRouter(analysis, health, config.ServerConfig{Port: 8080}, nil)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/measures")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var m domain.SalesMeasures
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, 2023, m.CurrentYear)
	assert.InDelta(t, 20.0, m.TotalSales, 1e-9)
	assert.InDelta(t, 10.0, m.TotalSalesPY, 1e-9)

	resp, err = http.Get(srv.URL + "/api/aggregates/channel")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var agg domain.DimensionAggregate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&agg))
	require.Len(t, agg.Rows, 2)

	resp, err = http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status services.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0-test", status.Version)
}

func TestRouterRateLimit(t *testing.T) {
	facts := serverFacts()
	analysis := services.NewAnalysisService(facts, domain.ColOrderDate, 0, nil)
	health := services.NewHealthService("1.0.0-test", facts, nil)

	router := NewRouter(analysis, health, config.ServerConfig{Port: 8080, RateLimit: 1, RateBurst: 1}, nil)
	srv := httptest.NewServer(router)
	defer srv.Close()

	first, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "60", second.Header.Get("Retry-After"))
}

func TestRouterUnknownDimension(t *testing.T) {
	facts := serverFacts()
	analysis := services.NewAnalysisService(facts, domain.ColOrderDate, 0, nil)
	health := services.NewHealthService("1.0.0-test", facts, nil)

	router := NewRouter(analysis, health, config.ServerConfig{Port: 8080}, nil)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/aggregates/warehouse")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
