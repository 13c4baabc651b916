package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesdash/internal/tabular"
	"salesdash/pkg/contracts/domain"
)

func TestProbe(t *testing.T) {
	table := tabular.New([]string{
		"Ship Date", "OrderNumber", "OrderDate", "Customer Name",
		"Order Quantity", "Unit Selling Price", "Internal Memo",
	})

	s := Probe(table)

	assert.True(t, s.Has(domain.ColOrderNumber))
	assert.True(t, s.Has(domain.ColOrderDate))
	assert.True(t, s.Has(domain.ColShipDate))
	assert.False(t, s.Has(domain.ColUnitCost))
	assert.False(t, s.Has(domain.Column("Internal Memo")))

	assert.Equal(t, []string{"Ship Date", "OrderDate"}, s.DateColumns)

	assert.True(t, s.HasQuantity)
	assert.True(t, s.HasUnitPrice)
	assert.False(t, s.HasUnitCost)
	assert.True(t, s.HasCustomerColumns)
	assert.False(t, s.HasProductColumns)
	assert.False(t, s.HasRegionColumns)
}

func TestProbeIndexes(t *testing.T) {
	table := tabular.New([]string{"Channel", "OrderNumber"})

	s := Probe(table)

	assert.Equal(t, 1, s.Index(domain.ColOrderNumber))
	assert.Equal(t, 0, s.Index(domain.ColChannel))
	assert.Equal(t, -1, s.Index(domain.ColCity))
}

func TestProbeColumnsAllowListOrder(t *testing.T) {
	// Source order differs from canonical order.
	table := tabular.New([]string{"Unit Cost", "Channel", "OrderNumber"})

	s := Probe(table)

	assert.Equal(t, []domain.Column{
		domain.ColOrderNumber, domain.ColChannel, domain.ColUnitCost,
	}, s.Columns())
}

func TestProbeEmptySchema(t *testing.T) {
	table := tabular.New([]string{"Alpha", "Beta"})

	s := Probe(table)

	assert.Empty(t, s.Columns())
	assert.Empty(t, s.DateColumns)
	assert.False(t, s.HasCustomerColumns)
}
