package dataprocessing

import (
	"strings"

	"salesdash/internal/tabular"
	"salesdash/pkg/contracts/domain"
)

// Schema is the immutable capability set probed once from a cleaned table.
// All derivation logic dispatches off this probe instead of re-checking
// column presence throughout the pipeline.
type Schema struct {
	columns map[domain.Column]int

	// DateColumns are the raw column names containing "date",
	// in table order.
	DateColumns []string

	HasQuantity  bool
	HasUnitPrice bool
	HasUnitCost  bool

	// Fallback dimension capabilities of the fact source.
	HasCustomerColumns bool
	HasProductColumns  bool
	HasRegionColumns   bool
}

// Probe inspects a cleaned table and records its capabilities.
func Probe(table *tabular.Table) *Schema {
	s := &Schema{columns: make(map[domain.Column]int)}

	for _, col := range domain.FactAllowList {
		if idx := table.ColumnIndex(string(col)); idx >= 0 {
			s.columns[col] = idx
		}
	}

	for _, name := range table.Columns {
		if strings.Contains(strings.ToLower(name), "date") {
			s.DateColumns = append(s.DateColumns, name)
		}
	}

	s.HasQuantity = s.Has(domain.ColOrderQuantity)
	s.HasUnitPrice = s.Has(domain.ColUnitSellingPrice)
	s.HasUnitCost = s.Has(domain.ColUnitCost)

	s.HasCustomerColumns = s.Has(domain.ColCustomerName) || s.Has(domain.ColCustomerIndex)
	s.HasProductColumns = s.Has(domain.ColProductDescription)
	s.HasRegionColumns = s.Has(domain.ColDeliveryRegionIndex) || s.Has(domain.ColCity)

	return s
}

// Has reports whether the probed table carries the canonical column.
func (s *Schema) Has(col domain.Column) bool {
	_, ok := s.columns[col]
	return ok
}

// Index returns the table index of a canonical column, or -1.
func (s *Schema) Index(col domain.Column) int {
	if idx, ok := s.columns[col]; ok {
		return idx
	}
	return -1
}

// Columns returns the canonical fact columns present, in allow-list order.
func (s *Schema) Columns() []domain.Column {
	var out []domain.Column
	for _, col := range domain.FactAllowList {
		if s.Has(col) {
			out = append(out, col)
		}
	}
	return out
}
