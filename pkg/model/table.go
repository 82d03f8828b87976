package model

import (
	"fmt"
	"math"
)

// LagTable is a derived table: the source records plus one lag column.
// Lag is aligned positionally with Records; NaN marks an undefined value
// (the first observations of each group have no predecessor to shift from).
type LagTable struct {
	Records []SaleRecord `json:"records"`
	Lag     []float64    `json:"lag"`
	LagName string       `json:"lag_name"` // e.g. "lag_1"
}

// NewLagTable creates a LagTable with an all-null lag column
func NewLagTable(records []SaleRecord, offset int) *LagTable {
	lag := make([]float64, len(records))
	for i := range lag {
		lag[i] = math.NaN()
	}
	return &LagTable{
		Records: records,
		Lag:     lag,
		LagName: fmt.Sprintf("lag_%d", offset),
	}
}

// Len returns the number of rows
func (t *LagTable) Len() int {
	return len(t.Records)
}

// IsNull reports whether row i contains a null in any column
func (t *LagTable) IsNull(i int) bool {
	return math.IsNaN(t.Lag[i]) || !t.Records[i].HasValue()
}

// NullCount returns the number of rows containing at least one null
func (t *LagTable) NullCount() int {
	n := 0
	for i := range t.Records {
		if t.IsNull(i) {
			n++
		}
	}
	return n
}

// HasNulls reports whether any row contains a null
func (t *LagTable) HasNulls() bool {
	return t.NullCount() > 0
}

// Copy creates a deep copy of the table
// Fill strategies operate on copies so the source table is never mutated
func (t *LagTable) Copy() *LagTable {
	records := make([]SaleRecord, len(t.Records))
	copy(records, t.Records)
	lag := make([]float64, len(t.Lag))
	copy(lag, t.Lag)
	return &LagTable{
		Records: records,
		Lag:     lag,
		LagName: t.LagName,
	}
}
