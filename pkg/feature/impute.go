package feature

import (
	"fmt"
	"math"

	"github.com/quantrail/lagfeat/pkg/model"
)

// FillStrategy resolves null values in a derived table.
// Apply always returns a new table; the input is never mutated, so several
// strategies can be demonstrated against the same source.
type FillStrategy interface {
	Name() string
	Apply(t *model.LagTable) *model.LagTable
}

// Backfill replaces each null with the nearest following non-null value in
// the same column, scanning in record order.
//
// Scanning is not group-aware: the first observation of one group may be
// filled with a value from the next row even when that row belongs to a
// different (store, product) pair. That mirrors a plain column-wise bfill
// and is a known caveat of the strategy, not a correctness guarantee.
type Backfill struct{}

// Name returns the strategy name
func (Backfill) Name() string { return "backfill" }

// Apply fills nulls from the next valid observation
func (Backfill) Apply(t *model.LagTable) *model.LagTable {
	out := t.Copy()
	bfillColumn(out.Lag)

	sold := make([]float64, len(out.Records))
	for i := range out.Records {
		sold[i] = out.Records[i].NumberSold
	}
	bfillColumn(sold)
	for i := range out.Records {
		out.Records[i].NumberSold = sold[i]
	}

	return out
}

// bfillColumn carries the next non-NaN value backwards through the column.
// Trailing NaNs stay NaN when no later value exists.
func bfillColumn(col []float64) {
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
}

// ConstantFill replaces every null with a fixed sentinel value
type ConstantFill struct {
	Value float64
}

// Name returns the strategy name
func (c ConstantFill) Name() string { return fmt.Sprintf("constant_%g", c.Value) }

// Apply fills every null with the sentinel
func (c ConstantFill) Apply(t *model.LagTable) *model.LagTable {
	out := t.Copy()
	for i := range out.Lag {
		if math.IsNaN(out.Lag[i]) {
			out.Lag[i] = c.Value
		}
		if !out.Records[i].HasValue() {
			out.Records[i].NumberSold = c.Value
		}
	}
	return out
}

// DropNull removes any row containing a null in any column.
// Remaining rows keep their relative order.
type DropNull struct{}

// Name returns the strategy name
func (DropNull) Name() string { return "dropna" }

// Apply removes rows containing nulls
func (DropNull) Apply(t *model.LagTable) *model.LagTable {
	out := &model.LagTable{
		Records: make([]model.SaleRecord, 0, t.Len()),
		Lag:     make([]float64, 0, t.Len()),
		LagName: t.LagName,
	}
	for i := range t.Records {
		if t.IsNull(i) {
			continue
		}
		out.Records = append(out.Records, t.Records[i])
		out.Lag = append(out.Lag, t.Lag[i])
	}
	return out
}
