package feature

import (
	"fmt"
	"sort"

	"github.com/quantrail/lagfeat/pkg/model"
)

// Lagger computes a lag column over grouped sales records
type Lagger struct {
	Offset int // number of time steps to shift by
}

// NewLagger creates a lagger with the given offset
func NewLagger(offset int) *Lagger {
	return &Lagger{Offset: offset}
}

// Lag produces a derived table whose lag column holds, for each record,
// the number_sold value of the record Offset positions earlier within the
// same (store, product) group, ordered by date. The first Offset records
// of each group have no predecessor and stay null.
//
// The output keeps the input row order: the lag column is aligned
// positionally, so records are never reordered or mixed across groups.
func (l *Lagger) Lag(records []model.SaleRecord) (*model.LagTable, error) {
	if l.Offset < 1 {
		return nil, fmt.Errorf("lag offset must be >= 1, got %d", l.Offset)
	}

	table := model.NewLagTable(records, l.Offset)

	// Partition row indices by group key, keeping encounter order
	groups := make(map[model.GroupKey][]int)
	var keys []model.GroupKey
	for i := range records {
		k := records[i].Key()
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}

	for _, k := range keys {
		idx := groups[k]

		// Order each partition by date; stable so equal dates keep source order
		sort.SliceStable(idx, func(a, b int) bool {
			return records[idx[a]].Date.Before(records[idx[b]].Date)
		})

		// Groups shorter than the offset keep an all-null lag column
		for i := l.Offset; i < len(idx); i++ {
			table.Lag[idx[i]] = records[idx[i-l.Offset]].NumberSold
		}
	}

	return table, nil
}
