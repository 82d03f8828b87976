package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/lagfeat/pkg/model"
)

// lagTableFixture builds the worked example: two interleaved groups, so
// the raw lag table has a null at rows 0 and 1.
func lagTableFixture(t *testing.T) *model.LagTable {
	t.Helper()
	records := []model.SaleRecord{
		rec(1, "1", "A", 10),
		rec(1, "1", "B", 100),
		rec(2, "1", "A", 12),
		rec(2, "1", "B", 110),
		rec(3, "1", "A", 9),
		rec(3, "1", "B", 95),
	}
	table, err := NewLagger(1).Lag(records)
	require.NoError(t, err)
	require.Equal(t, 2, table.NullCount())
	return table
}

func TestBackfill(t *testing.T) {
	table := lagTableFixture(t)
	out := Backfill{}.Apply(table)

	// The nearest following non-null in record order is row 2's lag (10),
	// regardless of group membership.
	assert.Equal(t, 10.0, out.Lag[0])
	assert.Equal(t, 10.0, out.Lag[1])
	assert.Equal(t, 0, out.NullCount())
	assert.Equal(t, table.Len(), out.Len())

	// Source stays untouched
	assert.True(t, math.IsNaN(table.Lag[0]))
}

func TestBackfillTrailingNullStays(t *testing.T) {
	records := []model.SaleRecord{
		rec(1, "1", "A", 10),
	}
	table, err := NewLagger(1).Lag(records)
	require.NoError(t, err)

	out := Backfill{}.Apply(table)
	assert.True(t, math.IsNaN(out.Lag[0]), "no following value to fill from")
}

func TestConstantFill(t *testing.T) {
	table := lagTableFixture(t)
	out := ConstantFill{Value: 0}.Apply(table)

	assert.Equal(t, 0.0, out.Lag[0])
	assert.Equal(t, 0.0, out.Lag[1])
	assert.Equal(t, 0, out.NullCount(), "constant fill never leaves a null")
	assert.Equal(t, table.Len(), out.Len())
	assert.True(t, math.IsNaN(table.Lag[0]), "source stays untouched")
}

func TestConstantFillAppliesToMissingObservations(t *testing.T) {
	records := []model.SaleRecord{
		rec(1, "1", "A", 10),
		rec(2, "1", "A", math.NaN()),
		rec(3, "1", "A", 9),
	}
	table, err := NewLagger(1).Lag(records)
	require.NoError(t, err)

	out := ConstantFill{Value: -1}.Apply(table)
	assert.Equal(t, -1.0, out.Records[1].NumberSold)
	assert.Equal(t, 0, out.NullCount())
}

func TestDropNull(t *testing.T) {
	table := lagTableFixture(t)
	out := DropNull{}.Apply(table)

	assert.Equal(t, table.Len()-table.NullCount(), out.Len())
	assert.Equal(t, 0, out.NullCount())

	// Remaining rows keep their relative order
	require.Equal(t, 4, out.Len())
	assert.Equal(t, day(2), out.Records[0].Date)
	assert.Equal(t, "A", out.Records[0].Product)
	assert.Equal(t, 10.0, out.Lag[0])
	assert.Equal(t, day(3), out.Records[3].Date)
	assert.Equal(t, "B", out.Records[3].Product)
}

func TestStrategiesAreIdempotent(t *testing.T) {
	table := lagTableFixture(t)

	for _, s := range []FillStrategy{Backfill{}, ConstantFill{Value: 0}, DropNull{}} {
		t.Run(s.Name(), func(t *testing.T) {
			once := s.Apply(table)
			twice := s.Apply(once)

			require.Equal(t, once.Len(), twice.Len())
			for i := range once.Lag {
				if math.IsNaN(once.Lag[i]) {
					assert.True(t, math.IsNaN(twice.Lag[i]), "row %d", i)
					continue
				}
				assert.Equal(t, once.Lag[i], twice.Lag[i], "row %d", i)
			}
		})
	}
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "backfill", Backfill{}.Name())
	assert.Equal(t, "constant_0", ConstantFill{Value: 0}.Name())
	assert.Equal(t, "constant_-1", ConstantFill{Value: -1}.Name())
	assert.Equal(t, "dropna", DropNull{}.Name())
}
