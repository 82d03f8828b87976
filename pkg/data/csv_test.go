package data

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVProviderLoads(t *testing.T) {
	p := NewCSVProvider("testdata/sales.csv")

	records, err := p.FetchRecords(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "1", first.Store)
	assert.Equal(t, "A", first.Product)
	assert.Equal(t, 10.0, first.NumberSold)

	// Missing number_sold loads as NaN, not an error
	assert.True(t, math.IsNaN(records[3].NumberSold))
	assert.Equal(t, "B", records[3].Product)
}

func TestCSVProviderFilters(t *testing.T) {
	p := NewCSVProvider("testdata/sales.csv")
	ctx := context.Background()

	byStore, err := p.FetchRecords(ctx, "2", "")
	require.NoError(t, err)
	require.Len(t, byStore, 1)
	assert.Equal(t, "A", byStore[0].Product)

	byBoth, err := p.FetchRecords(ctx, "1", "B")
	require.NoError(t, err)
	assert.Len(t, byBoth, 2)
}

func TestCSVProviderMissingFile(t *testing.T) {
	p := NewCSVProvider("testdata/does-not-exist.csv")
	_, err := p.FetchRecords(context.Background(), "", "")
	assert.Error(t, err)
}

func TestCSVProviderMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "Date,store,number_sold\n2022-01-01,1,10\n")

	p := NewCSVProvider(path)
	_, err := p.FetchRecords(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product")
}

func TestCSVProviderUnparseableDate(t *testing.T) {
	path := writeTempCSV(t, "Date,store,product,number_sold\n01/02/2022,1,A,10\n")

	p := NewCSVProvider(path)
	_, err := p.FetchRecords(context.Background(), "", "")
	assert.Error(t, err)
}

func TestMemoryProvider(t *testing.T) {
	p := NewMemoryProvider(nil)

	records, err := NewCSVProvider("testdata/sales.csv").FetchRecords(context.Background(), "", "")
	require.NoError(t, err)
	p.AddRecords(records)

	got, err := p.FetchRecords(context.Background(), "1", "A")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
