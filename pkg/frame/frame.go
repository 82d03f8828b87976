// Package frame bridges derived tables and gota dataframes for inline
// display and CSV export.
package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/quantrail/lagfeat/pkg/data"
	"github.com/quantrail/lagfeat/pkg/model"
)

// ToDataFrame builds a gota dataframe view of a derived table.
// Dates render in the source layout; nulls render as NaN.
func ToDataFrame(t *model.LagTable) dataframe.DataFrame {
	n := t.Len()
	dates := make([]string, n)
	stores := make([]string, n)
	products := make([]string, n)
	sold := make([]float64, n)

	for i, r := range t.Records {
		dates[i] = r.Date.Format(model.DateLayout)
		stores[i] = r.Store
		products[i] = r.Product
		sold[i] = r.NumberSold
	}

	return dataframe.New(
		series.New(dates, series.String, data.ColDate),
		series.New(stores, series.String, data.ColStore),
		series.New(products, series.String, data.ColProduct),
		series.New(sold, series.Float, data.ColNumberSold),
		series.New(t.Lag, series.Float, t.LagName),
	)
}

// Head returns a dataframe view of the first n rows
func Head(t *model.LagTable, n int) dataframe.DataFrame {
	if n > t.Len() {
		n = t.Len()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return ToDataFrame(t).Subset(idx)
}

// WriteCSV exports a derived table as CSV. Null values are written as
// empty fields and floats use the shortest exact representation, so the
// output is deterministic.
func WriteCSV(t *model.LagTable, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{data.ColDate, data.ColStore, data.ColProduct, data.ColNumberSold, t.LagName}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, r := range t.Records {
		row := []string{
			r.Date.Format(model.DateLayout),
			r.Store,
			r.Product,
			formatFloat(r.NumberSold),
			formatFloat(t.Lag[i]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
