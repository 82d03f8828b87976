package data

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/quantrail/lagfeat/pkg/model"
)

// Column names expected in the source CSV
const (
	ColDate       = "Date"
	ColStore      = "store"
	ColProduct    = "product"
	ColNumberSold = "number_sold"
)

// CSVProvider implements SalesProvider for CSV files.
// The file is parsed through a gota dataframe: Date is parsed as a date,
// store and product are typed as string (categorical) series, and
// number_sold as a float series where missing values become NaN.
type CSVProvider struct {
	filePath string
	records  []model.SaleRecord
	loaded   bool
}

// NewCSVProvider creates a new CSV-based sales provider
func NewCSVProvider(filePath string) *CSVProvider {
	return &CSVProvider{
		filePath: filePath,
		records:  make([]model.SaleRecord, 0),
		loaded:   false,
	}
}

// loadIfNeeded loads the CSV file if not already loaded
func (p *CSVProvider) loadIfNeeded() error {
	if p.loaded {
		return nil
	}

	file, err := os.Open(p.filePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColDate:       series.String,
			ColStore:      series.String,
			ColProduct:    series.String,
			ColNumberSold: series.Float,
		}),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	if df.Error() != nil {
		return fmt.Errorf("failed to read CSV: %w", df.Error())
	}

	records, err := frameToRecords(df)
	if err != nil {
		return err
	}

	p.records = records
	p.loaded = true
	return nil
}

// frameToRecords converts a typed dataframe into sales records
func frameToRecords(df dataframe.DataFrame) ([]model.SaleRecord, error) {
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, required := range []string{ColDate, ColStore, ColProduct, ColNumberSold} {
		if !names[required] {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	dates := df.Col(ColDate).Records()
	stores := df.Col(ColStore).Records()
	products := df.Col(ColProduct).Records()
	sold := df.Col(ColNumberSold).Float()

	records := make([]model.SaleRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		date, err := time.Parse(model.DateLayout, dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i, dates[i], err)
		}
		records = append(records, model.SaleRecord{
			Date:       date,
			Store:      stores[i],
			Product:    products[i],
			NumberSold: sold[i],
		})
	}

	return records, nil
}

// FetchRecords retrieves records matching the optional store/product filters
func (p *CSVProvider) FetchRecords(ctx context.Context, store, product string) ([]model.SaleRecord, error) {
	if err := p.loadIfNeeded(); err != nil {
		return nil, err
	}

	var result []model.SaleRecord
	for _, r := range p.records {
		if store != "" && r.Store != store {
			continue
		}
		if product != "" && r.Product != product {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}
