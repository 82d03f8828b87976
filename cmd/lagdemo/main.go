package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/quantrail/lagfeat/pkg/data"
	"github.com/quantrail/lagfeat/pkg/feature"
	"github.com/quantrail/lagfeat/pkg/frame"
	"github.com/quantrail/lagfeat/pkg/model"
	"github.com/quantrail/lagfeat/pkg/store/duckdb"
)

// lagOffset is fixed at one time step; the walkthrough demonstrates a
// single lag feature, not a configurable window.
const lagOffset = 1

// Config holds demo configuration
type Config struct {
	CSVPath    string
	DuckDBPath string // empty disables the store
	FillValue  float64
	HeadRows   int
}

func main() {
	cfg := parseFlags()

	ctx := context.Background()

	// Load data
	log.Printf("Loading sales records from %s...", cfg.CSVPath)
	provider := data.NewCSVProvider(cfg.CSVPath)
	records, err := provider.FetchRecords(ctx, "", "")
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	log.Printf("Loaded %d records", len(records))

	// Compute the lag column per (store, product) group
	lagger := feature.NewLagger(lagOffset)
	table, err := lagger.Lag(records)
	if err != nil {
		log.Fatalf("Failed to compute lag: %v", err)
	}
	log.Printf("Computed %s: %d rows, %d with nulls", table.LagName, table.Len(), table.NullCount())
	fmt.Println(frame.Head(table, cfg.HeadRows))

	// Each strategy derives its own table from the same source
	strategies := []feature.FillStrategy{
		feature.Backfill{},
		feature.ConstantFill{Value: cfg.FillValue},
		feature.DropNull{},
	}

	derived := make(map[string]*model.LagTable, len(strategies))
	for _, s := range strategies {
		out := s.Apply(table)
		derived[s.Name()] = out
		log.Printf("Strategy %s: %d rows, %d with nulls", s.Name(), out.Len(), out.NullCount())
		fmt.Println(frame.Head(out, cfg.HeadRows))
	}

	if cfg.DuckDBPath == "" {
		log.Println("Done (no -duckdb path given, skipping the store)")
		return
	}

	// Persist and cross-check the shift in SQL
	log.Printf("Connecting to DuckDB at %s...", cfg.DuckDBPath)
	client, err := duckdb.NewClient(cfg.DuckDBPath)
	if err != nil {
		log.Fatalf("Failed to connect to DuckDB: %v", err)
	}
	defer client.Close()

	if err := duckdb.InitializeSchema(client); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	salesRepo := duckdb.NewSalesRepo(client)
	lagRepo := duckdb.NewLagRepo(client)

	log.Println("Storing sales records...")
	if err := salesRepo.InsertBatch(ctx, records); err != nil {
		log.Fatalf("Failed to insert sales records: %v", err)
	}

	sqlTable, err := lagRepo.ComputeLag(ctx, lagOffset)
	if err != nil {
		log.Fatalf("Failed to compute lag in SQL: %v", err)
	}
	if mismatches := compareTables(table, sqlTable); mismatches > 0 {
		log.Fatalf("SQL cross-check failed: %d mismatched rows", mismatches)
	}
	log.Printf("SQL cross-check passed (%d rows)", sqlTable.Len())

	if err := lagRepo.InsertBatch(ctx, "raw", lagOffset, table); err != nil {
		log.Fatalf("Failed to persist raw lag table: %v", err)
	}
	for name, out := range derived {
		if err := lagRepo.InsertBatch(ctx, name, lagOffset, out); err != nil {
			log.Fatalf("Failed to persist %s table: %v", name, err)
		}
	}

	log.Println("Demo completed successfully!")
	log.Printf("Summary: %d records → %s + %d derived tables", len(records), table.LagName, len(derived))
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.CSVPath, "csv", "", "Path to CSV file with sales data")
	flag.StringVar(&cfg.DuckDBPath, "duckdb", "", "DuckDB file path (empty to skip persistence)")
	flag.Float64Var(&cfg.FillValue, "fill", 0, "Sentinel value for the constant-fill strategy")
	flag.IntVar(&cfg.HeadRows, "head", 10, "Number of rows to display per table")

	flag.Parse()

	if cfg.CSVPath == "" {
		fmt.Println("Usage: lagdemo -csv <path> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	return cfg
}

// compareTables counts rows whose lag value differs between the in-memory
// and SQL tables. Row order differs between the two, so rows are matched
// by (date, store, product).
func compareTables(mem, sql *model.LagTable) int {
	type rowKey struct {
		date    string
		store   string
		product string
	}

	lags := make(map[rowKey]float64, mem.Len())
	for i, r := range mem.Records {
		lags[rowKey{r.Date.Format(model.DateLayout), r.Store, r.Product}] = mem.Lag[i]
	}

	mismatches := 0
	if mem.Len() != sql.Len() {
		mismatches = int(math.Abs(float64(mem.Len() - sql.Len())))
	}
	for i, r := range sql.Records {
		want, ok := lags[rowKey{r.Date.Format(model.DateLayout), r.Store, r.Product}]
		if !ok {
			mismatches++
			continue
		}
		got := sql.Lag[i]
		if math.IsNaN(want) && math.IsNaN(got) {
			continue
		}
		if want != got {
			mismatches++
		}
	}

	return mismatches
}
