package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quantrail/lagfeat/pkg/model"
)

// LagRepo computes and persists derived lag tables.
// ComputeLag runs the shift inside DuckDB as a window function, which the
// demo uses as a cross-check against the in-memory path.
type LagRepo struct {
	client *Client
}

// NewLagRepo creates a new lag-feature repository
func NewLagRepo(client *Client) *LagRepo {
	return &LagRepo{client: client}
}

// ComputeLag derives the lag column over the sales table via
// LAG(number_sold, offset) partitioned by (store, product) and ordered by
// date. Rows come back ordered by date, store, product.
func (r *LagRepo) ComputeLag(ctx context.Context, offset int) (*model.LagTable, error) {
	if offset < 1 {
		return nil, fmt.Errorf("lag offset must be >= 1, got %d", offset)
	}

	// LAG takes a literal offset, not a bind parameter
	query := strings.ReplaceAll(`
		SELECT date, store, product, number_sold,
		       LAG(number_sold, $OFFSET) OVER (PARTITION BY store, product ORDER BY date) AS lag_value
		FROM sales
		ORDER BY date, store, product
	`, "$OFFSET", strconv.Itoa(offset))

	rows, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute lag: %w", err)
	}
	defer rows.Close()

	table := &model.LagTable{
		LagName: fmt.Sprintf("lag_%d", offset),
	}
	for rows.Next() {
		var rec model.SaleRecord
		var sold, lag sql.NullFloat64

		if err := rows.Scan(&rec.Date, &rec.Store, &rec.Product, &sold, &lag); err != nil {
			return nil, fmt.Errorf("failed to scan lag row: %w", err)
		}

		rec.NumberSold = math.NaN()
		if sold.Valid {
			rec.NumberSold = sold.Float64
		}

		table.Records = append(table.Records, rec)
		table.Lag = append(table.Lag, math.NaN())
		if lag.Valid {
			table.Lag[len(table.Lag)-1] = lag.Float64
		}
	}

	return table, rows.Err()
}

// InsertBatch persists a derived table under a strategy tag
func (r *LagRepo) InsertBatch(ctx context.Context, strategy string, offset int, table *model.LagTable) error {
	tx, err := r.client.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO lag_features (strategy, date, store, product, number_sold, lag_value, lag_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (strategy, date, store, product) DO UPDATE SET
			number_sold = EXCLUDED.number_sold,
			lag_value = EXCLUDED.lag_value,
			lag_offset = EXCLUDED.lag_offset
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range table.Records {
		_, err := stmt.Exec(
			strategy, rec.Date, rec.Store, rec.Product,
			nullable(rec.NumberSold), nullable(table.Lag[i]), offset,
		)
		if err != nil {
			return fmt.Errorf("failed to insert lag row: %w", err)
		}
	}

	return tx.Commit()
}

// CountNulls returns the number of persisted rows for a strategy that still
// contain a NULL in either value column
func (r *LagRepo) CountNulls(ctx context.Context, strategy string) (int64, error) {
	var count int64
	row := r.client.QueryRow(
		"SELECT COUNT(*) FROM lag_features WHERE strategy = ? AND (number_sold IS NULL OR lag_value IS NULL)",
		strategy,
	)
	err := row.Scan(&count)
	return count, err
}
