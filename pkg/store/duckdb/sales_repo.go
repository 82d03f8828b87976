package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/quantrail/lagfeat/pkg/model"
)

// SalesRepo handles sales record persistence
type SalesRepo struct {
	client *Client
}

// NewSalesRepo creates a new sales repository
func NewSalesRepo(client *Client) *SalesRepo {
	return &SalesRepo{client: client}
}

// Insert inserts a single sales record
func (r *SalesRepo) Insert(ctx context.Context, rec *model.SaleRecord) error {
	query := `
		INSERT INTO sales (date, store, product, number_sold)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date, store, product) DO UPDATE SET
			number_sold = EXCLUDED.number_sold
	`
	return r.client.Exec(query, rec.Date, rec.Store, rec.Product, nullable(rec.NumberSold))
}

// InsertBatch inserts multiple records in a transaction
func (r *SalesRepo) InsertBatch(ctx context.Context, records []model.SaleRecord) error {
	tx, err := r.client.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sales (date, store, product, number_sold)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date, store, product) DO UPDATE SET
			number_sold = EXCLUDED.number_sold
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.Date, rec.Store, rec.Product, nullable(rec.NumberSold)); err != nil {
			return fmt.Errorf("failed to insert sale record: %w", err)
		}
	}

	return tx.Commit()
}

// GetAll retrieves all records ordered by date, store, product
func (r *SalesRepo) GetAll(ctx context.Context) ([]model.SaleRecord, error) {
	query := `
		SELECT date, store, product, number_sold
		FROM sales
		ORDER BY date, store, product
	`

	rows, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var records []model.SaleRecord
	for rows.Next() {
		var rec model.SaleRecord
		var sold sql.NullFloat64

		if err := rows.Scan(&rec.Date, &rec.Store, &rec.Product, &sold); err != nil {
			return nil, fmt.Errorf("failed to scan sale record: %w", err)
		}

		rec.NumberSold = math.NaN()
		if sold.Valid {
			rec.NumberSold = sold.Float64
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the total number of sales records
func (r *SalesRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.client.QueryRow("SELECT COUNT(*) FROM sales")
	err := row.Scan(&count)
	return count, err
}

// nullable maps NaN to a SQL NULL
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
