package duckdb

import "fmt"

// Schema contains table creation statements for all required tables

// CreateSalesTable creates the sales fact table
const CreateSalesTable = `
CREATE TABLE IF NOT EXISTS sales (
    date DATE NOT NULL,
    store VARCHAR NOT NULL,
    product VARCHAR NOT NULL,
    number_sold DOUBLE,
    PRIMARY KEY (date, store, product)
);
`

// CreateLagFeaturesTable creates the derived lag-feature table.
// strategy tags which null-resolution strategy produced the row
// ("raw" for the unfilled lag table).
const CreateLagFeaturesTable = `
CREATE TABLE IF NOT EXISTS lag_features (
    strategy VARCHAR NOT NULL,
    date DATE NOT NULL,
    store VARCHAR NOT NULL,
    product VARCHAR NOT NULL,
    number_sold DOUBLE,
    lag_value DOUBLE,
    lag_offset INTEGER NOT NULL,
    PRIMARY KEY (strategy, date, store, product)
);

CREATE INDEX IF NOT EXISTS idx_lag_features_strategy ON lag_features(strategy);
`

// InitializeSchema creates all required tables
func InitializeSchema(c *Client) error {
	schemas := []string{
		CreateSalesTable,
		CreateLagFeaturesTable,
	}

	for _, schema := range schemas {
		if err := c.Exec(schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with caution)
func DropAllTables(c *Client) error {
	tables := []string{"lag_features", "sales"}
	for _, table := range tables {
		if err := c.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
