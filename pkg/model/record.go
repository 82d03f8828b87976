package model

import (
	"math"
	"time"
)

// DateLayout is the layout of the Date column in the source CSV.
const DateLayout = "2006-01-02"

// SaleRecord represents a single daily sales observation
type SaleRecord struct {
	Date       time.Time `json:"date"`
	Store      string    `json:"store"`
	Product    string    `json:"product"`
	NumberSold float64   `json:"number_sold"` // NaN when the source value is missing
}

// GroupKey identifies the (store, product) partition a record belongs to.
// Shifting is done per key so lag values never cross entity boundaries.
type GroupKey struct {
	Store   string
	Product string
}

// Key returns the record's group key
func (r *SaleRecord) Key() GroupKey {
	return GroupKey{Store: r.Store, Product: r.Product}
}

// HasValue returns true if the observed quantity is present
func (r *SaleRecord) HasValue() bool {
	return !math.IsNaN(r.NumberSold)
}

// Before reports whether r was observed strictly before other
func (r *SaleRecord) Before(other *SaleRecord) bool {
	return r.Date.Before(other.Date)
}
