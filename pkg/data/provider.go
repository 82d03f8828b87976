package data

import (
	"context"

	"github.com/quantrail/lagfeat/pkg/model"
)

// SalesProvider defines the interface for fetching sales records
type SalesProvider interface {
	// FetchRecords retrieves sales records, optionally filtered by store
	// and/or product (empty string means no filter).
	// Records are returned in source order.
	FetchRecords(ctx context.Context, store, product string) ([]model.SaleRecord, error)
}

// MemoryProvider implements SalesProvider with in-memory storage
type MemoryProvider struct {
	records []model.SaleRecord
}

// NewMemoryProvider creates a new in-memory sales provider
func NewMemoryProvider(records []model.SaleRecord) *MemoryProvider {
	return &MemoryProvider{
		records: records,
	}
}

// AddRecords adds records to the provider
func (p *MemoryProvider) AddRecords(records []model.SaleRecord) {
	p.records = append(p.records, records...)
}

// FetchRecords retrieves records matching the optional store/product filters
func (p *MemoryProvider) FetchRecords(ctx context.Context, store, product string) ([]model.SaleRecord, error) {
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
