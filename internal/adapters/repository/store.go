// Package repository persists offers: named record sources and their column
// mappings.
package repository

import (
	"context"

	"github.com/okian/setterboard/internal/domain/model"
)

// Store provides read/write access to configured offers.
type Store interface {
	// Get returns the offer with id, or ErrNotFound.
	Get(ctx context.Context, id string) (model.Offer, error)

	// List returns every offer ordered by name, then id.
	List(ctx context.Context) ([]model.Offer, error)

	// Put inserts or replaces the offer keyed by its ID.
	Put(ctx context.Context, offer model.Offer) error

	// Delete removes the offer with id. Returns ErrNotFound if it is unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored offers.
	Count(ctx context.Context) int

	// Close releases resources held by the store.
	Close() error
}
