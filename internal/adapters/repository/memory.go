package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/okian/setterboard/internal/domain/model"
)

// MemoryStore keeps offers in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	offers map[string]model.Offer
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{offers: make(map[string]model.Offer)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.offers[id]
	if !ok {
		return model.Offer{}, ErrNotFound
	}
	return o, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]model.Offer, error) {
	s.mu.RLock()
	out := make([]model.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		out = append(out, o)
	}
	s.mu.RUnlock()

	sortOffers(out)
	return out, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, offer model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = offer
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[id]; !ok {
		return ErrNotFound
	}
	delete(s.offers, id)
	return nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.offers)
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

func sortOffers(offers []model.Offer) {
	sort.Slice(offers, func(i, j int) bool {
		a, b := strings.ToLower(offers[i].Name), strings.ToLower(offers[j].Name)
		if a != b {
			return a < b
		}
		return offers[i].ID < offers[j].ID
	})
}
