// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/setterboard/internal/adapters/repository"
	"github.com/okian/setterboard/internal/adapters/source"
	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/dedupe"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
	"github.com/okian/setterboard/pkg/metrics"
)

const defaultDemoSeed = 42

// Source reads the raw rows of one offer's table.
type Source interface {
	Fetch(ctx context.Context, req source.Request) ([]model.RawRow, error)
}

// Service hosts offers and computes dashboard reports for them.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	store     repository.Store
	source    Source
	demo      *demo.Generator
	clusterer *dedupe.Clusterer

	// Configuration
	fields       model.FieldMap
	defaultRange window.Range
	location     *time.Location
	now          func() time.Time

	// State
	started      bool
	reports      atomic.Int64
	lastReportAt atomic.Int64

	logger logger.Logger
}

// New constructs a new Service with default configuration. Offers are kept
// in memory unless WithStore is given.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewMemoryStore(),
		source:       source.New(),
		demo:         demo.NewGenerator(defaultDemoSeed),
		clusterer:    dedupe.New(),
		fields:       model.DefaultFieldMap(),
		defaultRange: window.AllTime,
		location:     time.Local,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Start marks the service ready and publishes the stored offer count.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	offers := s.store.Count(ctx)
	metrics.UpdateOfferCount(offers)

	s.started = true
	s.logger.Info(ctx, "setterboard service started",
		logger.Int("offers", offers),
		logger.String("timezone", s.location.String()),
		logger.String("defaultRange", string(s.defaultRange)),
	)

	return nil
}

// Stop closes the offer store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping setterboard service...")

	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing offer store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "setterboard service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"timezone":     s.location.String(),
		"defaultRange": string(s.defaultRange),
		"reports":      s.reports.Load(),
	}

	if last := s.lastReportAt.Load(); last > 0 {
		stats["lastReportAt"] = time.UnixMilli(last).In(s.location).Format(time.RFC3339)
	}

	if s.started {
		offers := s.store.Count(context.Background())
		stats["offers"] = offers
		metrics.UpdateOfferCount(offers)
	}

	return stats
}

// clock returns the current time in the service location.
func (s *Service) clock() time.Time {
	return s.now().In(s.location)
}
