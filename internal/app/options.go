package service

import (
	"time"

	"github.com/okian/setterboard/internal/adapters/repository"
	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/dedupe"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the offer store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource sets the record source used for stored offers.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone whose calendar decides "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClusterOptions configures identity matching thresholds.
func WithClusterOptions(opts ...dedupe.Option) Option {
	return func(s *Service) {
		s.clusterer = dedupe.New(opts...)
	}
}

// WithFieldMap sets the mapping used when a request carries none.
func WithFieldMap(fm model.FieldMap) Option {
	return func(s *Service) {
		if !fm.IsZero() {
			s.fields = fm
		}
	}
}

// WithDefaultRange sets the range used when a request names none.
func WithDefaultRange(r window.Range) Option {
	return func(s *Service) {
		if r != "" {
			s.defaultRange = r
		}
	}
}

// WithDemoSeed seeds the demo data generator.
func WithDemoSeed(seed int64) Option {
	return func(s *Service) {
		s.demo = demo.NewGenerator(seed)
	}
}
