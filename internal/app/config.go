package service

import (
	"context"
	"fmt"

	"github.com/okian/setterboard/internal/adapters/repository"
	"github.com/okian/setterboard/internal/adapters/source"
	"github.com/okian/setterboard/internal/config"
	"github.com/okian/setterboard/internal/domain/dedupe"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
)

// FromConfig builds a Service from cfg. Offers live in a sqlite file when
// cfg.StorePath is set and in memory otherwise.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	defaultRange, err := window.ParseRange(cfg.DefaultRange)
	if err != nil {
		return nil, fmt.Errorf("%w: default_range: %w", config.ErrInvalidConfig, err)
	}

	var store repository.Store = repository.NewMemoryStore()
	if cfg.StorePath != "" {
		sqlite, err := repository.NewSQLiteStore(ctx, cfg.StorePath)
		if err != nil {
			return nil, err
		}
		store = sqlite
		log.Info(ctx, "using sqlite offer store", logger.String("path", cfg.StorePath))
	}

	client := source.New(
		source.WithBaseURL(cfg.SourceBaseURL),
		source.WithTimeout(cfg.SourceTimeout()),
		source.WithMaxPages(cfg.SourceMaxPages),
		source.WithLogger(log.Named("source")),
	)

	return New(
		WithLogger(log),
		WithStore(store),
		WithSource(client),
		WithLocation(loc),
		WithDefaultRange(defaultRange),
		WithFieldMap(cfg.FieldMap),
		WithDemoSeed(cfg.DemoSeed),
		WithClusterOptions(
			dedupe.WithShortNameLength(cfg.ShortNameLength),
			dedupe.WithMaxDistance(cfg.ShortNameMaxDistance, cfg.LongNameMaxDistance),
		),
	), nil
}
