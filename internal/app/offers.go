package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/setterboard/internal/adapters/source"
	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/pkg/logger"
	"github.com/okian/setterboard/pkg/metrics"
)

// SaveOffer cleans and validates o, then inserts or replaces it. An empty id
// gets a fresh UUID and an entirely empty mapping gets the configured one.
func (s *Service) SaveOffer(ctx context.Context, o model.Offer) (model.Offer, error) {
	o.ID = source.CleanInput(o.ID)
	o.Name = source.CleanInput(o.Name)
	o.APIKey = source.CleanInput(o.APIKey)
	o.BaseID = source.CleanBaseID(o.BaseID)
	o.TableName = source.CleanInput(o.TableName)

	switch {
	case o.Name == "":
		return model.Offer{}, fmt.Errorf("%w: name is required", ErrInvalidOffer)
	case o.APIKey == "":
		return model.Offer{}, fmt.Errorf("%w: api key is required", ErrInvalidOffer)
	case o.BaseID == "":
		return model.Offer{}, fmt.Errorf("%w: base id is required", ErrInvalidOffer)
	}

	if o.TableName == "" {
		o.TableName = model.DefaultTableName
	}
	if o.Mapping.IsZero() {
		o.Mapping = s.fields
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	if err := s.store.Put(ctx, o); err != nil {
		metrics.RecordErrorByComponent("store", "put")
		return model.Offer{}, fmt.Errorf("saving offer %s: %w", o.ID, err)
	}
	metrics.UpdateOfferCount(s.store.Count(ctx))

	s.logger.Debug(ctx, "offer saved",
		logger.String("offer", o.ID),
		logger.String("name", o.Name),
		logger.String("table", o.TableName))

	return o, nil
}

// GetOffer returns the stored offer with id, or ErrNotFound.
func (s *Service) GetOffer(ctx context.Context, id string) (model.Offer, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Offer{}, fmt.Errorf("loading offer %s: %w", id, err)
	}
	return o, nil
}

// ListOffers returns every stored offer ordered by name.
func (s *Service) ListOffers(ctx context.Context) ([]model.Offer, error) {
	offers, err := s.store.List(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("store", "list")
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	return offers, nil
}

// DeleteOffer removes the offer with id, or returns ErrNotFound.
func (s *Service) DeleteOffer(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting offer %s: %w", id, err)
	}
	metrics.UpdateOfferCount(s.store.Count(ctx))
	s.logger.Debug(ctx, "offer deleted", logger.String("offer", id))
	return nil
}

// LoadDemo stores the demo offer, replacing any earlier copy.
func (s *Service) LoadDemo(ctx context.Context) (model.Offer, error) {
	o := demo.Offer()
	if err := s.store.Put(ctx, o); err != nil {
		metrics.RecordErrorByComponent("store", "put")
		return model.Offer{}, fmt.Errorf("saving demo offer: %w", err)
	}
	metrics.UpdateOfferCount(s.store.Count(ctx))
	s.logger.Info(ctx, "demo offer loaded", logger.String("generator", s.demo.String()))
	return o, nil
}
