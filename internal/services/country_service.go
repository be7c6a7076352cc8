package services

import (
	"context"

	"github.com/tbourn/go-fault-demo/internal/domain"
	"github.com/tbourn/go-fault-demo/internal/external"
)

// CountryFetcher is the outbound client contract used by CountryService.
type CountryFetcher interface {
	FetchCountry(ctx context.Context, path string) (*domain.Country, error)
}

// CountryService issues the three fixed country lookups.
type CountryService struct {
	Client CountryFetcher
}

// NewCountryService constructs a CountryService.
func NewCountryService(c CountryFetcher) *CountryService {
	return &CountryService{Client: c}
}

// Existing fetches a country that is known to exist.
func (s *CountryService) Existing(ctx context.Context) (*domain.Country, error) {
	return s.fetch(ctx, external.PathExisting)
}

// Missing fetches a country that does not exist.
func (s *CountryService) Missing(ctx context.Context) (*domain.Country, error) {
	return s.fetch(ctx, external.PathMissing)
}

// Malformed issues a request the upstream rejects as malformed.
func (s *CountryService) Malformed(ctx context.Context) (*domain.Country, error) {
	return s.fetch(ctx, external.PathMalformed)
}

func (s *CountryService) fetch(ctx context.Context, path string) (*domain.Country, error) {
	if s.Client == nil {
		return nil, ErrNotConfigured
	}
	return s.Client.FetchCountry(ctx, path)
}
