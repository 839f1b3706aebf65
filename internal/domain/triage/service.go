package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindcare/mindcare/internal/platform/geo"
	"github.com/mindcare/mindcare/internal/platform/geocode"
)

var (
	// ErrLocationNotFound means the searched address could not be
	// geocoded. Distinct from a successful geocode with no centers nearby.
	ErrLocationNotFound = errors.New("location not found")
	ErrCenterNotFound   = errors.New("crisis center not found")
)

type Service struct {
	centers       CenterRepository
	geocoder      geocode.Geocoder
	defaultOrigin geo.Coordinate
	defaultK      int
}

// NewService builds the triage ranker. defaultOrigin is the degraded-mode
// origin used when a caller has no usable location; defaultK bounds the
// default nearest view.
func NewService(centers CenterRepository, geocoder geocode.Geocoder, defaultOrigin geo.Coordinate, defaultK int) *Service {
	return &Service{
		centers:       centers,
		geocoder:      geocoder,
		defaultOrigin: defaultOrigin,
		defaultK:      defaultK,
	}
}

// rank orders centers by ascending distance from origin, stable on ties.
// k <= 0 means unbounded.
func rank(origin geo.Coordinate, centers []*CrisisCenter, k int) []RankedCenter {
	coords := make([]geo.Coordinate, len(centers))
	for i, c := range centers {
		coords[i] = c.Coordinate()
	}

	ordered := geo.RankByDistance(origin, coords)
	if k > 0 && k < len(ordered) {
		ordered = ordered[:k]
	}

	ranked := make([]RankedCenter, len(ordered))
	for i, r := range ordered {
		ranked[i] = RankedCenter{CrisisCenter: *centers[r.Index], DistanceKm: r.DistanceKm}
	}
	return ranked
}

// Nearest returns the top-k centers closest to origin. A nil or out-of-range
// origin falls back to the configured default origin: a caller who denied
// geolocation still gets a ranked list rather than an error.
func (s *Service) Nearest(ctx context.Context, origin *geo.Coordinate, k int) ([]RankedCenter, error) {
	from := s.defaultOrigin
	if origin != nil && origin.Valid() {
		from = *origin
	}
	if k <= 0 {
		k = s.defaultK
	}

	centers, err := s.centers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crisis centers: %w", err)
	}
	return rank(from, centers, k), nil
}

// SearchResult carries the resolved search location alongside the full
// ranked center list.
type SearchResult struct {
	Query       string         `json:"query"`
	DisplayName string         `json:"display_name"`
	Origin      geo.Coordinate `json:"origin"`
	Centers     []RankedCenter `json:"centers"`
}

// SearchByAddress geocodes a free-text address and ranks every center by
// distance from it. An address the geocoder cannot resolve yields
// ErrLocationNotFound; an empty center list after a successful geocode is a
// valid result, not an error.
func (s *Service) SearchByAddress(ctx context.Context, address string) (*SearchResult, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	loc, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	centers, err := s.centers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crisis centers: %w", err)
	}

	return &SearchResult{
		Query:       address,
		DisplayName: loc.DisplayName,
		Origin:      loc.Coordinate,
		Centers:     rank(loc.Coordinate, centers, 0),
	}, nil
}

// ReverseLookup names the place at the given coordinate.
func (s *Service) ReverseLookup(ctx context.Context, coord geo.Coordinate) (string, error) {
	if !coord.Valid() {
		return "", fmt.Errorf("coordinate out of range")
	}
	loc, err := s.geocoder.Reverse(ctx, coord)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return "", ErrLocationNotFound
		}
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	return loc.DisplayName, nil
}

func (s *Service) ListCenters(ctx context.Context) ([]*CrisisCenter, error) {
	return s.centers.List(ctx)
}

func (s *Service) AddCenter(ctx context.Context, c *CrisisCenter) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !c.Coordinate().Valid() {
		return fmt.Errorf("latitude/longitude out of range")
	}
	return s.centers.Create(ctx, c)
}

func (s *Service) RemoveCenter(ctx context.Context, id uuid.UUID) error {
	return s.centers.Delete(ctx, id)
}
