// Package geocode resolves free-text addresses to coordinates and back using
// a Nominatim-compatible endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mindcare/mindcare/internal/platform/geo"
)

// ErrNotFound is returned when the geocoder has no match for the input.
// It is distinct from transport failures, which are returned as-is.
var ErrNotFound = errors.New("location not found")

// Location is a resolved place.
type Location struct {
	Coordinate  geo.Coordinate
	DisplayName string
}

// Geocoder resolves addresses and coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
	Reverse(ctx context.Context, coord geo.Coordinate) (Location, error)
}

// Client talks to a Nominatim-compatible HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a geocoding client against baseURL with the given
// request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Geocode resolves a free-text address to its best-matching location.
// Returns ErrNotFound when the endpoint has no match.
func (c *Client) Geocode(ctx context.Context, address string) (Location, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []searchResult
	if err := c.get(ctx, "/search", q, &results); err != nil {
		return Location{}, err
	}
	if len(results) == 0 {
		return Location{}, ErrNotFound
	}

	coord, err := parseCoordinate(results[0].Lat, results[0].Lon)
	if err != nil {
		return Location{}, fmt.Errorf("geocode response: %w", err)
	}

	return Location{Coordinate: coord, DisplayName: results[0].DisplayName}, nil
}

// Reverse resolves coordinates to the nearest known address.
// Returns ErrNotFound when the endpoint cannot name the location.
func (c *Client) Reverse(ctx context.Context, coord geo.Coordinate) (Location, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	q.Set("format", "json")

	var result reverseResult
	if err := c.get(ctx, "/reverse", q, &result); err != nil {
		return Location{}, err
	}
	if result.Error != "" || result.DisplayName == "" {
		return Location{}, ErrNotFound
	}

	resolved := coord
	if result.Lat != "" && result.Lon != "" {
		if parsed, err := parseCoordinate(result.Lat, result.Lon); err == nil {
			resolved = parsed
		}
	}

	return Location{Coordinate: resolved, DisplayName: result.DisplayName}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build geocoder request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode geocoder response: %w", err)
	}
	return nil
}

func parseCoordinate(latStr, lonStr string) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}
