package triage

import (
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/mindcare/internal/platform/geo"
)

// CrisisCenter maps to the crisis_center table. Reference data: rows change
// rarely and only through admin upkeep.
type CrisisCenter struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	Status    string    `db:"status" json:"status"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Coordinate returns the center's stored location.
func (c *CrisisCenter) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: c.Latitude, Lon: c.Longitude}
}

// RankedCenter is a center annotated with its distance from a ranking origin.
type RankedCenter struct {
	CrisisCenter
	DistanceKm float64 `json:"distance_km"`
}
