// Package geo provides great-circle distance math for ranking locations.
package geo

import (
	"math"
	"sort"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DistanceKm returns the haversine distance between two points in kilometers.
func DistanceKm(from, to Coordinate) float64 {
	const earthRadiusKm = 6371.0
	lat1Rad := toRadians(from.Lat)
	lat2Rad := toRadians(to.Lat)
	deltaLat := toRadians(to.Lat - from.Lat)
	deltaLon := toRadians(to.Lon - from.Lon)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Ranked pairs an input index with its distance from the origin.
type Ranked struct {
	Index      int
	DistanceKm float64
}

// RankByDistance orders points by ascending distance from origin. Points at
// equal distance keep their input order.
func RankByDistance(origin Coordinate, points []Coordinate) []Ranked {
	ranked := make([]Ranked, len(points))
	for i, p := range points {
		ranked[i] = Ranked{Index: i, DistanceKm: DistanceKm(origin, p)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked
}
