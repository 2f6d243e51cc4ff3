package search

import (
	"math"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// Earth mean radius in miles; radius-to-radians conversion divides by this.
const earthRadiusMiles = 3959.0

// MilesToRadians converts a radius in miles to the angular radius of the
// spherical cap used for containment.
func MilesToRadians(miles float64) float64 {
	return miles / earthRadiusMiles
}

// Haversine returns the great-circle distance in miles between two points
// given in degrees.
func Haversine(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius reports spherical-cap containment of p around center.
func WithinRadius(center, p domain.GeoPoint, radiusMiles float64) bool {
	return Haversine(center, p) <= radiusMiles
}

// ResolveCenter produces the coordinate basis for a search, if any.
// Explicit coordinates win; otherwise a postal-code input is geocoded.
// A geocoding failure degrades to an exact zip match (fallbackZip non-empty)
// rather than aborting the search.
func ResolveCenter(params Params, geocodeZip func(string) (*domain.GeoPoint, error)) (geo *domain.GeoFilter, fallbackZip string, err error) {
	radius := params.RadiusMiles
	if radius <= 0 {
		radius = 25
	}

	if params.Lat != nil && params.Lng != nil {
		return &domain.GeoFilter{
			Center:      domain.GeoPoint{Lat: *params.Lat, Lng: *params.Lng},
			RadiusMiles: radius,
		}, "", nil
	}

	zip := ""
	if params.Zip != "" && IsZip(params.Zip) {
		zip = ZipBase(params.Zip)
	} else if IsZip(params.Address) {
		zip = ZipBase(params.Address)
	}
	if zip == "" {
		return nil, "", nil
	}

	center, geocodeErr := geocodeZip(zip)
	if geocodeErr != nil {
		// Fall back to exact postal-code match.
		return nil, zip, geocodeErr
	}

	return &domain.GeoFilter{Center: *center, RadiusMiles: radius}, "", nil
}
