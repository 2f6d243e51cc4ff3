package search

import (
	"errors"
	"testing"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Norfolk, VA to Virginia Beach, VA oceanfront: roughly 17 miles.
	norfolk := domain.GeoPoint{Lat: 36.8508, Lng: -76.2859}
	vaBeach := domain.GeoPoint{Lat: 36.8529, Lng: -75.978}

	distance := Haversine(norfolk, vaBeach)
	assert.InDelta(t, 17.0, distance, 1.0)
}

func TestHaversineZeroDistance(t *testing.T) {
	p := domain.GeoPoint{Lat: 36.85, Lng: -76.28}
	assert.Zero(t, Haversine(p, p))
}

func TestMilesToRadians(t *testing.T) {
	assert.InDelta(t, 25.0/3959.0, MilesToRadians(25), 1e-12)
}

func TestWithinRadius(t *testing.T) {
	center := domain.GeoPoint{Lat: 36.85, Lng: -76.28}
	// About 0.07 miles north.
	near := domain.GeoPoint{Lat: 36.851, Lng: -76.28}

	assert.True(t, WithinRadius(center, near, 1))
	assert.False(t, WithinRadius(center, near, 0.01))
}

func TestResolveCenterExplicitCoordinatesWin(t *testing.T) {
	lat, lng := 36.85, -76.28
	geo, fallback, err := ResolveCenter(Params{
		Lat: &lat,
		Lng: &lng,
		Zip: "99999",
	}, func(string) (*domain.GeoPoint, error) {
		t.Fatal("geocoder must not be called when coordinates are explicit")
		return nil, nil
	})

	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Empty(t, fallback)
	assert.Equal(t, domain.GeoPoint{Lat: lat, Lng: lng}, geo.Center)
	assert.Equal(t, 25.0, geo.RadiusMiles, "default radius applies")
}

func TestResolveCenterGeocodesZip(t *testing.T) {
	geo, fallback, err := ResolveCenter(Params{Zip: "23505", RadiusMiles: 10}, func(zip string) (*domain.GeoPoint, error) {
		assert.Equal(t, "23505", zip)
		return &domain.GeoPoint{Lat: 36.9, Lng: -76.3}, nil
	})

	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Empty(t, fallback)
	assert.Equal(t, 10.0, geo.RadiusMiles)
}

func TestResolveCenterZipFromAddress(t *testing.T) {
	geo, _, err := ResolveCenter(Params{Address: "23505-1234"}, func(zip string) (*domain.GeoPoint, error) {
		assert.Equal(t, "23505", zip)
		return &domain.GeoPoint{Lat: 36.9, Lng: -76.3}, nil
	})

	require.NoError(t, err)
	require.NotNil(t, geo)
}

func TestResolveCenterGeocodeFailureFallsBack(t *testing.T) {
	geo, fallback, err := ResolveCenter(Params{Zip: "23505"}, func(string) (*domain.GeoPoint, error) {
		return nil, errors.New("geocoder down")
	})

	require.Error(t, err)
	assert.Nil(t, geo)
	assert.Equal(t, "23505", fallback, "failure degrades to exact zip matching")
}

func TestResolveCenterNoBasis(t *testing.T) {
	geo, fallback, err := ResolveCenter(Params{City: "Norfolk"}, func(string) (*domain.GeoPoint, error) {
		t.Fatal("nothing to geocode")
		return nil, nil
	})

	require.NoError(t, err)
	assert.Nil(t, geo)
	assert.Empty(t, fallback)
}
