package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
)

// Geocoder resolves a US postal code to coordinates through an external
// geocoding collaborator.
type Geocoder interface {
	GeocodeZip(zip string) (*domain.GeoPoint, error)
}

type zipResponse struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state abbreviation"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

type HTTPGeocoder struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPGeocoder{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGeocoder) GeocodeZip(zip string) (*domain.GeoPoint, error) {
	response, err := g.client.Get(fmt.Sprintf("%s/us/%s", g.BaseURL, zip))
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding returned status %d for zip %s", response.StatusCode, zip)
	}

	var payload zipResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(payload.Places) == 0 {
		return nil, fmt.Errorf("no geocoding result for zip %s", zip)
	}

	lat, err := strconv.ParseFloat(payload.Places[0].Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude in geocoding response: %w", err)
	}
	lng, err := strconv.ParseFloat(payload.Places[0].Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude in geocoding response: %w", err)
	}

	return &domain.GeoPoint{Lat: lat, Lng: lng}, nil
}
