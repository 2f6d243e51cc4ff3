package places

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Place is one candidate from the external places directory.
type Place struct {
	PlaceID string
	Name    string
	Address string
	Lat     float64
	Lng     float64
	Types   []string
}

// Directory is the external places collaborator used to supplement sparse
// local coverage on geographically scoped searches.
type Directory interface {
	NearbySearch(lat, lng float64, radiusMeters int, placeType string) ([]Place, error)
	TextSearch(query string, lat, lng float64, radiusMeters int) ([]Place, error)
}

type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		Vicinity         string   `json:"vicinity"`
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type HTTPDirectory struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewHTTPDirectory(baseURL, apiKey string, timeout time.Duration) *HTTPDirectory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDirectory{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDirectory) NearbySearch(lat, lng float64, radiusMeters int, placeType string) ([]Place, error) {
	params := url.Values{}
	params.Add("location", fmt.Sprintf("%.6f,%.6f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", radiusMeters))
	if placeType != "" {
		params.Add("type", placeType)
	}
	params.Add("key", d.APIKey)

	return d.fetch(d.BaseURL + "/nearbysearch/json?" + params.Encode())
}

func (d *HTTPDirectory) TextSearch(query string, lat, lng float64, radiusMeters int) ([]Place, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("location", fmt.Sprintf("%.6f,%.6f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", radiusMeters))
	params.Add("key", d.APIKey)

	return d.fetch(d.BaseURL + "/textsearch/json?" + params.Encode())
}

func (d *HTTPDirectory) fetch(fullURL string) ([]Place, error) {
	resp, err := d.client.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf("places directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places directory returned status %d", resp.StatusCode)
	}

	var payload placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse places response: %w", err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places directory status %s", payload.Status)
	}

	results := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		results = append(results, Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: address,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
			Types:   r.Types,
		})
	}
	return results, nil
}
