package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WalletProcessor wraps the wallet-based checkout's order API
// (create + capture).
type WalletProcessor interface {
	CreateOrder(amount float64, currency string) (*WalletOrder, error)
	CaptureOrder(orderID string) (*WalletCapture, error)
}

type WalletOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type WalletCapture struct {
	OrderID       string
	TransactionID string
	Status        string
}

type HTTPWalletProcessor struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	client       *http.Client
}

func NewHTTPWalletProcessor(baseURL, clientID, clientSecret string) *HTTPWalletProcessor {
	return &HTTPWalletProcessor{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (p *HTTPWalletProcessor) accessToken() (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest("POST", p.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wallet token returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (p *HTTPWalletProcessor) CreateOrder(amount float64, currency string) (*WalletOrder, error) {
	token, err := p.accessToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{"amount": map[string]string{
				"currency_code": currency,
				"value":         fmt.Sprintf("%.2f", amount),
			}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", p.BaseURL+"/v2/checkout/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet order request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet order returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	var order WalletOrder
	if err := json.Unmarshal(responseBody, &order); err != nil {
		return nil, fmt.Errorf("failed to parse wallet order response: %w", err)
	}
	return &order, nil
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (p *HTTPWalletProcessor) CaptureOrder(orderID string) (*WalletCapture, error) {
	token, err := p.accessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", p.BaseURL+"/v2/checkout/orders/"+orderID+"/capture", bytes.NewBuffer([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet capture request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet capture returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	var captured captureResponse
	if err := json.Unmarshal(responseBody, &captured); err != nil {
		return nil, fmt.Errorf("failed to parse wallet capture response: %w", err)
	}

	capture := &WalletCapture{OrderID: captured.ID, Status: captured.Status}
	if len(captured.PurchaseUnits) > 0 && len(captured.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.TransactionID = captured.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return capture, nil
}
