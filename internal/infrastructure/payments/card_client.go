package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CardProcessor wraps the card payment processor's intent API.
type CardProcessor interface {
	CreateIntent(amountCents int64, currency, receiptEmail string) (*Intent, error)
	GetIntent(intentID string) (*Intent, error)
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
}

type HTTPCardProcessor struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewHTTPCardProcessor(baseURL, secretKey string) *HTTPCardProcessor {
	return &HTTPCardProcessor{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *HTTPCardProcessor) CreateIntent(amountCents int64, currency, receiptEmail string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	if receiptEmail != "" {
		form.Set("receipt_email", receiptEmail)
	}

	req, err := http.NewRequest("POST", p.BaseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	return p.do(req)
}

func (p *HTTPCardProcessor) GetIntent(intentID string) (*Intent, error) {
	req, err := http.NewRequest("GET", p.BaseURL+"/payment_intents/"+intentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	return p.do(req)
}

func (p *HTTPCardProcessor) do(req *http.Request) (*Intent, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("card processor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("card processor returned status %d: %s", resp.StatusCode, string(body))
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse card processor response: %w", err)
	}
	return &intent, nil
}
