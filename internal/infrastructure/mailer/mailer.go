package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Mailer delivers outbound notification email through the mail API
// collaborator. Failures degrade (logged, not propagated): a missed email
// never aborts the request that queued it.
type Mailer interface {
	Send(to, subject, body string) error
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type HTTPMailer struct {
	BaseURL string
	APIKey  string
	From    string
	client  *http.Client
}

func NewHTTPMailer(baseURL, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{
		BaseURL: baseURL,
		APIKey:  apiKey,
		From:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *HTTPMailer) Send(to, subject, body string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.From,
		To:      to,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", m.BaseURL+"/emails", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer is used when no mail API is configured (development).
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail (dev): to=%s subject=%q", to, subject)
	return nil
}
