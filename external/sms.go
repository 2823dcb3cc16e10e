package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ibarangay-be/config"
)

type Client struct {
	baseURL    string
	apiKey     string
	senderName string
	httpClient *http.Client
}

func NewClient(cfg *config.SMSGatewayConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		senderName: cfg.SenderName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type SMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

func (c *Client) SendSMS(to, message string) error {
	payload := SMSRequest{
		To:      to,
		Message: message,
		Sender:  c.senderName,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	url := c.baseURL + "/v1/messages"
	httpReq, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}
