package config

import (
	"os"
)

type SMSGatewayConfig struct {
	BaseURL    string
	APIKey     string
	SenderName string
}

func LoadSMSGatewayConfig() *SMSGatewayConfig {
	baseURL := os.Getenv("SMS_GATEWAY_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9080"
	}

	apiKey := os.Getenv("SMS_GATEWAY_API_KEY")

	senderName := os.Getenv("SMS_SENDER_NAME")
	if senderName == "" {
		senderName = "iBarangay"
	}

	return &SMSGatewayConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		SenderName: senderName,
	}
}
