package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"courtbook/config"
	"courtbook/utils"

	"go.uber.org/zap"
)

// SMSGatewaySender posts notices to the configured HTTP SMS gateway.
type SMSGatewaySender struct {
	Client *http.Client
}

// NewSMSGatewaySender returns a sender with a bounded request timeout.
func NewSMSGatewaySender() *SMSGatewaySender {
	return &SMSGatewaySender{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Text string `json:"text"`
}

func (s *SMSGatewaySender) Send(ctx context.Context, recipient, text string) error {
	gateway := config.AppConfig.SMSGatewayURL
	if gateway == "" {
		// No gateway configured (local development): log the notice
		// instead of delivering it.
		utils.GetLogger().Info("sms gateway not configured, skipping delivery",
			zap.String("recipient", recipient), zap.String("text", text))
		return nil
	}

	body, err := json.Marshal(smsRequest{
		To:   recipient,
		From: config.AppConfig.SMSSenderID,
		Text: text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gateway, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
