package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GatewaySender отправляет SMS через внешний шлюз с контрактом POST /api/alert {phone, message}
type GatewaySender struct {
	httpClient *http.Client
	baseURL    string
}

func NewGatewaySender(httpClient *http.Client, baseURL string) *GatewaySender {
	return &GatewaySender{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type gatewayRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *GatewaySender) Send(ctx context.Context, phone, message string) (string, error) {
	payload, err := json.Marshal(gatewayRequest{Phone: phone, Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/alert", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send sms via gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	// Шлюз может ответить простым текстом; конверт проверяем, только если он пришел
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && !env.Success {
		if env.Error == "" {
			return "", errors.New("gateway reported failure")
		}
		return "", fmt.Errorf("gateway reported failure: %s", env.Error)
	}
	return "", nil
}
