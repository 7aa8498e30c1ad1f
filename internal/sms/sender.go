// Package sms содержит клиентов SMS-шлюзов.
package sms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shenikar/uttarakhand_safe/internal/config"
	"github.com/sirupsen/logrus"
)

// Sender отправляет одно сообщение одному получателю и возвращает идентификатор сообщения у провайдера
type Sender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

// Envelope - формат ответа шлюза: {success, error?}
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewSender создает отправителя по настройке SMS_PROVIDER
func NewSender(cfg *config.Config, logger *logrus.Logger) (Sender, error) {
	httpClient := &http.Client{Timeout: cfg.SMSTimeout}

	switch cfg.SMSProvider {
	case config.SMSProviderTwilio:
		return NewTwilioSender(httpClient, cfg.TwilioBaseURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), nil
	case config.SMSProviderGateway:
		return NewGatewaySender(httpClient, cfg.SMSGatewayURL), nil
	case config.SMSProviderLog:
		return NewLogSender(logger), nil
	}
	return nil, fmt.Errorf("unknown sms provider %q", cfg.SMSProvider)
}
