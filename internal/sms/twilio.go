package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// DefaultTwilioBaseURL - адрес Twilio REST API по умолчанию
const DefaultTwilioBaseURL = "https://api.twilio.com"

// TwilioSender отправляет SMS через Twilio Messages API
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender создает клиента twilio-go поверх httpClient.
// Если baseURL отличается от DefaultTwilioBaseURL, запросы перенаправляются на него.
func NewTwilioSender(httpClient *http.Client, baseURL, accountSID, authToken, from string) *TwilioSender {
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if base, err := url.Parse(baseURL); err == nil && base.Host != "" && baseURL != DefaultTwilioBaseURL {
		transport = &baseURLTransport{base: base, next: transport}
	}

	restClient := &twclient.Client{
		Credentials: twclient.NewCredentials(accountSID, authToken),
		HTTPClient:  &http.Client{Timeout: httpClient.Timeout, Transport: transport},
	}
	restClient.SetAccountSid(accountSID)

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{Client: restClient}),
		from:   from,
	}
}

func (s *TwilioSender) Send(ctx context.Context, phone, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("twilio send to %s aborted: %w", phone, err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			return "", fmt.Errorf("twilio rejected message to %s: status %d, code %d: %s", phone, restErr.Status, restErr.Code, restErr.Message)
		}
		return "", fmt.Errorf("failed to send sms via twilio: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio accepted message to %s without sid", phone)
	}
	return *resp.Sid, nil
}

// baseURLTransport переписывает схему и хост запроса на base
type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.base.Scheme
	r.URL.Host = t.base.Host
	r.Host = t.base.Host
	return t.next.RoundTrip(r)
}
