package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/uttarakhand_safe/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	return logger, buf
}

func TestTwilioSender_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "+919999999999", r.PostForm.Get("To"))
		assert.Equal(t, "+15550000000", r.PostForm.Get("From"))
		assert.Equal(t, "hello", r.PostForm.Get("Body"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42","status":"queued"}`))
	}))
	defer srv.Close()

	sender := NewTwilioSender(srv.Client(), srv.URL+"/", "AC123", "secret", "+15550000000")
	id, err := sender.Send(context.Background(), "+919999999999", "hello")

	require.NoError(t, err)
	assert.Equal(t, "SM42", id)
}

func TestTwilioSender_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number.","status":400}`))
	}))
	defer srv.Close()

	sender := NewTwilioSender(srv.Client(), srv.URL, "AC123", "secret", "+15550000000")
	_, err := sender.Send(context.Background(), "bogus", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "code 21211")
	assert.Contains(t, err.Error(), "not a valid phone number")
}

func TestTwilioSender_CancelledContext(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTwilioSender(srv.Client(), srv.URL, "AC123", "secret", "+15550000000").Send(ctx, "+911", "hello")

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestGatewaySender_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/alert", r.URL.Path)
		var body gatewayRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+911", body.Phone)
		assert.Equal(t, "flood warning", body.Message)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := NewGatewaySender(srv.Client(), srv.URL).Send(context.Background(), "+911", "flood warning")
	assert.NoError(t, err)
}

func TestGatewaySender_PlainTextSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Alert sent"))
	}))
	defer srv.Close()

	_, err := NewGatewaySender(srv.Client(), srv.URL).Send(context.Background(), "+911", "msg")
	assert.NoError(t, err)
}

func TestGatewaySender_EnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid number"}`))
	}))
	defer srv.Close()

	_, err := NewGatewaySender(srv.Client(), srv.URL).Send(context.Background(), "+911", "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestGatewaySender_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Error sending alert", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewGatewaySender(srv.Client(), srv.URL).Send(context.Background(), "+911", "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLogSender(t *testing.T) {
	logger, buf := newTestLogger()

	id, err := NewLogSender(logger).Send(context.Background(), "+911", "check supplies")

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), "check supplies")
	assert.Contains(t, buf.String(), "+911")
}

func TestNewSender(t *testing.T) {
	logger, _ := newTestLogger()
	base := config.Config{SMSTimeout: time.Second}

	cfg := base
	cfg.SMSProvider = config.SMSProviderLog
	s, err := NewSender(&cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	cfg.SMSProvider = config.SMSProviderGateway
	cfg.SMSGatewayURL = "http://gateway"
	s, err = NewSender(&cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &GatewaySender{}, s)

	cfg.SMSProvider = config.SMSProviderTwilio
	s, err = NewSender(&cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &TwilioSender{}, s)

	cfg.SMSProvider = "fax"
	_, err = NewSender(&cfg, logger)
	assert.Error(t, err)
}
