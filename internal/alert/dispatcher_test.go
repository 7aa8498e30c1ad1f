package alert

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/uttarakhand_safe/internal/alert/mocks"
	"github.com/shenikar/uttarakhand_safe/internal/metrics"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	sms_mocks "github.com/shenikar/uttarakhand_safe/internal/sms/mocks"
	"github.com/shenikar/uttarakhand_safe/internal/webhook"
	webhook_mocks "github.com/shenikar/uttarakhand_safe/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
)

type testDeps struct {
	sender    *sms_mocks.MockSender
	contacts  *mocks.MockContactStore
	alerts    *mocks.MockAlertStore
	publisher *webhook_mocks.MockWebhookPublisher
	collector *metrics.Collector
}

func newTestDispatcher(t *testing.T) (*Dispatcher, testDeps) {
	ctrl := gomock.NewController(t)
	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	deps := testDeps{
		sender:    sms_mocks.NewMockSender(ctrl),
		contacts:  mocks.NewMockContactStore(ctrl),
		alerts:    mocks.NewMockAlertStore(ctrl),
		publisher: webhook_mocks.NewMockWebhookPublisher(ctrl),
		collector: collector,
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	d := NewDispatcher(deps.sender, deps.contacts, deps.alerts, deps.publisher, nil, collector, logger)
	d.now = func() time.Time { return time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC) }
	return d, deps
}

func loadPhones(t *testing.T, d *Dispatcher, deps testDeps, phones ...string) {
	contacts := make([]*models.Contact, 0, len(phones))
	for _, p := range phones {
		contacts = append(contacts, &models.Contact{ID: uuid.New(), PhoneNumber: p})
	}
	deps.contacts.EXPECT().ListContacts(gomock.Any()).Return(contacts, nil)
	require.NoError(t, d.LoadContacts(context.Background()))
}

func TestLoadContacts_SkipsBlankNumbers(t *testing.T) {
	d, deps := newTestDispatcher(t)
	loadPhones(t, d, deps, "+911", "  ", "+912")

	assert.Equal(t, []string{"+911", "+912"}, d.Phones())
}

func TestLoadContacts_Error(t *testing.T) {
	d, deps := newTestDispatcher(t)
	deps.contacts.EXPECT().ListContacts(gomock.Any()).Return(nil, errors.New("db down"))

	err := d.LoadContacts(context.Background())
	require.Error(t, err)
	assert.Empty(t, d.Phones())
}

func TestDispatchLowStock_SendsToEveryContact(t *testing.T) {
	d, deps := newTestDispatcher(t)
	loadPhones(t, d, deps, "+911", "+912", "+913")
	resource := &models.Resource{ID: uuid.New(), Name: "Water", Quantity: 2, Threshold: 5}
	body := "ALERT: Water is running low! Current quantity: 2. Please restock soon."

	gomock.InOrder(
		deps.sender.EXPECT().Send(gomock.Any(), "+911", body).Return("SM1", nil),
		deps.sender.EXPECT().Send(gomock.Any(), "+912", body).Return("SM2", nil),
		deps.sender.EXPECT().Send(gomock.Any(), "+913", body).Return("SM3", nil),
	)

	var stored *models.AlertRecord
	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.AlertRecord) error {
			stored = a
			return nil
		}).Times(1)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.WebhookEvent) error {
			assert.Equal(t, KindLowStock, e.Kind)
			assert.Equal(t, "sent: 3/3", e.Summary)
			return nil
		})

	res, err := d.DispatchLowStock(context.Background(), resource)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Same(t, stored, res.Alert)
	assert.Equal(t, models.AlertStatusSent, stored.Status)
	assert.Equal(t, body, stored.Message)
	assert.Equal(t, "Water", stored.ResourceName)
	assert.Equal(t, resource.ID, *stored.ResourceID)
	assert.Equal(t, 3, stored.Attempted)
	assert.Equal(t, 3, stored.Delivered)
	assert.Equal(t, "sent: 3/3", res.Summary())
	assert.Equal(t, 3.0, testutil.ToFloat64(deps.collector.SMSSends.WithLabelValues("ok")))
}

func TestDispatchCustom_FailureDoesNotAbortOthers(t *testing.T) {
	d, deps := newTestDispatcher(t)
	loadPhones(t, d, deps, "+911", "+912", "+913")
	resource := &models.Resource{ID: uuid.New(), Name: "Tents", Quantity: 50, Threshold: 5}
	body := "ALERT: Tents - Road to Joshimath closed"

	deps.sender.EXPECT().Send(gomock.Any(), "+911", body).Return("SM1", nil)
	deps.sender.EXPECT().Send(gomock.Any(), "+912", body).Return("", errors.New("invalid number"))
	deps.sender.EXPECT().Send(gomock.Any(), "+913", body).Return("SM3", nil)
	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.DispatchCustom(context.Background(), resource, "Road to Joshimath closed")

	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, "invalid number", res.Results[1].Error)
	assert.Equal(t, models.AlertStatusFailed, res.Alert.Status)
	assert.Equal(t, "Road to Joshimath closed", res.Alert.Message)
	assert.Equal(t, 2, res.Alert.Delivered)
	assert.Equal(t, "sent: 2/3", res.Summary())
}

func TestDispatch_NoContactsStillRecords(t *testing.T) {
	d, deps := newTestDispatcher(t)
	resource := &models.Resource{ID: uuid.New(), Name: "Water", Quantity: 1, Threshold: 5}

	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.DispatchLowStock(context.Background(), resource)

	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, models.AlertStatusPending, res.Alert.Status)
}

func TestDispatch_StoreErrorReturnsResult(t *testing.T) {
	d, deps := newTestDispatcher(t)
	loadPhones(t, d, deps, "+911")
	resource := &models.Resource{ID: uuid.New(), Name: "Water", Quantity: 1, Threshold: 5}

	deps.sender.EXPECT().Send(gomock.Any(), "+911", gomock.Any()).Return("SM1", nil)
	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	res, err := d.DispatchLowStock(context.Background(), resource)

	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Delivered())
}

func TestDispatchEmergency_UsesGivenPhones(t *testing.T) {
	d, deps := newTestDispatcher(t)
	body := "Flash flood warning Location: Rishikesh"

	deps.sender.EXPECT().Send(gomock.Any(), "+919", body).Return("SM9", nil)
	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Return(nil)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := d.DispatchEmergency(context.Background(), []string{"+919"}, "Rishikesh", "Flash flood warning")

	require.NoError(t, err)
	assert.Nil(t, res.Alert.ResourceID)
	assert.Equal(t, "Flash flood warning", res.Alert.Message)
	assert.Equal(t, models.AlertStatusSent, res.Alert.Status)
}

func TestEmergencyMessage(t *testing.T) {
	assert.Equal(t, "Evacuate", EmergencyMessage(" ", "Evacuate"))
	assert.Equal(t, "Evacuate Location: Chamoli", EmergencyMessage("Chamoli", "Evacuate"))
}

func TestDispatchCustom_CompletesAfterCallerCancels(t *testing.T) {
	// Подготовка
	d, deps := newTestDispatcher(t)
	d.limiter = rate.NewLimiter(5, 1)
	loadPhones(t, d, deps, "+911", "+912", "+913")
	resource := &models.Resource{ID: uuid.New(), Name: "Water", Quantity: 50}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Ожидания
	deps.sender.EXPECT().Send(gomock.Any(), gomock.Any(), "ALERT: Water - road closed").
		DoAndReturn(func(ctx context.Context, phone, _ string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "SM-" + phone, nil
		}).Times(3)
	deps.alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.AlertRecord) error {
			return ctx.Err()
		}).Times(1)
	deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	// Действие
	result, err := d.DispatchCustom(ctx, resource, "road closed")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "sent: 3/3", result.Summary())
	assert.Equal(t, models.AlertStatusSent, result.Alert.Status)
	for _, r := range result.Results {
		assert.Empty(t, r.Error)
	}
}
