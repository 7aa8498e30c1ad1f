package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type alertServiceMocks struct {
	alerts     *mocks.MockAlertRepository
	contacts   *mocks.MockContactRepository
	dispatcher *mocks.MockAlertDispatcher
}

func newTestAlertService(t *testing.T) (AlertService, alertServiceMocks) {
	ctrl := gomock.NewController(t)
	m := alertServiceMocks{
		alerts:     mocks.NewMockAlertRepository(ctrl),
		contacts:   mocks.NewMockContactRepository(ctrl),
		dispatcher: mocks.NewMockAlertDispatcher(ctrl),
	}
	return NewAlertService(m.alerts, m.contacts, m.dispatcher, newTestLogger()), m
}

func TestSendEmergencyAlert_CleansPhones(t *testing.T) {
	service, m := newTestAlertService(t)
	ctx := context.Background()
	result := &models.DispatchResult{Alert: &models.AlertRecord{ID: uuid.New()}}

	m.dispatcher.EXPECT().
		DispatchEmergency(ctx, []string{"+911", "+912"}, "Kedarnath", "Emergency Alert").
		Return(result, nil)

	res, err := service.SendEmergencyAlert(ctx, []string{" +911", "", "+912 "}, "Kedarnath", "")

	require.NoError(t, err)
	assert.Same(t, result, res)
}

func TestSendEmergencyAlert_NoRecipients(t *testing.T) {
	service, _ := newTestAlertService(t)

	_, err := service.SendEmergencyAlert(context.Background(), []string{" "}, "", "help")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestSendSMS_Error(t *testing.T) {
	service, m := newTestAlertService(t)
	ctx := context.Background()

	m.dispatcher.EXPECT().Send(ctx, "+911", "hello").Return("", errors.New("gateway down"))

	_, err := service.SendSMS(ctx, "+911", "hello")
	require.Error(t, err)
}

func TestAddContact_ReloadsRecipients(t *testing.T) {
	service, m := newTestAlertService(t)
	ctx := context.Background()
	contact := &models.Contact{Name: "DM Office", PhoneNumber: " +911352712345 "}

	gomock.InOrder(
		m.contacts.EXPECT().CreateContact(ctx, contact).Return(nil),
		m.dispatcher.EXPECT().LoadContacts(ctx).Return(nil),
	)

	require.NoError(t, service.AddContact(ctx, contact))
	assert.Equal(t, "+911352712345", contact.PhoneNumber)
}

func TestAddContact_RepositoryError(t *testing.T) {
	service, m := newTestAlertService(t)
	ctx := context.Background()

	m.contacts.EXPECT().CreateContact(ctx, gomock.Any()).Return(errors.New("duplicate"))

	assert.Error(t, service.AddContact(ctx, &models.Contact{PhoneNumber: "+911"}))
}

func TestListAlerts(t *testing.T) {
	service, m := newTestAlertService(t)
	ctx := context.Background()
	records := []*models.AlertRecord{{ID: uuid.New(), Status: models.AlertStatusFailed}}

	m.alerts.EXPECT().ListAlerts(ctx, 2, 50).Return(records, nil)

	got, err := service.ListAlerts(ctx, 2, 50)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
