package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestResourceService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestResourceService(t *testing.T) (*resourceService, *mocks.MockResourceRepository, *mocks.MockAlertDispatcher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockResourceRepository(ctrl)
	dispatcherMock := mocks.NewMockAlertDispatcher(ctrl)

	service := NewResourceService(repoMock, dispatcherMock, newTestLogger())
	return service.(*resourceService), repoMock, dispatcherMock
}

func TestUpdateQuantity_BelowThresholdDispatchesOnce(t *testing.T) {
	// Подготовка
	service, repoMock, dispatcherMock := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	updated := &models.Resource{ID: id, Name: "Water", Quantity: 2, Threshold: 5}
	result := &models.DispatchResult{Alert: &models.AlertRecord{ID: uuid.New(), Status: models.AlertStatusSent}}

	// Ожидания
	repoMock.EXPECT().UpdateQuantity(ctx, id, 2).Return(updated, nil)
	repoMock.EXPECT().InvalidateResourceCache(ctx, id).Return(nil)
	dispatcherMock.EXPECT().
		DispatchLowStock(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Resource) (*models.DispatchResult, error) {
			// диспетчер получает ресурс с новым количеством
			assert.Equal(t, "Water", r.Name)
			assert.Equal(t, 2, r.Quantity)
			return result, nil
		}).
		Times(1)

	// Действие
	resource, res, err := service.UpdateQuantity(ctx, id, 2)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, updated, resource)
	assert.Same(t, result, res)
}

func TestUpdateQuantity_AboveThresholdNoDispatch(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	updated := &models.Resource{ID: id, Name: "Water", Quantity: 8, Threshold: 5}

	// Ожидания: DispatchLowStock не вызывается, gomock упадет на неожиданном вызове
	repoMock.EXPECT().UpdateQuantity(ctx, id, 8).Return(updated, nil)
	repoMock.EXPECT().InvalidateResourceCache(ctx, id).Return(nil)

	// Действие
	resource, res, err := service.UpdateQuantity(ctx, id, 8)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 8, resource.Quantity)
	assert.Nil(t, res)
}

func TestUpdateQuantity_EqualToThresholdDispatches(t *testing.T) {
	service, repoMock, dispatcherMock := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	updated := &models.Resource{ID: id, Name: "Food kits", Quantity: 5, Threshold: 5}

	repoMock.EXPECT().UpdateQuantity(ctx, id, 5).Return(updated, nil)
	repoMock.EXPECT().InvalidateResourceCache(ctx, id).Return(errors.New("redis down"))
	dispatcherMock.EXPECT().DispatchLowStock(ctx, updated).Return(&models.DispatchResult{}, nil).Times(1)

	_, _, err := service.UpdateQuantity(ctx, id, 5)
	require.NoError(t, err)
}

func TestUpdateQuantity_Negative(t *testing.T) {
	service, _, _ := newTestResourceService(t)

	_, _, err := service.UpdateQuantity(context.Background(), uuid.New(), -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	service, repoMock, _ := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().UpdateQuantity(ctx, id, 3).Return(nil, fmt.Errorf("resource: %w", ErrNotFound))

	_, _, err := service.UpdateQuantity(ctx, id, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateQuantity_DispatchErrorKeepsUpdate(t *testing.T) {
	service, repoMock, dispatcherMock := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	updated := &models.Resource{ID: id, Name: "Water", Quantity: 0, Threshold: 5}
	partial := &models.DispatchResult{Alert: &models.AlertRecord{Status: models.AlertStatusSent}}

	repoMock.EXPECT().UpdateQuantity(ctx, id, 0).Return(updated, nil)
	repoMock.EXPECT().InvalidateResourceCache(ctx, id).Return(nil)
	dispatcherMock.EXPECT().DispatchLowStock(ctx, updated).Return(partial, errors.New("db down"))

	resource, res, err := service.UpdateQuantity(ctx, id, 0)

	require.NoError(t, err)
	assert.Equal(t, updated, resource)
	assert.Same(t, partial, res)
}

func TestGetResource_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	expected := &models.Resource{ID: id, Name: "Тестовый ресурс из кеша"}

	// Ожидания
	repoMock.EXPECT().GetResourceFromCache(ctx, id).Return(expected, nil).Times(1)

	// Действие
	resource, err := service.GetResource(ctx, id)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, resource)
}

func TestGetResource_FromDB(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	expected := &models.Resource{ID: id, Name: "Тестовый ресурс из БД"}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().GetResourceFromCache(ctx, id).Return(nil, nil)
	// 2. Попадание в БД
	repoMock.EXPECT().GetByID(ctx, id).Return(expected, nil)
	// 3. Запись в кеш
	repoMock.EXPECT().SetResourceCache(ctx, expected).Return(nil)

	// Действие
	resource, err := service.GetResource(ctx, id)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, resource)
}

func TestGetResource_NotFound(t *testing.T) {
	service, repoMock, _ := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().GetResourceFromCache(ctx, id).Return(nil, errors.New("redis down"))
	repoMock.EXPECT().GetByID(ctx, id).Return(nil, fmt.Errorf("resource: %w", ErrNotFound))

	resource, err := service.GetResource(ctx, id)

	assert.Nil(t, resource)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateResource_RejectsNegative(t *testing.T) {
	service, _, _ := newTestResourceService(t)

	err := service.CreateResource(context.Background(), &models.Resource{Name: "Water", Quantity: -5})
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestSendCustomAlert(t *testing.T) {
	service, repoMock, dispatcherMock := newTestResourceService(t)
	ctx := context.Background()
	id := uuid.New()
	resource := &models.Resource{ID: id, Name: "Tents"}
	result := &models.DispatchResult{Alert: &models.AlertRecord{Message: "Convoy delayed"}}

	repoMock.EXPECT().GetResourceFromCache(ctx, id).Return(resource, nil)
	dispatcherMock.EXPECT().DispatchCustom(ctx, resource, "Convoy delayed").Return(result, nil)

	res, err := service.SendCustomAlert(ctx, id, "  Convoy delayed ")

	require.NoError(t, err)
	assert.Same(t, result, res)
}

func TestSendCustomAlert_EmptyMessage(t *testing.T) {
	service, _, _ := newTestResourceService(t)

	_, err := service.SendCustomAlert(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
