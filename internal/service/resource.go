package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/sirupsen/logrus"
)

// ResourceRepository определяет контракт для работы с бд и кэшем ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	List(ctx context.Context) ([]*models.Resource, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.Resource, error)

	GetResourceFromCache(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	SetResourceCache(ctx context.Context, resource *models.Resource) error
	InvalidateResourceCache(ctx context.Context, id uuid.UUID) error
}

// AlertDispatcher - рассылка SMS-оповещений
type AlertDispatcher interface {
	LoadContacts(ctx context.Context) error
	Send(ctx context.Context, phone, message string) (string, error)
	DispatchLowStock(ctx context.Context, resource *models.Resource) (*models.DispatchResult, error)
	DispatchCustom(ctx context.Context, resource *models.Resource, message string) (*models.DispatchResult, error)
	DispatchEmergency(ctx context.Context, phones []string, location, message string) (*models.DispatchResult, error)
}

// ResourceService определяет контракт учета ресурсов и оповещений о нехватке
type ResourceService interface {
	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	ListResources(ctx context.Context) ([]*models.Resource, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.Resource, *models.DispatchResult, error)
	SendCustomAlert(ctx context.Context, id uuid.UUID, message string) (*models.DispatchResult, error)
}

type resourceService struct {
	repo       ResourceRepository
	dispatcher AlertDispatcher
	logger     *logrus.Logger
}

func NewResourceService(repo ResourceRepository, dispatcher AlertDispatcher, logger *logrus.Logger) ResourceService {
	return &resourceService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateResource создает ресурс
func (s *resourceService) CreateResource(ctx context.Context, resource *models.Resource) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "resource",
		"method":  "CreateResource",
		"name":    resource.Name,
	})
	log.Info("Attempting to create a new resource")

	if resource.Quantity < 0 || resource.Threshold < 0 {
		return fmt.Errorf("service: %w", ErrNegativeQuantity)
	}
	if err := s.repo.Create(ctx, resource); err != nil {
		log.WithError(err).Error("Failed to create resource in repository")
		return fmt.Errorf("service: could not create resource: %w", err)
	}

	log.WithField("resource_id", resource.ID).Info("Resource created successfully")
	return nil
}

// GetResource получает ресурс по ID, сначала из кэша
func (s *resourceService) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "GetResource",
		"resource_id": id,
	})

	cached, err := s.repo.GetResourceFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read resource cache")
	}
	if cached != nil {
		log.Debug("Resource served from cache")
		return cached, nil
	}

	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get resource in repository")
		return nil, fmt.Errorf("service: could not get resource: %w", err)
	}

	if err := s.repo.SetResourceCache(ctx, resource); err != nil {
		log.WithError(err).Warn("Failed to cache resource")
	}
	return resource, nil
}

// ListResources возвращает все ресурсы
func (s *resourceService) ListResources(ctx context.Context) ([]*models.Resource, error) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "resource",
			"method":  "ListResources",
		}).WithError(err).Error("Failed to list resources from repository")
		return nil, fmt.Errorf("service: could not list resources: %w", err)
	}
	return resources, nil
}

// UpdateQuantity сохраняет новое количество и оповещает контакты, если запас опустился до порога.
// Ошибка записи журнала не отменяет обновление: результат рассылки возвращается как есть.
func (s *resourceService) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.Resource, *models.DispatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "UpdateQuantity",
		"resource_id": id,
		"quantity":    quantity,
	})
	log.Info("Attempting to update resource quantity")

	if quantity < 0 {
		log.Warn("Rejected negative quantity")
		return nil, nil, fmt.Errorf("service: %w", ErrNegativeQuantity)
	}

	resource, err := s.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		log.WithError(err).Error("Failed to update resource quantity in repository")
		return nil, nil, fmt.Errorf("service: could not update resource quantity: %w", err)
	}

	if err := s.repo.InvalidateResourceCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate resource cache")
	}

	if !resource.IsLowStock() {
		log.Info("Resource quantity updated successfully")
		return resource, nil, nil
	}

	log.WithField("threshold", resource.Threshold).Warn("Resource is running low, dispatching alert")
	result, err := s.dispatcher.DispatchLowStock(ctx, resource)
	if err != nil {
		log.WithError(err).Error("Low stock alert dispatch failed")
	}
	return resource, result, nil
}

// SendCustomAlert рассылает сообщение оператора по ресурсу
func (s *resourceService) SendCustomAlert(ctx context.Context, id uuid.UUID, message string) (*models.DispatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "SendCustomAlert",
		"resource_id": id,
	})

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("service: %w", ErrEmptyMessage)
	}

	resource, err := s.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.dispatcher.DispatchCustom(ctx, resource, message)
	if err != nil {
		log.WithError(err).Error("Custom alert dispatch failed")
		return result, fmt.Errorf("service: could not dispatch custom alert: %w", err)
	}

	log.WithField("summary", result.Summary()).Info("Custom alert dispatched")
	return result, nil
}
