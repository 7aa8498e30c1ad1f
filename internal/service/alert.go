package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/sirupsen/logrus"
)

// ContactRepository определяет контракт для работы с бд получателей
type ContactRepository interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context) ([]*models.Contact, error)
}

// AlertRepository определяет контракт журнала оповещений
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert *models.AlertRecord) error
	ListAlerts(ctx context.Context, page, pageSize int) ([]*models.AlertRecord, error)
}

// AlertService определяет контракт SMS-шлюза, журнала и списка контактов
type AlertService interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
	SendEmergencyAlert(ctx context.Context, phones []string, location, message string) (*models.DispatchResult, error)
	ListAlerts(ctx context.Context, page, pageSize int) ([]*models.AlertRecord, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
	AddContact(ctx context.Context, contact *models.Contact) error
}

type alertService struct {
	alerts     AlertRepository
	contacts   ContactRepository
	dispatcher AlertDispatcher
	logger     *logrus.Logger
}

func NewAlertService(alerts AlertRepository, contacts ContactRepository, dispatcher AlertDispatcher, logger *logrus.Logger) AlertService {
	return &alertService{
		alerts:     alerts,
		contacts:   contacts,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// SendSMS отправляет одно сообщение одному получателю
func (s *alertService) SendSMS(ctx context.Context, phone, message string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "SendSMS",
		"phone":   phone,
	})

	id, err := s.dispatcher.Send(ctx, phone, message)
	if err != nil {
		log.WithError(err).Error("Failed to send SMS")
		return "", fmt.Errorf("service: could not send sms: %w", err)
	}
	log.WithField("message_id", id).Info("SMS sent")
	return id, nil
}

// SendEmergencyAlert рассылает экстренное оповещение по списку номеров
func (s *alertService) SendEmergencyAlert(ctx context.Context, phones []string, location, message string) (*models.DispatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "SendEmergencyAlert",
		"recipients": len(phones),
	})

	cleaned := make([]string, 0, len(phones))
	for _, p := range phones {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("service: %w", ErrNoRecipients)
	}
	if strings.TrimSpace(message) == "" {
		message = "Emergency Alert"
	}

	result, err := s.dispatcher.DispatchEmergency(ctx, cleaned, location, message)
	if err != nil {
		log.WithError(err).Error("Emergency alert dispatch failed")
		return result, fmt.Errorf("service: could not dispatch emergency alert: %w", err)
	}
	log.WithField("summary", result.Summary()).Info("Emergency alert dispatched")
	return result, nil
}

// ListAlerts возвращает журнал оповещений с пагинацией
func (s *alertService) ListAlerts(ctx context.Context, page, pageSize int) ([]*models.AlertRecord, error) {
	page, pageSize = normalizePage(page, pageSize)
	alerts, err := s.alerts.ListAlerts(ctx, page, pageSize)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "ListAlerts",
		}).WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// ListContacts возвращает получателей оповещений
func (s *alertService) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list contacts: %w", err)
	}
	return contacts, nil
}

// AddContact сохраняет получателя и перечитывает список рассылки
func (s *alertService) AddContact(ctx context.Context, contact *models.Contact) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "AddContact",
	})

	contact.PhoneNumber = strings.TrimSpace(contact.PhoneNumber)
	if err := s.contacts.CreateContact(ctx, contact); err != nil {
		log.WithError(err).Error("Failed to create contact in repository")
		return fmt.Errorf("service: could not add contact: %w", err)
	}

	if err := s.dispatcher.LoadContacts(ctx); err != nil {
		log.WithError(err).Warn("Failed to reload alert contacts")
	}
	log.WithField("contact_id", contact.ID).Info("Contact added successfully")
	return nil
}
