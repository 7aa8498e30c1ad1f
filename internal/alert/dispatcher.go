// Package alert рассылает SMS-оповещения по списку контактов.
package alert

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/metrics"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/sms"
	"github.com/shenikar/uttarakhand_safe/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Виды рассылок
const (
	KindLowStock  = "low_stock"
	KindCustom    = "custom"
	KindEmergency = "emergency"
)

// ContactStore - источник получателей оповещений
type ContactStore interface {
	ListContacts(ctx context.Context) ([]*models.Contact, error)
}

// AlertStore - журнал оповещений
type AlertStore interface {
	CreateAlert(ctx context.Context, alert *models.AlertRecord) error
}

// Dispatcher отправляет сообщение каждому контакту по очереди и пишет одну запись в журнал на рассылку
type Dispatcher struct {
	sender    sms.Sender
	contacts  ContactStore
	alerts    AlertStore
	publisher webhook.WebhookPublisher
	limiter   *rate.Limiter
	metrics   *metrics.Collector
	logger    *logrus.Logger
	now       func() time.Time

	mu     sync.RWMutex
	phones []string
}

// NewDispatcher создает диспетчер. publisher, limiter и collector могут быть nil.
func NewDispatcher(
	sender sms.Sender,
	contacts ContactStore,
	alerts AlertStore,
	publisher webhook.WebhookPublisher,
	limiter *rate.Limiter,
	collector *metrics.Collector,
	logger *logrus.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		contacts:  contacts,
		alerts:    alerts,
		publisher: publisher,
		limiter:   limiter,
		metrics:   collector,
		logger:    logger,
		now:       time.Now,
	}
}

// LoadContacts перечитывает список получателей из хранилища
func (d *Dispatcher) LoadContacts(ctx context.Context) error {
	contacts, err := d.contacts.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("alert: could not load contacts: %w", err)
	}

	phones := make([]string, 0, len(contacts))
	for _, c := range contacts {
		if phone := strings.TrimSpace(c.PhoneNumber); phone != "" {
			phones = append(phones, phone)
		}
	}

	d.mu.Lock()
	d.phones = phones
	d.mu.Unlock()

	d.logger.WithField("count", len(phones)).Info("Alert contacts loaded")
	return nil
}

// Phones возвращает копию текущего списка получателей
func (d *Dispatcher) Phones() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.phones...)
}

// LowStockMessage формирует текст оповещения о нехватке с новым количеством
func LowStockMessage(r *models.Resource) string {
	return fmt.Sprintf("ALERT: %s is running low! Current quantity: %d. Please restock soon.", r.Name, r.Quantity)
}

// CustomMessage формирует текст SMS для сообщения оператора
func CustomMessage(r *models.Resource, message string) string {
	return fmt.Sprintf("ALERT: %s - %s", r.Name, message)
}

// EmergencyMessage дописывает место происшествия к тексту, если оно задано
func EmergencyMessage(location, message string) string {
	if location = strings.TrimSpace(location); location == "" {
		return message
	}
	return fmt.Sprintf("%s Location: %s", message, location)
}

// DispatchLowStock оповещает контакты о том, что ресурс на исходе
func (d *Dispatcher) DispatchLowStock(ctx context.Context, r *models.Resource) (*models.DispatchResult, error) {
	body := LowStockMessage(r)
	return d.dispatch(ctx, KindLowStock, resourceRecord(r, body), d.Phones(), body)
}

// DispatchCustom рассылает произвольное сообщение оператора по ресурсу
func (d *Dispatcher) DispatchCustom(ctx context.Context, r *models.Resource, message string) (*models.DispatchResult, error) {
	return d.dispatch(ctx, KindCustom, resourceRecord(r, message), d.Phones(), CustomMessage(r, message))
}

// DispatchEmergency рассылает экстренное оповещение по переданным номерам
func (d *Dispatcher) DispatchEmergency(ctx context.Context, phones []string, location, message string) (*models.DispatchResult, error) {
	record := &models.AlertRecord{Message: message}
	return d.dispatch(ctx, KindEmergency, record, phones, EmergencyMessage(location, message))
}

// Send отправляет одно сообщение без записи в журнал
func (d *Dispatcher) Send(ctx context.Context, phone, message string) (string, error) {
	if err := d.wait(ctx); err != nil {
		return "", err
	}
	id, err := d.sender.Send(ctx, phone, message)
	d.metrics.SMSSent(err == nil)
	return id, err
}

// dispatch доводит рассылку до конца, даже если вызывающий запрос уже отменен:
// обрыв посреди списка оставил бы часть контактов без SMS и без записи в журнале.
func (d *Dispatcher) dispatch(ctx context.Context, kind string, record *models.AlertRecord, phones []string, body string) (*models.DispatchResult, error) {
	ctx = context.WithoutCancel(ctx)

	log := d.logger.WithFields(logrus.Fields{
		"component":  "alert_dispatcher",
		"kind":       kind,
		"recipients": len(phones),
	})

	results := make([]models.DeliveryResult, 0, len(phones))
	for _, phone := range phones {
		res := models.DeliveryResult{Phone: phone}
		id, err := d.Send(ctx, phone, body)
		if err != nil {
			res.Error = err.Error()
			log.WithError(err).WithField("phone", phone).Warn("Failed to send SMS alert")
		} else {
			res.Success = true
			res.MessageID = id
		}
		results = append(results, res)
	}

	record.ID = uuid.New()
	record.Timestamp = d.now().UTC()
	record.Status = models.AggregateStatus(results)
	record.Attempted = len(results)
	result := &models.DispatchResult{Alert: record, Results: results}
	record.Delivered = result.Delivered()

	d.metrics.AlertDispatched(kind, string(record.Status))
	log = log.WithField("alert_id", record.ID).WithField("summary", result.Summary())

	if err := d.alerts.CreateAlert(ctx, record); err != nil {
		log.WithError(err).Error("Failed to append alert record")
		return result, fmt.Errorf("alert: could not store alert record: %w", err)
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, webhook.NewWebhookEvent(kind, result)); err != nil {
			log.WithError(err).Warn("Failed to enqueue alert webhook")
		}
	}

	log.Info("Alert dispatched")
	return result, nil
}

func (d *Dispatcher) wait(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("alert: rate limiter: %w", err)
	}
	return nil
}

func resourceRecord(r *models.Resource, message string) *models.AlertRecord {
	id := r.ID
	return &models.AlertRecord{
		ResourceID:   &id,
		ResourceName: r.Name,
		Message:      message,
	}
}
