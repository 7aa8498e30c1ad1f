package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AlertStatus string

const (
	AlertStatusPending AlertStatus = "pending"
	AlertStatusSent    AlertStatus = "sent"
	AlertStatusFailed  AlertStatus = "failed"
)

// AlertRecord - запись журнала оповещений, только добавление
type AlertRecord struct {
	ID           uuid.UUID   `json:"id"`
	ResourceID   *uuid.UUID  `json:"resource_id,omitempty"` // nil для экстренных оповещений
	ResourceName string      `json:"resource_name"`
	Message      string      `json:"message"`
	Timestamp    time.Time   `json:"timestamp"`
	Status       AlertStatus `json:"status"`
	Attempted    int         `json:"attempted"`
	Delivered    int         `json:"delivered"`
}

// Contact - получатель SMS-оповещений
type Contact struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeliveryResult - результат отправки одному получателю
type DeliveryResult struct {
	Phone     string `json:"phone"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchResult - итог рассылки: запись журнала и результаты по каждому получателю
type DispatchResult struct {
	Alert   *AlertRecord     `json:"alert"`
	Results []DeliveryResult `json:"results"`
}

// Delivered возвращает число успешных отправок
func (d *DispatchResult) Delivered() int {
	n := 0
	for _, r := range d.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Summary возвращает агрегированный статус вида "sent: n/m"
func (d *DispatchResult) Summary() string {
	return fmt.Sprintf("sent: %d/%d", d.Delivered(), len(d.Results))
}

// AggregateStatus выводит статус записи из результатов отправки
func AggregateStatus(results []DeliveryResult) AlertStatus {
	if len(results) == 0 {
		return AlertStatusPending
	}
	for _, r := range results {
		if !r.Success {
			return AlertStatusFailed
		}
	}
	return AlertStatusSent
}
