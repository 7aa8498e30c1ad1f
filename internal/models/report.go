package models

import (
	"time"

	"github.com/google/uuid"
)

// Категории отчетов об инцидентах
const (
	ReportTypeMedicalEmergency = "Medical Emergency"
	ReportTypeNaturalDisaster  = "Natural Disaster"
	ReportTypeAccident         = "Accident"
	ReportTypeOther            = "Other"
)

// Report - отчет об инциденте, неизменяемый после создания
type Report struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timestamp   int64     `json:"timestamp"` // epoch millis
	Description string    `json:"description"`
}

// Coordinates возвращает координаты в порядке GeoJSON: [lon, lat]
func (r *Report) Coordinates() []float64 {
	return []float64{r.Longitude, r.Latitude}
}

// Time возвращает метку времени отчета как time.Time
func (r *Report) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// RiskPoint - производная точка тепловой карты, не сохраняется
type RiskPoint struct {
	ReportID  uuid.UUID `json:"report_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Risk      float64   `json:"risk"`
}

// ReportEventCreated - единственный тип изменения: отчеты не обновляются и не удаляются
const ReportEventCreated = "created"

// ReportEvent - событие ленты изменений отчетов
type ReportEvent struct {
	Type   string    `json:"type"`
	Report *Report   `json:"report"`
	At     time.Time `json:"at"`
}
