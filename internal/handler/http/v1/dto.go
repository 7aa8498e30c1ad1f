package v1

import (
	"time"

	"github.com/google/uuid"
	geojson "github.com/paulmach/go.geojson"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/models"
)

// CreateReportRequest DTO для создания отчета об инциденте.
// Координаты - указатели, чтобы 0 не считался пустым значением.
// @Description DTO для создания отчета об инциденте
type CreateReportRequest struct {
	Type        string   `json:"type" validate:"required,max=64"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	Timestamp   int64    `json:"timestamp,omitempty" validate:"omitempty,gt=0"` // epoch millis, по умолчанию текущее время
	Description string   `json:"description,omitempty" validate:"max=2000"`
}

// ReportResponse DTO для ответа с отчетом и его текущим риском
// @Description DTO для ответа с отчетом и его текущим риском
type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Coordinates []float64 `json:"coordinates"`
	Timestamp   int64     `json:"timestamp"`
	Description string    `json:"description,omitempty"`
	Risk        float64   `json:"risk"`
}

// LayerResponse DTO для установленного слоя тепловой карты
// @Description DTO для установленного слоя тепловой карты
type LayerResponse struct {
	ID        string                     `json:"id"`
	Version   uint64                     `json:"version"`
	UpdatedAt *time.Time                 `json:"updated_at,omitempty"`
	Layer     heatmap.LayerStyle         `json:"layer"`
	Data      *geojson.FeatureCollection `json:"data" swaggertype:"object"`
}

// ResourceRequest DTO для создания ресурса
// @Description DTO для создания ресурса
type ResourceRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	Category  string   `json:"category,omitempty" validate:"max=64"`
	Quantity  int      `json:"quantity" validate:"gte=0"`
	Threshold int      `json:"threshold" validate:"gte=0"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// UpdateQuantityRequest DTO для изменения количества ресурса
// @Description DTO для изменения количества ресурса
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CustomAlertRequest DTO для произвольного оповещения по ресурсу
// @Description DTO для произвольного оповещения по ресурсу
type CustomAlertRequest struct {
	Message string `json:"message" validate:"required,max=480"`
}

// ResourceResponse DTO для ответа с ресурсом
// @Description DTO для ответа с ресурсом
type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	LowStock  bool      `json:"low_stock"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DispatchResponse DTO с итогом рассылки
// @Description DTO с итогом рассылки
type DispatchResponse struct {
	Alert   *models.AlertRecord     `json:"alert"`
	Results []models.DeliveryResult `json:"results"`
	Summary string                  `json:"summary"`
}

// UpdateQuantityResponse DTO с обновленным ресурсом и оповещением, если оно было отправлено
// @Description DTO с обновленным ресурсом и оповещением, если оно было отправлено
type UpdateQuantityResponse struct {
	Resource *ResourceResponse `json:"resource"`
	Alert    *DispatchResponse `json:"alert,omitempty"`
}

// SMSRequest DTO для отправки одного SMS
// @Description DTO для отправки одного SMS
type SMSRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// EmergencyAlertRequest DTO для экстренной рассылки
// @Description DTO для экстренной рассылки
type EmergencyAlertRequest struct {
	PhoneNumbers []string `json:"phoneNumbers" validate:"required,min=1,dive,required"`
	Location     string   `json:"location,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// EmergencyAlertResponse DTO с результатом экстренной рассылки
// @Description DTO с результатом экстренной рассылки
type EmergencyAlertResponse struct {
	Success bool                    `json:"success"`
	Error   string                  `json:"error,omitempty"`
	Results []models.DeliveryResult `json:"results"`
	Summary string                  `json:"summary"`
}

// ContactRequest DTO для добавления получателя
// @Description DTO для добавления получателя
type ContactRequest struct {
	Name        string `json:"name,omitempty" validate:"max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
}

// LandslideRequest DTO с признаками участка
// @Description DTO с признаками участка
type LandslideRequest struct {
	Rainfall   float64 `json:"rainfall" validate:"gte=0"`
	Slope      float64 `json:"slope" validate:"gte=0,lte=90"`
	SoilType   float64 `json:"soil_type" validate:"gte=0,lte=3"`
	Vegetation float64 `json:"vegetation" validate:"gte=0,lte=100"`
	Elevation  float64 `json:"elevation" validate:"gte=0"`
}

// LandslideResponse DTO с вероятностью оползня
// @Description DTO с вероятностью оползня
type LandslideResponse struct {
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
}

// HealthResponse DTO со статусом сервиса
// @Description DTO со статусом сервиса
type HealthResponse struct {
	Status         string `json:"status"`
	LiveClients    int    `json:"live_clients"`
	Broadcasts     uint64 `json:"broadcasts"`
	OverlayVersion uint64 `json:"overlay_version"`
}
