package v1

import (
	"time"

	"github.com/shenikar/uttarakhand_safe/internal/landslide"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/risk"
)

// DTOToReportModel преобразует DTO создания в доменную модель
func DTOToReportModel(dto CreateReportRequest) *models.Report {
	return &models.Report{
		Type:        dto.Type,
		Latitude:    *dto.Latitude,
		Longitude:   *dto.Longitude,
		Timestamp:   dto.Timestamp,
		Description: dto.Description,
	}
}

// ModelToReportResponse преобразует отчет в DTO, оценивая риск на момент now
func ModelToReportResponse(model *models.Report, now time.Time) *ReportResponse {
	return &ReportResponse{
		ID:          model.ID,
		Type:        model.Type,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Coordinates: model.Coordinates(),
		Timestamp:   model.Timestamp,
		Description: model.Description,
		Risk:        risk.Score(model, now),
	}
}

// ModelsToReportResponses преобразует слайс отчетов в слайс DTO
func ModelsToReportResponses(reports []*models.Report, now time.Time) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, model := range reports {
		responses[i] = ModelToReportResponse(model, now)
	}
	return responses
}

func DTOToResourceModel(dto ResourceRequest) *models.Resource {
	return &models.Resource{
		Name:      dto.Name,
		Category:  dto.Category,
		Quantity:  dto.Quantity,
		Threshold: dto.Threshold,
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
	}
}

func ModelToResourceResponse(model *models.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:        model.ID,
		Name:      model.Name,
		Category:  model.Category,
		Quantity:  model.Quantity,
		Threshold: model.Threshold,
		LowStock:  model.IsLowStock(),
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ModelsToResourceResponses(resources []*models.Resource) []*ResourceResponse {
	responses := make([]*ResourceResponse, len(resources))
	for i, model := range resources {
		responses[i] = ModelToResourceResponse(model)
	}
	return responses
}

// ModelToDispatchResponse возвращает nil для отсутствующего результата
func ModelToDispatchResponse(res *models.DispatchResult) *DispatchResponse {
	if res == nil {
		return nil
	}
	results := res.Results
	if results == nil {
		results = []models.DeliveryResult{}
	}
	return &DispatchResponse{
		Alert:   res.Alert,
		Results: results,
		Summary: res.Summary(),
	}
}

func DTOToLandslideFeatures(dto LandslideRequest) landslide.Features {
	return landslide.Features{
		Rainfall:   dto.Rainfall,
		Slope:      dto.Slope,
		SoilType:   dto.SoilType,
		Vegetation: dto.Vegetation,
		Elevation:  dto.Elevation,
	}
}
