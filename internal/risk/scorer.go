// Package risk вычисляет вес риска отчета для тепловой карты.
package risk

import (
	"time"

	"github.com/shenikar/uttarakhand_safe/internal/models"
)

// DecayWindow - период, за который вес отчета линейно падает до нуля
const DecayWindow = 24 * time.Hour

// DefaultSeverity применяется к неизвестным типам отчетов
const DefaultSeverity = 0.4

var severityWeights = map[string]float64{
	models.ReportTypeMedicalEmergency: 1.0,
	models.ReportTypeNaturalDisaster:  0.8,
	models.ReportTypeAccident:         0.6,
	models.ReportTypeOther:            0.4,
}

// SeverityWeight возвращает вес категории отчета
func SeverityWeight(reportType string) float64 {
	if w, ok := severityWeights[reportType]; ok {
		return w
	}
	return DefaultSeverity
}

// TimeDecay возвращает множитель затухания в [0,1]: 1 в момент now, 0 через DecayWindow.
// Метки из будущего дают 1.
func TimeDecay(ts, now time.Time) float64 {
	age := now.Sub(ts)
	if age <= 0 {
		return 1
	}
	decay := 1 - float64(age.Milliseconds())/float64(DecayWindow.Milliseconds())
	if decay < 0 {
		return 0
	}
	return decay
}

// Score вычисляет риск отчета в момент now
func Score(report *models.Report, now time.Time) float64 {
	return SeverityWeight(report.Type) * TimeDecay(report.Time(), now)
}

// Points строит точки риска для набора отчетов
func Points(reports []*models.Report, now time.Time) []models.RiskPoint {
	points := make([]models.RiskPoint, 0, len(reports))
	for _, r := range reports {
		points = append(points, models.RiskPoint{
			ReportID:  r.ID,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Risk:      Score(r, now),
		})
	}
	return points
}
