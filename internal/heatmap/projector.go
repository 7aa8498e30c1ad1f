// Package heatmap строит слой тепловой карты риска и хранит его текущее состояние.
package heatmap

import (
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/risk"
)

// SourceID - идентификатор источника и слоя тепловой карты
const SourceID = "risk-heatmap"

// Свойства точки в коллекции
const (
	PropertyRisk     = "risk"
	PropertyReportID = "id"
	PropertyType     = "type"
)

// Renderer - получатель слоя: либо создает источник, либо заменяет его данные
type Renderer interface {
	HasSource(id string) bool
	AddSource(id string, data *geojson.FeatureCollection, layer LayerStyle)
	SetData(id string, data *geojson.FeatureCollection) error
}

// Project превращает отчеты в коллекцию точек со свойством risk.
// Каждый вызов строит коллекцию заново.
func Project(reports []*models.Report, now time.Time) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range reports {
		f := geojson.NewPointFeature(r.Coordinates())
		f.SetProperty(PropertyRisk, risk.Score(r, now))
		f.SetProperty(PropertyReportID, r.ID.String())
		f.SetProperty(PropertyType, r.Type)
		fc.AddFeature(f)
	}
	return fc
}

// Refresh проецирует отчеты и устанавливает результат в renderer.
// Возвращает коллекцию и признак того, что источник был создан.
func Refresh(renderer Renderer, reports []*models.Report, now time.Time) (*geojson.FeatureCollection, bool, error) {
	fc := Project(reports, now)
	if !renderer.HasSource(SourceID) {
		renderer.AddSource(SourceID, fc, DefaultLayerStyle())
		return fc, true, nil
	}
	if err := renderer.SetData(SourceID, fc); err != nil {
		return nil, false, err
	}
	return fc, false, nil
}
