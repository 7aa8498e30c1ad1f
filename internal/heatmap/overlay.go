package heatmap

import (
	"fmt"
	"sync"
	"time"

	geojson "github.com/paulmach/go.geojson"
)

// Source - установленный источник данных со своим слоем
type Source struct {
	ID        string                     `json:"id"`
	Layer     LayerStyle                 `json:"layer"`
	Data      *geojson.FeatureCollection `json:"data"`
	Version   uint64                     `json:"version"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Overlay - серверное состояние слоев карты.
// Коллекции заменяются целиком и после установки не изменяются,
// поэтому читатели получают их без копирования.
type Overlay struct {
	mu      sync.RWMutex
	sources map[string]*Source
	now     func() time.Time
}

func NewOverlay() *Overlay {
	return &Overlay{
		sources: make(map[string]*Source),
		now:     time.Now,
	}
}

func (o *Overlay) HasSource(id string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.sources[id]
	return ok
}

func (o *Overlay) AddSource(id string, data *geojson.FeatureCollection, layer LayerStyle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sources[id] = &Source{
		ID:        id,
		Layer:     layer,
		Data:      data,
		Version:   1,
		UpdatedAt: o.now(),
	}
}

func (o *Overlay) SetData(id string, data *geojson.FeatureCollection) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	src, ok := o.sources[id]
	if !ok {
		return fmt.Errorf("overlay source %q not found", id)
	}
	// новая структура, чтобы ранее выданные снимки не менялись
	o.sources[id] = &Source{
		ID:        id,
		Layer:     src.Layer,
		Data:      data,
		Version:   src.Version + 1,
		UpdatedAt: o.now(),
	}
	return nil
}

// Source возвращает снимок источника
func (o *Overlay) Source(id string) (*Source, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	src, ok := o.sources[id]
	return src, ok
}

// Data возвращает текущую коллекцию источника или пустую, если он не установлен
func (o *Overlay) Data(id string) *geojson.FeatureCollection {
	if src, ok := o.Source(id); ok {
		return src.Data
	}
	return geojson.NewFeatureCollection()
}
