package heatmap

// LayerStyle - описание слоя в формате, который понимает картографический клиент
type LayerStyle struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Source  string         `json:"source"`
	MaxZoom int            `json:"maxzoom,omitempty"`
	Paint   map[string]any `json:"paint"`
}

// DefaultLayerStyle - вес по свойству risk, градиент от синего к красному по плотности
func DefaultLayerStyle() LayerStyle {
	return LayerStyle{
		ID:     SourceID,
		Type:   "heatmap",
		Source: SourceID,
		Paint: map[string]any{
			"heatmap-weight":    []any{"get", PropertyRisk},
			"heatmap-intensity": 1,
			"heatmap-color": []any{
				"interpolate",
				[]any{"linear"},
				[]any{"heatmap-density"},
				0, "rgba(0, 0, 255, 0)",
				0.2, "rgba(0, 0, 255, 0.5)",
				0.4, "rgba(0, 255, 0, 0.5)",
				0.6, "rgba(255, 255, 0, 0.5)",
				0.8, "rgba(255, 126, 0, 0.5)",
				1, "rgba(255, 0, 0, 0.5)",
			},
			"heatmap-radius":  30,
			"heatmap-opacity": 0.8,
		},
	}
}
