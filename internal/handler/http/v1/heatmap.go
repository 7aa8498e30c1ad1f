package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
)

// @Summary Get the risk heatmap
// @Description Current GeoJSON FeatureCollection of scored reports. Each point carries a risk property in [0,1].
// @Tags Heatmap
// @Produce json
// @Success 200 {object} object "GeoJSON FeatureCollection"
// @Router /heatmap [get]
func (h *Handler) getHeatmap(c *gin.Context) {
	c.JSON(http.StatusOK, h.overlay.Snapshot())
}

// @Summary Get the heatmap layer
// @Description Installed heatmap source with its layer style and version. Before the first refresh the default style and an empty collection are returned.
// @Tags Heatmap
// @Produce json
// @Success 200 {object} LayerResponse
// @Router /heatmap/layer [get]
func (h *Handler) getHeatmapLayer(c *gin.Context) {
	src, ok := h.overlay.Source()
	if !ok {
		c.JSON(http.StatusOK, LayerResponse{
			ID:    heatmap.SourceID,
			Layer: heatmap.DefaultLayerStyle(),
			Data:  h.overlay.Snapshot(),
		})
		return
	}

	updatedAt := src.UpdatedAt
	c.JSON(http.StatusOK, LayerResponse{
		ID:        src.ID,
		Version:   src.Version,
		UpdatedAt: &updatedAt,
		Layer:     src.Layer,
		Data:      src.Data,
	})
}

// @Summary Stream heatmap updates
// @Description Upgrade to WebSocket. The client receives the current overlay, then every refresh and risk drift tick.
// @Tags Heatmap
// @Success 101 "Switching Protocols"
// @Router /heatmap/stream [get]
func (h *Handler) streamHeatmap(c *gin.Context) {
	log := h.logger.WithField("method", "streamHeatmap")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.WithError(err).Warn("Failed to upgrade connection to WebSocket")
		return
	}
	h.live.Serve(conn)
	log.Debug("Live overlay client connected")
}
