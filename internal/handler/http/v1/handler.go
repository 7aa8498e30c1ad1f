package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	geojson "github.com/paulmach/go.geojson"
	"github.com/shenikar/uttarakhand_safe/internal/config"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/landslide"
	"github.com/shenikar/uttarakhand_safe/internal/service"
	"github.com/sirupsen/logrus"
)

// OverlayView - чтение текущего слоя тепловой карты
type OverlayView interface {
	Snapshot() *geojson.FeatureCollection
	Source() (*heatmap.Source, bool)
}

// LiveHub - рассылка слоя по WebSocket
type LiveHub interface {
	Serve(conn *websocket.Conn)
	Stats() (int, uint64)
}

// Services - зависимости хэндлеров
type Services struct {
	Reports   service.ReportService
	Resources service.ResourceService
	Alerts    service.AlertService
	Overlay   OverlayView
	Live      LiveHub
	Landslide landslide.Predictor
}

type Handler struct {
	reportService   service.ReportService
	resourceService service.ResourceService
	alertService    service.AlertService
	overlay         OverlayView
	live            LiveHub
	predictor       landslide.Predictor
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	upgrader        websocket.Upgrader
	now             func() time.Time
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService:   services.Reports,
		resourceService: services.Resources,
		alertService:    services.Alerts,
		overlay:         services.Overlay,
		live:            services.Live,
		predictor:       services.Landslide,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // карта открывается с другого origin
			},
		},
		now: time.Now,
	}
}

// bindAndValidate читает JSON и проверяет DTO; при ошибке уже отвечает 400
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// statusFor выбирает HTTP-статус по ошибке сервиса
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNegativeQuantity),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrNoRecipients):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func paging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return page, pageSize
}

// @Summary Predict landslide probability
// @Description Run the placeholder landslide network on site features. The model is untrained; output is deterministic.
// @Tags Landslide
// @Accept json
// @Produce json
// @Param features body LandslideRequest true "Site features"
// @Success 200 {object} LandslideResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /landslide/predict [post]
func (h *Handler) predictLandslide(c *gin.Context) {
	var input LandslideRequest
	log := h.logger.WithField("method", "predictLandslide")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	p := h.predictor.Predict(DTOToLandslideFeatures(input))
	c.JSON(http.StatusOK, LandslideResponse{Probability: p, RiskLevel: landslide.RiskLevel(p)})
}

// @Summary Get application health status
// @Description Get health status of the application with live overlay statistics
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if h.live != nil {
		resp.LiveClients, resp.Broadcasts = h.live.Stats()
	}
	if h.overlay != nil {
		if src, ok := h.overlay.Source(); ok {
			resp.OverlayVersion = src.Version
		}
	}
	c.JSON(http.StatusOK, resp)
}
