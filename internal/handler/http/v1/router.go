package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// SMS-шлюз: контракт фронтенда
	api.POST("/alert", h.sendSMS)
	api.POST("/send-emergency-alert", h.sendEmergencyAlert)

	// Отчеты об инцидентах
	reports := api.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/risk", h.riskPoints)
		reports.GET("/:id", h.getReport)
	}

	// Слой тепловой карты
	heat := api.Group("/heatmap")
	{
		heat.GET("", h.getHeatmap)
		heat.GET("/layer", h.getHeatmapLayer)
		heat.GET("/stream", h.streamHeatmap)
	}

	// Учет ресурсов, журнал и контакты требуют API-ключ
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	resources := api.Group("/resources", auth)
	{
		resources.POST("", h.createResource)
		resources.GET("", h.listResources)
		resources.GET("/:id", h.getResource)
		resources.PATCH("/:id/quantity", h.updateQuantity)
		resources.POST("/:id/alerts", h.sendCustomAlert)
	}

	api.GET("/alerts", auth, h.listAlerts)

	contacts := api.Group("/contacts", auth)
	{
		contacts.GET("", h.listContacts)
		contacts.POST("", h.addContact)
	}

	api.POST("/landslide/predict", h.predictLandslide)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
