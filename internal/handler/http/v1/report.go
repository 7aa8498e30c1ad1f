package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Create an incident report
// @Description Store a new incident report and publish it to the live overlay.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report creation request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToReportModel(input)
	if err := h.reportService.CreateReport(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(model, h.now()))
}

// @Summary Get a list of reports
// @Description Get a paginated list of reports, newest first, each with its current risk.
// @Tags Reports
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} ReportResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	page, pageSize := paging(c)

	reports, err := h.reportService.ListReports(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports, h.now()))
}

// @Summary Get report by ID
// @Description Get a single report by its ID.
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			log.WithError(err).Warn("Report not found")
			c.JSON(status, gin.H{"error": "report not found"})
			return
		}
		log.WithError(err).Error("Failed to get report from service")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report, h.now()))
}

// @Summary Get risk points
// @Description Score every report at the current time.
// @Tags Reports
// @Produce json
// @Success 200 {array} models.RiskPoint
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/risk [get]
func (h *Handler) riskPoints(c *gin.Context) {
	log := h.logger.WithField("method", "riskPoints")

	points, err := h.reportService.RiskPoints(c.Request.Context(), h.now())
	if err != nil {
		log.WithError(err).Error("Failed to score reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, points)
}
