package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/sms"
)

// @Summary Send a single SMS
// @Description Gateway endpoint used by the frontend: sends one message to one phone.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param sms body SMSRequest true "Phone and message"
// @Success 200 {object} sms.Envelope
// @Failure 400 {object} sms.Envelope "Invalid request body"
// @Failure 500 {object} sms.Envelope "Error sending alert"
// @Router /alert [post]
func (h *Handler) sendSMS(c *gin.Context) {
	var input SMSRequest
	log := h.logger.WithField("method", "sendSMS")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, sms.Envelope{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, sms.Envelope{Error: err.Error()})
		return
	}

	if _, err := h.alertService.SendSMS(c.Request.Context(), input.Phone, input.Message); err != nil {
		log.WithError(err).Error("Failed to send SMS")
		c.JSON(http.StatusInternalServerError, sms.Envelope{Error: "Error sending alert"})
		return
	}
	c.JSON(http.StatusOK, sms.Envelope{Success: true})
}

// @Summary Send an emergency alert
// @Description Send an emergency message with its location to the given phone numbers. The response lists the outcome per recipient.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param alert body EmergencyAlertRequest true "Recipients, location and message"
// @Success 200 {object} EmergencyAlertResponse
// @Failure 400 {object} EmergencyAlertResponse "Invalid request body"
// @Failure 500 {object} EmergencyAlertResponse "Internal server error"
// @Router /send-emergency-alert [post]
func (h *Handler) sendEmergencyAlert(c *gin.Context) {
	var input EmergencyAlertRequest
	log := h.logger.WithField("method", "sendEmergencyAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, EmergencyAlertResponse{Error: "invalid request body", Results: []models.DeliveryResult{}})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, EmergencyAlertResponse{Error: err.Error(), Results: []models.DeliveryResult{}})
		return
	}

	result, err := h.alertService.SendEmergencyAlert(c.Request.Context(), input.PhoneNumbers, input.Location, input.Message)
	if err != nil && result == nil {
		status := statusFor(err)
		msg := "internal server error"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		log.WithError(err).Error("Failed to send emergency alert")
		c.JSON(status, EmergencyAlertResponse{Error: msg, Results: []models.DeliveryResult{}})
		return
	}

	resp := EmergencyAlertResponse{
		Success: result.Alert.Status == models.AlertStatusSent,
		Results: result.Results,
		Summary: result.Summary(),
	}
	if !resp.Success {
		resp.Error = "some alerts were not delivered"
	}
	if err != nil {
		// рассылка прошла, но запись в журнал не сохранилась
		log.WithError(err).Error("Emergency alert sent without journal record")
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get alert history
// @Description Get a paginated list of dispatched alerts, newest first. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} models.AlertRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")
	page, pageSize := paging(c)

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// @Summary Get alert contacts
// @Description Get every phone that receives resource alerts. Requires API key.
// @Tags Contacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Contact
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	log := h.logger.WithField("method", "listContacts")

	contacts, err := h.alertService.ListContacts(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list contacts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// @Summary Add an alert contact
// @Description Add a phone in E.164 format to the alert list. The dispatcher reloads its recipients. Requires API key.
// @Tags Contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param contact body ContactRequest true "Contact"
// @Success 201 {object} models.Contact
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contacts [post]
func (h *Handler) addContact(c *gin.Context) {
	var input ContactRequest
	log := h.logger.WithField("method", "addContact")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	contact := &models.Contact{Name: input.Name, PhoneNumber: input.PhoneNumber}
	if err := h.alertService.AddContact(c.Request.Context(), contact); err != nil {
		log.WithError(err).Error("Failed to add contact in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, contact)
}
