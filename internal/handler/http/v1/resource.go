package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// @Summary Create a resource
// @Description Register a stocked relief resource. Requires API key.
// @Tags Resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param resource body ResourceRequest true "Resource creation request"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources [post]
func (h *Handler) createResource(c *gin.Context) {
	var input ResourceRequest
	log := h.logger.WithField("method", "createResource")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToResourceModel(input)
	if err := h.resourceService.CreateResource(c.Request.Context(), model); err != nil {
		h.respondServiceError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToResourceResponse(model))
}

// @Summary Get a list of resources
// @Description Get all resources with their low stock flag. Requires API key.
// @Tags Resources
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ResourceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources [get]
func (h *Handler) listResources(c *gin.Context) {
	log := h.logger.WithField("method", "listResources")

	resources, err := h.resourceService.ListResources(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list resources from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToResourceResponses(resources))
}

// @Summary Get resource by ID
// @Description Get a single resource by its ID. Requires API key.
// @Tags Resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid resource ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Resource not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources/{id} [get]
func (h *Handler) getResource(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getResource").WithField("id", id)

	resource, err := h.resourceService.GetResource(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary Update resource quantity
// @Description Set a new quantity. When it drops to the threshold or below, every alert contact receives a low stock SMS. Requires API key.
// @Tags Resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Resource ID"
// @Param quantity body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} UpdateQuantityResponse
// @Failure 400 {object} map[string]string "Invalid resource ID, request body or negative quantity"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Resource not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources/{id}/quantity [patch]
func (h *Handler) updateQuantity(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateQuantity").WithField("id", id)

	var input UpdateQuantityRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	resource, result, err := h.resourceService.UpdateQuantity(c.Request.Context(), id, *input.Quantity)
	if err != nil {
		h.respondServiceError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, UpdateQuantityResponse{
		Resource: ModelToResourceResponse(resource),
		Alert:    ModelToDispatchResponse(result),
	})
}

// @Summary Send a custom alert for a resource
// @Description Send "ALERT: <name> - <message>" to every alert contact. Requires API key.
// @Tags Resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Resource ID"
// @Param alert body CustomAlertRequest true "Operator message"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid resource ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Resource not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources/{id}/alerts [post]
func (h *Handler) sendCustomAlert(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "sendCustomAlert").WithField("id", id)

	var input CustomAlertRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.resourceService.SendCustomAlert(c.Request.Context(), id, input.Message)
	if err != nil {
		h.respondServiceError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(result))
}

func parseResourceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource ID"})
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError отвечает статусом по ошибке сервиса; детали 500 не раскрываются
func (h *Handler) respondServiceError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch status := statusFor(err); status {
	case http.StatusNotFound:
		log.WithError(err).Warn("Entity not found")
		c.JSON(status, gin.H{"error": notFound})
	case http.StatusBadRequest:
		log.WithError(err).Warn("Rejected by service")
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(status, gin.H{"error": "internal server error"})
	}
}
