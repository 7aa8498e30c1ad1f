package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUpdateQuantity_TriggersAlert(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	resource := &models.Resource{ID: id, Name: "Water", Quantity: 2, Threshold: 5}
	result := &models.DispatchResult{
		Alert:   &models.AlertRecord{ID: uuid.New(), ResourceID: &id, ResourceName: "Water", Status: models.AlertStatusSent, Attempted: 1, Delivered: 1},
		Results: []models.DeliveryResult{{Phone: "+911", Success: true}},
	}

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), id, 2).Return(resource, result, nil).Times(1)

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", id), jsonBody(t, map[string]int{"quantity": 2}), apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp UpdateQuantityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Resource.LowStock)
	require.NotNil(t, resp.Alert)
	assert.Equal(t, "sent: 1/1", resp.Alert.Summary)
}

func TestUpdateQuantity_NoAlert(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	resource := &models.Resource{ID: id, Name: "Water", Quantity: 8, Threshold: 5}

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), id, 8).Return(resource, nil, nil)

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", id), jsonBody(t, map[string]int{"quantity": 8}), apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"alert"`)
}

func TestUpdateQuantity_ZeroIsValid(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), id, 0).Return(&models.Resource{ID: id}, nil, nil)

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", id), jsonBody(t, map[string]int{"quantity": 0}), apiKeyAuth)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateQuantity_MissingQuantity(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", uuid.New()), jsonBody(t, map[string]int{}), apiKeyAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantity_Negative(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), id, -3).Return(nil, nil, fmt.Errorf("service: %w", service.ErrNegativeQuantity))

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", id), jsonBody(t, map[string]int{"quantity": -3}), apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must not be negative")
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()

	m.resources.EXPECT().UpdateQuantity(gomock.Any(), id, 4).Return(nil, nil, fmt.Errorf("service: %w", service.ErrNotFound))

	w := makeRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/resources/%s/quantity", id), jsonBody(t, map[string]int{"quantity": 4}), apiKeyAuth)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "resource not found")
}

func TestCreateResource(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := ResourceRequest{Name: "Blankets", Category: "shelter", Quantity: 40, Threshold: 10, Latitude: coord(30.3), Longitude: coord(78.0)}

	m.resources.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/resources", jsonBody(t, reqBody), apiKeyAuth)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ResourceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Blankets", resp.Name)
	assert.False(t, resp.LowStock)
}

func TestCreateResource_ZeroCoordinates(t *testing.T) {
	_, m, router := newTestHandler(t)
	reqBody := ResourceRequest{Name: "Water", Quantity: 5, Latitude: coord(0), Longitude: coord(0)}

	m.resources.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(nil)

	w := makeRequest(router, http.MethodPost, "/api/v1/resources", jsonBody(t, reqBody), apiKeyAuth)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ResourceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Latitude)
	assert.Zero(t, resp.Longitude)
}

func TestCreateResource_ValidationError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.resources.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPost, "/api/v1/resources", jsonBody(t, ResourceRequest{Name: "Blankets", Quantity: -1, Latitude: coord(30), Longitude: coord(78)}), apiKeyAuth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Quantity' failed on the 'gte' tag")
}

func TestGetResource(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()

	m.resources.EXPECT().GetResource(gomock.Any(), id).Return(&models.Resource{ID: id, Name: "Tents", Quantity: 3, Threshold: 3}, nil)

	w := makeRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/resources/%s", id), nil, apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"low_stock":true`)
}

func TestListResources_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.resources.EXPECT().ListResources(gomock.Any()).Return(nil, errors.New("db down"))

	w := makeRequest(router, http.MethodGet, "/api/v1/resources", nil, apiKeyAuth)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendCustomAlert(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	result := &models.DispatchResult{
		Alert:   &models.AlertRecord{ID: uuid.New(), Message: "Road blocked", Status: models.AlertStatusFailed, Attempted: 2, Delivered: 1},
		Results: []models.DeliveryResult{{Phone: "+911", Success: true}, {Phone: "+912", Error: "invalid number"}},
	}

	m.resources.EXPECT().SendCustomAlert(gomock.Any(), id, "Road blocked").Return(result, nil)

	w := makeRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/resources/%s/alerts", id), jsonBody(t, CustomAlertRequest{Message: "Road blocked"}), apiKeyAuth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sent: 1/2", resp.Summary)
	assert.Equal(t, models.AlertStatusFailed, resp.Alert.Status)
}
