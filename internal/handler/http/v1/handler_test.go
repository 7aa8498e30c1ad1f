package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	geojson "github.com/paulmach/go.geojson"
	"github.com/shenikar/uttarakhand_safe/internal/config"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/landslide"
	"github.com/shenikar/uttarakhand_safe/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testNow    = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	apiKeyAuth = map[string]string{"X-API-Key": "test-api-key"}
)

type testMocks struct {
	reports   *mocks.MockReportService
	resources *mocks.MockResourceService
	alerts    *mocks.MockAlertService
	overlay   *fakeOverlay
	live      *fakeHub
}

type fakeOverlay struct {
	source *heatmap.Source
}

func (f *fakeOverlay) Snapshot() *geojson.FeatureCollection {
	if f.source == nil {
		return geojson.NewFeatureCollection()
	}
	return f.source.Data
}

func (f *fakeOverlay) Source() (*heatmap.Source, bool) {
	return f.source, f.source != nil
}

type fakeHub struct {
	mu    sync.Mutex
	conns []*websocket.Conn
}

func (f *fakeHub) Serve(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns = append(f.conns, conn)
}

func (f *fakeHub) Stats() (int, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns), 7
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		reports:   mocks.NewMockReportService(ctrl),
		resources: mocks.NewMockResourceService(ctrl),
		alerts:    mocks.NewMockAlertService(ctrl),
		overlay:   &fakeOverlay{},
		live:      &fakeHub{},
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(Services{
		Reports:   m.reports,
		Resources: m.resources,
		Alerts:    m.alerts,
		Overlay:   m.overlay,
		Live:      m.live,
		Landslide: landslide.NewModel(42),
	}, logger, cfg)
	handler.now = func() time.Time { return testNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHealthCheck(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.overlay.source = &heatmap.Source{ID: heatmap.SourceID, Version: 3, Data: geojson.NewFeatureCollection()}

	w := makeRequest(router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, uint64(3), resp.OverlayVersion)
	assert.Equal(t, uint64(7), resp.Broadcasts)
}

func TestPredictLandslide(t *testing.T) {
	_, _, router := newTestHandler(t)
	req := LandslideRequest{Rainfall: 250, Slope: 35, SoilType: 2, Vegetation: 40, Elevation: 2200}

	first := makeRequest(router, http.MethodPost, "/api/v1/landslide/predict", jsonBody(t, req))
	second := makeRequest(router, http.MethodPost, "/api/v1/landslide/predict", jsonBody(t, req))

	require.Equal(t, http.StatusOK, first.Code)
	var resp LandslideResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	assert.Greater(t, resp.Probability, 0.0)
	assert.Less(t, resp.Probability, 1.0)
	assert.Equal(t, landslide.RiskLevel(resp.Probability), resp.RiskLevel)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestPredictLandslide_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/api/v1/landslide/predict", jsonBody(t, LandslideRequest{Slope: 120}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Slope' failed on the 'lte' tag")
}

func TestAPIKeyAuth(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.resources.EXPECT().ListResources(gomock.Any()).Times(0) // Сервис не должен вызываться

	missing := makeRequest(router, http.MethodGet, "/api/v1/resources", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Contains(t, missing.Body.String(), "API key required")

	invalid := makeRequest(router, http.MethodGet, "/api/v1/resources", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, invalid.Code)
	assert.Contains(t, invalid.Body.String(), "Invalid API key")
}

func TestAPIKeyAuth_Bearer(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().ListContacts(gomock.Any()).Return(nil, nil)

	w := makeRequest(router, http.MethodGet, "/api/v1/contacts", nil, map[string]string{"Authorization": "Bearer test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}
