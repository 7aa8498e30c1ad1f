// Package metrics собирает Prometheus-метрики сервиса.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "uttarakhand_safe"

// Collector объединяет метрики сервиса. Методы безопасно вызывать на nil.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	ReportsCreated   prometheus.Counter
	OverlayRefreshes *prometheus.CounterVec
	OverlayFeatures  prometheus.Gauge
	OverlayDuration  prometheus.Histogram

	SMSSends         *prometheus.CounterVec
	AlertsDispatched *prometheus.CounterVec

	LiveClients prometheus.Gauge
	CurrentRisk prometheus.Gauge
}

// NewCollector регистрирует метрики в reg; при nil используется глобальный реестр
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of handled HTTP requests, labeled by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route"}),
		ReportsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_created_total",
			Help:      "Total number of incident reports accepted.",
		}),
		OverlayRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "refresh_total",
			Help:      "Total number of heatmap overlay refreshes, labeled by trigger and result.",
		}, []string{"trigger", "result"}),
		OverlayFeatures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "features",
			Help:      "Number of points in the current heatmap overlay.",
		}),
		OverlayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "refresh_duration_seconds",
			Help:      "Time to reload reports and rebuild the heatmap overlay.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		SMSSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "sends_total",
			Help:      "Total number of SMS send attempts, labeled by result.",
		}, []string{"result"}),
		AlertsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "dispatched_total",
			Help:      "Total number of alert dispatches, labeled by kind and aggregate status.",
		}, []string{"kind", "status"}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "clients",
			Help:      "Current number of connected overlay stream clients.",
		}),
		CurrentRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "simulated_risk",
			Help:      "Current value of the simulated risk drift.",
		}),
	}

	collectors := []prometheus.Collector{
		c.HTTPRequests, c.HTTPDurations, c.ReportsCreated,
		c.OverlayRefreshes, c.OverlayFeatures, c.OverlayDuration,
		c.SMSSends, c.AlertsDispatched, c.LiveClients, c.CurrentRisk,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
		}
	}
	return c, nil
}

// Handler отдает /metrics
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// GinMiddleware считает запросы и их длительность по шаблону маршрута
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		if c == nil {
			return
		}
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func (c *Collector) ReportCreated() {
	if c == nil {
		return
	}
	c.ReportsCreated.Inc()
}

func (c *Collector) OverlayRefreshed(trigger string, features int, took time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		c.OverlayFeatures.Set(float64(features))
	}
	c.OverlayRefreshes.WithLabelValues(trigger, result).Inc()
	c.OverlayDuration.Observe(took.Seconds())
}

func (c *Collector) SMSSent(success bool) {
	if c == nil {
		return
	}
	result := "ok"
	if !success {
		result = "error"
	}
	c.SMSSends.WithLabelValues(result).Inc()
}

func (c *Collector) AlertDispatched(kind, status string) {
	if c == nil {
		return
	}
	c.AlertsDispatched.WithLabelValues(kind, status).Inc()
}

func (c *Collector) SetLiveClients(n int) {
	if c == nil {
		return
	}
	c.LiveClients.Set(float64(n))
}

func (c *Collector) SetCurrentRisk(v float64) {
	if c == nil {
		return
	}
	c.CurrentRisk.Set(v)
}
