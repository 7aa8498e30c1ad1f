package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/shenikar/uttarakhand_safe/internal/feed"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/hub"
	"github.com/shenikar/uttarakhand_safe/internal/metrics"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/sirupsen/logrus"
)

// Источники пересчета слоя
const (
	TriggerStartup = "startup"
	TriggerEvent   = "event"
	TriggerTick    = "tick"
)

// Broadcaster рассылает сообщения живым клиентам
type Broadcaster interface {
	Broadcast(msgType string, data any)
}

// OverlayPipeline держит слой тепловой карты в актуальном состоянии:
// пересчитывает его на каждое событие ленты и по таймеру, чтобы было видно затухание.
type OverlayPipeline struct {
	reports     ReportRepository
	subscriber  feed.Subscriber
	overlay     *heatmap.Overlay
	broadcaster Broadcaster
	metrics     *metrics.Collector
	logger      *logrus.Logger
	interval    time.Duration
	now         func() time.Time

	refreshMu sync.Mutex
}

func NewOverlayPipeline(
	reports ReportRepository,
	subscriber feed.Subscriber,
	overlay *heatmap.Overlay,
	broadcaster Broadcaster,
	collector *metrics.Collector,
	logger *logrus.Logger,
	interval time.Duration,
) *OverlayPipeline {
	return &OverlayPipeline{
		reports:     reports,
		subscriber:  subscriber,
		overlay:     overlay,
		broadcaster: broadcaster,
		metrics:     collector,
		logger:      logger,
		interval:    interval,
		now:         time.Now,
	}
}

// Refresh перечитывает все отчеты, строит слой и рассылает его клиентам
func (p *OverlayPipeline) Refresh(ctx context.Context, trigger string) (*geojson.FeatureCollection, error) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	log := p.logger.WithFields(logrus.Fields{
		"service": "overlay",
		"method":  "Refresh",
		"trigger": trigger,
	})

	reports, err := p.reports.ListAll(ctx)
	if err != nil {
		p.metrics.OverlayRefreshed(trigger, 0, time.Since(start), err)
		log.WithError(err).Error("Failed to load reports for overlay")
		return nil, fmt.Errorf("service: could not load reports: %w", err)
	}

	fc, created, err := heatmap.Refresh(p.overlay, reports, p.now())
	p.metrics.OverlayRefreshed(trigger, len(reports), time.Since(start), err)
	if err != nil {
		log.WithError(err).Error("Failed to apply overlay")
		return nil, fmt.Errorf("service: could not apply overlay: %w", err)
	}

	if p.broadcaster != nil {
		p.broadcaster.Broadcast(hub.MessageOverlay, fc)
	}
	log.WithFields(logrus.Fields{"features": len(fc.Features), "created": created}).Debug("Overlay refreshed")
	return fc, nil
}

// Run выполняет первичный пересчет и обслуживает ленту изменений до отмены ctx.
// Без подписки слой продолжает обновляться по таймеру.
func (p *OverlayPipeline) Run(ctx context.Context) {
	log := p.logger.WithField("service", "overlay")
	log.Info("Starting overlay pipeline...")

	_, _ = p.Refresh(ctx, TriggerStartup)

	var events <-chan models.ReportEvent
	sub, err := p.subscriber.Subscribe(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to subscribe to report feed, falling back to periodic refresh")
	} else {
		defer sub.Close()
		events = sub.Events()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping overlay pipeline.")
			return
		case event, ok := <-events:
			if !ok {
				log.Warn("Report feed closed, continuing with periodic refresh")
				events = nil
				continue
			}
			if event.Report != nil {
				log.WithField("report_id", event.Report.ID).Debug("Report change received")
			}
			_, _ = p.Refresh(ctx, TriggerEvent)
		case <-ticker.C:
			_, _ = p.Refresh(ctx, TriggerTick)
		}
	}
}

// Snapshot возвращает текущую коллекцию слоя
func (p *OverlayPipeline) Snapshot() *geojson.FeatureCollection {
	return p.overlay.Data(heatmap.SourceID)
}

// Source возвращает установленный источник вместе со стилем слоя
func (p *OverlayPipeline) Source() (*heatmap.Source, bool) {
	return p.overlay.Source(heatmap.SourceID)
}
