package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	geojson "github.com/paulmach/go.geojson"
	feed_mocks "github.com/shenikar/uttarakhand_safe/internal/feed/mocks"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/hub"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type overlayMocks struct {
	reports     *mocks.MockReportRepository
	subscriber  *feed_mocks.MockSubscriber
	broadcaster *mocks.MockBroadcaster
	ctrl        *gomock.Controller
}

func newTestOverlayPipeline(t *testing.T, interval time.Duration) (*OverlayPipeline, overlayMocks) {
	ctrl := gomock.NewController(t)
	m := overlayMocks{
		reports:     mocks.NewMockReportRepository(ctrl),
		subscriber:  feed_mocks.NewMockSubscriber(ctrl),
		broadcaster: mocks.NewMockBroadcaster(ctrl),
		ctrl:        ctrl,
	}
	p := NewOverlayPipeline(m.reports, m.subscriber, heatmap.NewOverlay(), m.broadcaster, nil, newTestLogger(), interval)
	p.now = func() time.Time { return testNow }
	return p, m
}

func TestOverlayRefresh_CreatesThenReplaces(t *testing.T) {
	p, m := newTestOverlayPipeline(t, time.Minute)
	ctx := context.Background()
	report := &models.Report{ID: uuid.New(), Type: models.ReportTypeMedicalEmergency, Latitude: 30.7, Longitude: 79.5, Timestamp: testNow.UnixMilli()}

	m.reports.EXPECT().ListAll(ctx).Return([]*models.Report{report}, nil).Times(2)
	m.broadcaster.EXPECT().Broadcast(hub.MessageOverlay, gomock.Any()).Times(2)

	first, err := p.Refresh(ctx, TriggerStartup)
	require.NoError(t, err)
	second, err := p.Refresh(ctx, TriggerTick)
	require.NoError(t, err)

	// повторный пересчет заменяет данные, а не добавляет
	assert.Len(t, second.Features, 1)
	assert.Equal(t, len(first.Features), len(second.Features))

	src, ok := p.Source()
	require.True(t, ok)
	assert.Equal(t, uint64(2), src.Version)
	assert.Equal(t, []float64{79.5, 30.7}, src.Data.Features[0].Geometry.Point)
	assert.Same(t, second, p.Snapshot())
}

func TestOverlayRefresh_LoadError(t *testing.T) {
	p, m := newTestOverlayPipeline(t, time.Minute)
	ctx := context.Background()

	m.reports.EXPECT().ListAll(ctx).Return(nil, errors.New("db down"))

	_, err := p.Refresh(ctx, TriggerTick)
	require.Error(t, err)
	assert.Empty(t, p.Snapshot().Features)
}

func TestOverlayRun_RefreshesOnEvent(t *testing.T) {
	p, m := newTestOverlayPipeline(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan models.ReportEvent, 1)
	sub := feed_mocks.NewMockSubscription(m.ctrl)
	sub.EXPECT().Events().Return(events)
	sub.EXPECT().Close().Return(nil)
	m.subscriber.EXPECT().Subscribe(gomock.Any()).Return(sub, nil)

	report := &models.Report{ID: uuid.New(), Type: models.ReportTypeAccident, Timestamp: testNow.UnixMilli()}
	gomock.InOrder(
		m.reports.EXPECT().ListAll(gomock.Any()).Return(nil, nil),
		m.reports.EXPECT().ListAll(gomock.Any()).Return([]*models.Report{report}, nil),
	)

	broadcasts := make(chan *geojson.FeatureCollection, 2)
	m.broadcaster.EXPECT().Broadcast(hub.MessageOverlay, gomock.Any()).
		Do(func(_ string, data any) { broadcasts <- data.(*geojson.FeatureCollection) }).
		Times(2)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	startup := <-broadcasts
	assert.Empty(t, startup.Features)

	events <- models.ReportEvent{Type: models.ReportEventCreated, Report: report, At: testNow}

	select {
	case fc := <-broadcasts:
		assert.Len(t, fc.Features, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("overlay was not refreshed on report event")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop")
	}
}

func TestOverlayRun_FallsBackToTicker(t *testing.T) {
	p, m := newTestOverlayPipeline(t, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.subscriber.EXPECT().Subscribe(gomock.Any()).Return(nil, errors.New("redis down"))
	m.reports.EXPECT().ListAll(gomock.Any()).Return(nil, nil).MinTimes(2)

	ticks := make(chan struct{}, 16)
	m.broadcaster.EXPECT().Broadcast(hub.MessageOverlay, gomock.Any()).
		Do(func(string, any) {
			select {
			case ticks <- struct{}{}:
			default:
			}
		}).
		MinTimes(2)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatal("periodic refresh did not happen")
		}
	}
	cancel()
	<-done
}
