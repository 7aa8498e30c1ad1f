package feed

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) (*RedisFeed, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewRedisFeed(client, "reports:changes", logger), mr
}

func TestRedisFeed_PublishSubscribe(t *testing.T) {
	f, _ := newTestFeed(t)
	ctx := context.Background()

	sub, err := f.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	report := &models.Report{ID: uuid.New(), Type: models.ReportTypeAccident, Latitude: 30.1, Longitude: 79.1, Timestamp: 1700000000000}
	require.NoError(t, f.Publish(ctx, models.ReportEvent{Type: models.ReportEventCreated, Report: report, At: time.Unix(1700000000, 0).UTC()}))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, models.ReportEventCreated, ev.Type)
		require.NotNil(t, ev.Report)
		assert.Equal(t, report.ID, ev.Report.ID)
		assert.Equal(t, report.Longitude, ev.Report.Longitude)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestRedisFeed_SkipsMalformedPayload(t *testing.T) {
	f, mr := newTestFeed(t)
	ctx := context.Background()

	sub, err := f.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish("reports:changes", "not-json")
	require.NoError(t, f.Publish(ctx, models.ReportEvent{Type: models.ReportEventCreated, Report: &models.Report{ID: uuid.New()}}))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, models.ReportEventCreated, ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("valid event was not delivered")
	}
}

func TestRedisFeed_CloseEndsEvents(t *testing.T) {
	f, _ := newTestFeed(t)

	sub, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}

func TestRedisFeed_SubscribeFailsWhenRedisDown(t *testing.T) {
	f, mr := newTestFeed(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := f.Subscribe(ctx)
	assert.Error(t, err)
}
