// Package feed - лента изменений отчетов поверх Redis pub/sub.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/sirupsen/logrus"
)

const eventBuffer = 64

// Publisher публикует события об изменении отчетов
type Publisher interface {
	Publish(ctx context.Context, event models.ReportEvent) error
}

// Subscription - подписка на ленту. Events закрывается после Close или обрыва подписки.
type Subscription interface {
	Events() <-chan models.ReportEvent
	Close() error
}

// Subscriber открывает подписки на ленту
type Subscriber interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// RedisFeed публикует и читает события в канале Redis
type RedisFeed struct {
	redisClient *redis.Client
	channel     string
	logger      *logrus.Logger
}

// NewRedisFeed создает ленту на канале channel
func NewRedisFeed(client *redis.Client, channel string, logger *logrus.Logger) *RedisFeed {
	return &RedisFeed{
		redisClient: client,
		channel:     channel,
		logger:      logger,
	}
}

// Publish публикует событие в канал Redis
func (f *RedisFeed) Publish(ctx context.Context, event models.ReportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}
	if err := f.redisClient.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish report event to Redis: %w", err)
	}
	return nil
}

// Subscribe подписывается на канал и дожидается подтверждения подписки
func (f *RedisFeed) Subscribe(ctx context.Context) (Subscription, error) {
	pubsub := f.redisClient.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to report feed: %w", err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan models.ReportEvent, eventBuffer),
		done:   make(chan struct{}),
	}
	go sub.pump(f.logger.WithField("channel", f.channel))
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan models.ReportEvent
	done   chan struct{}
	once   sync.Once
}

func (s *redisSubscription) Events() <-chan models.ReportEvent {
	return s.events
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *redisSubscription) pump(log *logrus.Entry) {
	defer close(s.events)
	messages := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event models.ReportEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.WithError(err).Error("Failed to unmarshal report event")
				continue
			}
			select {
			case s.events <- event:
			case <-s.done:
				return
			}
		}
	}
}
