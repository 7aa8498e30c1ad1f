package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/uttarakhand_safe/internal/models"
)

const (
	webhookQueueKey = "alert_webhook_events"
)

// WebhookEvent - данные вебхука о выполненной рассылке
type WebhookEvent struct {
	AlertID      uuid.UUID               `json:"alert_id"`
	Kind         string                  `json:"kind"`
	ResourceID   *uuid.UUID              `json:"resource_id,omitempty"`
	ResourceName string                  `json:"resource_name,omitempty"`
	Message      string                  `json:"message"`
	Status       models.AlertStatus      `json:"status"`
	Summary      string                  `json:"summary"`
	Results      []models.DeliveryResult `json:"results,omitempty"`
	Timestamp    time.Time               `json:"timestamp"`
}

// NewWebhookEvent собирает событие из результата рассылки
func NewWebhookEvent(kind string, res *models.DispatchResult) WebhookEvent {
	return WebhookEvent{
		AlertID:      res.Alert.ID,
		Kind:         kind,
		ResourceID:   res.Alert.ResourceID,
		ResourceName: res.Alert.ResourceName,
		Message:      res.Alert.Message,
		Status:       res.Alert.Status,
		Summary:      res.Summary(),
		Results:      res.Results,
		Timestamp:    res.Alert.Timestamp,
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
