package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service"
)

const resourceColumns = `
			id,
			name,
			category,
			quantity,
			threshold,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			created_at,
			updated_at`

type ResourceRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewResourceRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.ResourceRepository {
	return &ResourceRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новый ресурс в бд
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (name, category, quantity, threshold, location)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		resource.Name,
		resource.Category,
		resource.Quantity,
		resource.Threshold,
		resource.Longitude,
		resource.Latitude,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// GetByID возвращает ресурс по его UUID
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1;`
	resource, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("resource with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resource by id: %w", err)
	}
	return resource, nil
}

// List возвращает все ресурсы, отсортированные по имени
func (r *ResourceRepository) List(ctx context.Context) ([]*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return resources, nil
}

// UpdateQuantity записывает новое количество и возвращает обновленный ресурс
func (r *ResourceRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.Resource, error) {
	query := `
		UPDATE resources SET
			quantity = $1,
			updated_at = NOW()
		WHERE id = $2
		RETURNING ` + resourceColumns + `;
	`
	resource, err := scanResource(r.db.QueryRow(ctx, query, quantity, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("resource with id %s not found for update: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update resource quantity: %w", err)
	}
	return resource, nil
}

// GetResourceFromCache пытается получить ресурс из Redis, (nil, nil) при промахе
func (r *ResourceRepository) GetResourceFromCache(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	val, err := r.redisClient.Get(ctx, resourceCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resource from cache: %w", err)
	}

	resource := &models.Resource{}
	if err := json.Unmarshal(val, resource); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resource from cache: %w", err)
	}
	return resource, nil
}

// SetResourceCache сохраняет ресурс в Redis
func (r *ResourceRepository) SetResourceCache(ctx context.Context, resource *models.Resource) error {
	val, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to marshal resource for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, resourceCacheKey(resource.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set resource in cache: %w", err)
	}
	return nil
}

// InvalidateResourceCache удаляет ресурс из Redis кэша
func (r *ResourceRepository) InvalidateResourceCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, resourceCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate resource cache: %w", err)
	}
	return nil
}

func resourceCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("resource:%s", id.String())
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	resource := &models.Resource{}
	err := row.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Category,
		&resource.Quantity,
		&resource.Threshold,
		&resource.Latitude,
		&resource.Longitude,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return resource, nil
}
