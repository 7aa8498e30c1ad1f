package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// CreateAlert добавляет запись в журнал оповещений
func (r *AlertRepository) CreateAlert(ctx context.Context, alert *models.AlertRecord) error {
	query := `
		INSERT INTO alerts (id, resource_id, resource_name, message, status, attempted, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.ResourceID,
		alert.ResourceName,
		alert.Message,
		string(alert.Status),
		alert.Attempted,
		alert.Delivered,
		alert.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert record: %w", err)
	}
	return nil
}

// ListAlerts возвращает журнал оповещений, новые первыми
func (r *AlertRepository) ListAlerts(ctx context.Context, page, pageSize int) ([]*models.AlertRecord, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT id, resource_id, resource_name, message, status, attempted, delivered, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.AlertRecord, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return alerts, nil
}

func scanAlert(row pgx.Row) (*models.AlertRecord, error) {
	alert := &models.AlertRecord{}
	var status string
	err := row.Scan(
		&alert.ID,
		&alert.ResourceID,
		&alert.ResourceName,
		&alert.Message,
		&status,
		&alert.Attempted,
		&alert.Delivered,
		&alert.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	alert.Status = models.AlertStatus(status)
	return alert, nil
}
