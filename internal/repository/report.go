package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/service"
)

const reportColumns = `
			id,
			type,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			reported_at,
			description`

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) service.ReportRepository {
	return &ReportRepository{db: db}
}

// Create сохраняет новый отчет в бд
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, type, location, reported_at, description)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.Type,
		report.Longitude,
		report.Latitude,
		report.Timestamp,
		report.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID возвращает отчет по его UUID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`
	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// List возвращает страницу отчетов, новые первыми
func (r *ReportRepository) List(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY reported_at DESC LIMIT $1 OFFSET $2;`
	return r.query(ctx, query, pageSize, offset)
}

// ListAll возвращает все отчеты: тепловая карта пересчитывается целиком
func (r *ReportRepository) ListAll(ctx context.Context) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY reported_at DESC;`
	return r.query(ctx, query)
}

func (r *ReportRepository) query(ctx context.Context, query string, args ...any) ([]*models.Report, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return reports, nil
}

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.Type,
		&report.Latitude,
		&report.Longitude,
		&report.Timestamp,
		&report.Description,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}
