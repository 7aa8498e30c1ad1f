package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/uttarakhand_safe/internal/feed"
	"github.com/shenikar/uttarakhand_safe/internal/metrics"
	"github.com/shenikar/uttarakhand_safe/internal/models"
	"github.com/shenikar/uttarakhand_safe/internal/risk"
	"github.com/sirupsen/logrus"
)

// ReportRepository определяет контракт для работы с бд отчетов
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	ListAll(ctx context.Context) ([]*models.Report, error)
}

// ReportService определяет контракт бизнес-логики отчетов об инцидентах
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error)
	RiskPoints(ctx context.Context, now time.Time) ([]models.RiskPoint, error)
}

type reportService struct {
	repo      ReportRepository
	publisher feed.Publisher
	metrics   *metrics.Collector
	logger    *logrus.Logger
	now       func() time.Time
}

func NewReportService(repo ReportRepository, publisher feed.Publisher, collector *metrics.Collector, logger *logrus.Logger) ReportService {
	return &reportService{
		repo:      repo,
		publisher: publisher,
		metrics:   collector,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateReport сохраняет отчет и публикует событие в ленту изменений
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "CreateReport",
		"type":    report.Type,
	})
	log.Info("Attempting to create a new report")

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Timestamp == 0 {
		report.Timestamp = s.now().UnixMilli()
	}

	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}
	s.metrics.ReportCreated()

	event := models.ReportEvent{Type: models.ReportEventCreated, Report: report, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// отчет уже сохранен, слой догонит его на следующем тике
		log.WithError(err).Warn("Failed to publish report change event")
	}

	log.WithField("report_id", report.ID).Info("Report created successfully")
	return nil
}

// GetReport получает отчет по ID
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from repository")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	return report, nil
}

// ListReports возвращает список отчетов с пагинацией
func (s *reportService) ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	page, pageSize = normalizePage(page, pageSize)

	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "ListReports",
		"page":      page,
		"page_size": pageSize,
	})

	reports, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	log.WithField("count", len(reports)).Debug("Reports listed successfully")
	return reports, nil
}

// RiskPoints оценивает все отчеты на момент now
func (s *reportService) RiskPoints(ctx context.Context, now time.Time) ([]models.RiskPoint, error) {
	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "report",
			"method":  "RiskPoints",
		}).WithError(err).Error("Failed to load reports")
		return nil, fmt.Errorf("service: could not load reports: %w", err)
	}
	return risk.Points(reports, now), nil
}

// normalizePage приводит параметры пагинации к допустимым значениям
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
