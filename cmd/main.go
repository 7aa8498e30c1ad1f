package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/time/rate"

	"github.com/shenikar/uttarakhand_safe/internal/alert"
	"github.com/shenikar/uttarakhand_safe/internal/config"
	"github.com/shenikar/uttarakhand_safe/internal/feed"
	v1 "github.com/shenikar/uttarakhand_safe/internal/handler/http/v1"
	"github.com/shenikar/uttarakhand_safe/internal/heatmap"
	"github.com/shenikar/uttarakhand_safe/internal/hub"
	"github.com/shenikar/uttarakhand_safe/internal/landslide"
	"github.com/shenikar/uttarakhand_safe/internal/metrics"
	"github.com/shenikar/uttarakhand_safe/internal/repository"
	"github.com/shenikar/uttarakhand_safe/internal/service"
	"github.com/shenikar/uttarakhand_safe/internal/sms"
	"github.com/shenikar/uttarakhand_safe/internal/webhook"
	"github.com/shenikar/uttarakhand_safe/pkg/logger"
	"github.com/shenikar/uttarakhand_safe/pkg/postgres"
	redisclient "github.com/shenikar/uttarakhand_safe/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/uttarakhand_safe/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title UttarakhandSafe Risk Overlay API
// @version 1.0
// @description Incident reports, live risk heatmap, relief resources and SMS alerting for Uttarakhand.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Инициализация репозиториев
	reportRepo := repository.NewReportRepository(dbpool)
	resourceRepo := repository.NewResourceRepository(dbpool, redisClient, cfg.ResourceCacheTTL)
	alertRepo := repository.NewAlertRepository(dbpool)
	contactRepo := repository.NewContactRepository(dbpool)

	// Лента изменений отчетов
	reportFeed := feed.NewRedisFeed(redisClient, cfg.ReportFeedKey, log)

	// Слой тепловой карты и WebSocket-хаб
	var pipeline *service.OverlayPipeline
	liveHub := hub.NewHub(log, func() *hub.Message {
		return &hub.Message{Type: hub.MessageOverlay, Data: pipeline.Snapshot(), Timestamp: time.Now().UTC()}
	}, collector.SetLiveClients)
	pipeline = service.NewOverlayPipeline(reportRepo, reportFeed, heatmap.NewOverlay(), liveHub, collector, log, cfg.OverlayRefreshInterval)

	drift := heatmap.NewDrift(cfg.InitialRisk, cfg.RiskDriftInterval, uint64(time.Now().UnixNano()))

	var wg sync.WaitGroup
	runBackground := func(fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	runBackground(liveHub.Run)
	runBackground(pipeline.Run)
	runBackground(func(ctx context.Context) {
		drift.Run(ctx, func(value float64) {
			collector.SetCurrentRisk(value)
			liveHub.Broadcast(hub.MessageDrift, gin.H{
				"risk":  value,
				"pulse": heatmap.Pulse(time.Now(), value),
			})
		})
	})

	// SMS и диспетчер оповещений
	sender, err := sms.NewSender(cfg, log)
	if err != nil {
		log.Fatalf("Failed to create SMS sender: %v", err)
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.SMSRatePerSecond), 1)

	var webhookPublisher webhook.WebhookPublisher
	if cfg.WebhookURL != "" {
		webhookPublisher = webhook.NewRedisWebhookPublisher(redisClient)

		// Инициализация и запуск воркера вебхуков
		webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
		runBackground(webhookWorker.Run)
	}

	dispatcher := alert.NewDispatcher(sender, contactRepo, alertRepo, webhookPublisher, limiter, collector, log)
	if err := dispatcher.LoadContacts(ctx); err != nil {
		log.WithError(err).Warn("Failed to load alert contacts, resource alerts will have no recipients")
	}

	// Инициализация сервисов
	reportService := service.NewReportService(reportRepo, reportFeed, collector, log)
	resourceService := service.NewResourceService(resourceRepo, dispatcher, log)
	alertService := service.NewAlertService(alertRepo, contactRepo, dispatcher, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Reports:   reportService,
		Resources: resourceService,
		Alerts:    alertService,
		Overlay:   pipeline,
		Live:      liveHub,
		Landslide: landslide.NewModel(cfg.LandslideSeed),
	}, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(collector.GinMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(collector.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Останавливаем фоновые циклы до закрытия Redis и PostgreSQL
	cancel()
	wg.Wait()

	log.Info("Server gracefully stopped")
}
