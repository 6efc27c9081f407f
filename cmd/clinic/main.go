package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/app"
	"github.com/Freeeeeet/clinic_scheduler/internal/config"
	"github.com/Freeeeeet/clinic_scheduler/internal/controller"
	"github.com/Freeeeeet/clinic_scheduler/internal/controller/httpapi"
	"github.com/Freeeeeet/clinic_scheduler/internal/formatting"
	"github.com/Freeeeeet/clinic_scheduler/internal/observability/metrics"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting clinic scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("bot_enabled", cfg.BotEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolCfg, err := pgxpool.ParseConfig(cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to parse DB_DSN", zap.Error(err))
	}
	poolCfg.MaxConns = cfg.DBMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	schedulingMetrics := metrics.NewSchedulingMetrics(registry)

	// Репозитории
	sessionRepo := repository.NewSessionRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	holidayRepo := repository.NewHolidayRepository(pool, logger)
	mappingRepo := repository.NewServiceMappingRepository(pool)
	txManager := repository.NewPostgresTxManager(pool)

	// Сервисы
	dataService := service.NewAppointmentDataService(
		sessionRepo,
		appointmentRepo,
		service.NewHolidayEvaluator(holidayRepo, logger),
		service.NewServiceDurationResolver(mappingRepo),
		cfg.Location,
		logger,
	)
	generator := service.NewSlotGenerator(
		service.SystemClock{},
		cfg.Location,
		formatting.NewTimeFormatter(cfg.TimeFormat, cfg.Location),
	)
	slotService := service.NewSlotService(dataService, generator, schedulingMetrics, logger)
	sessionService := service.NewDoctorSessionService(
		sessionRepo,
		txManager,
		service.NewSessionSplitter(logger),
		schedulingMetrics,
		logger,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(slotService, sessionService, registry, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var botRunner app.BotRunner
	if cfg.BotEnabled() {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		botRunner = controller.NewBotController(b, slotService, sessionService, logger)
	}

	if err := app.NewRunner(server, botRunner, logger).Run(ctx); err != nil {
		logger.Error("Stopped with error", zap.Error(err))
		return
	}

	logger.Info("Clinic scheduler stopped")
}
