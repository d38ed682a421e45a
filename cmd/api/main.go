package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adpulse/campaign-metrics-api/infrastructure/cache"
	"github.com/adpulse/campaign-metrics-api/infrastructure/database/postgres"
	"github.com/adpulse/campaign-metrics-api/infrastructure/repository"
	"github.com/adpulse/campaign-metrics-api/internal/api"
	"github.com/adpulse/campaign-metrics-api/internal/config"
	"github.com/adpulse/campaign-metrics-api/internal/metrics"
	"github.com/adpulse/campaign-metrics-api/internal/scheduler"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/authenticating"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/performance"
	"github.com/adpulse/campaign-metrics-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	snapshotRepo := repository.NewPerformanceSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	appMetrics := metrics.New()

	generator := performance.NewGenerator()
	aggregator := performance.NewAggregator(
		snapshotRepo,
		time.Duration(cfg.PerformanceSync.WindowMinutes)*time.Minute,
	)

	reportingService := reporting.NewService(snapshotRepo)
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			// The API runs fine without the cache, just slower on hot reads.
			logrus.WithError(err).Warn("redis unavailable, continuing without snapshot cache")
		} else {
			defer redisCache.Close()
			reportingService = reportingService.WithCache(
				redisCache,
				time.Duration(cfg.Redis.SnapshotCacheTTLSecs)*time.Second,
			)
		}
	}

	performanceSyncService := scheduler.NewPerformanceSyncService(
		campaignRepo,
		productRepo,
		snapshotRepo,
		generator,
		aggregator,
		appMetrics,
		cfg,
	)

	if err := performanceSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start performance sync scheduler")
	} else {
		logrus.Info("performance sync scheduler started")
	}

	server, err := api.New(
		cfg,
		reportingService,
		authenticator,
		performanceSyncService,
		appMetrics,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger sets the log format and anchors the working directory at
// the binary's source dir so the .env lookup behaves the same everywhere.
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
