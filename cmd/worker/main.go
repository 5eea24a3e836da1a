package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/apex-portal/adapters/event"
	"github.com/khoahotran/apex-portal/adapters/persistence"
	eventsUC "github.com/khoahotran/apex-portal/internal/application/usecase/events"
	"github.com/khoahotran/apex-portal/internal/config"
	"github.com/khoahotran/apex-portal/pkg/logger"
	"github.com/khoahotran/apex-portal/pkg/tracing"
)

func main() {
	fmt.Println("Starting Apex Portal Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	shutdownTracing, err := tracing.Setup(cfg, appLogger, "apex-portal-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	eventRepo := persistence.NewPostgresProfileEventRepo(dbPool, appLogger)

	// Worker Use Case
	recordEventUC := eventsUC.NewRecordProfileEventUseCase(eventRepo, appLogger)

	// Kafka Consumer
	reader := event.NewProfileEventsReader(cfg)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents), zap.String("group_id", cfg.Kafka.GroupID))

	event.NewProfileEventConsumer(reader, recordEventUC.Execute, appLogger).Run(ctx)
	appLogger.Info("Worker stopping")
}
