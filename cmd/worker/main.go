package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	medapp "meusmedicamentos/application/medicamento"
	"meusmedicamentos/cmd"
	"meusmedicamentos/config"
	"meusmedicamentos/infrastructure/messaging"
	"meusmedicamentos/infrastructure/messaging/kafka"
	"meusmedicamentos/infrastructure/persistence/mysql"
	"meusmedicamentos/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.Type == cmd.StorageMock || cfg.Database.Type == "" {
		return errors.New("worker needs a SQL store; set database.type to mysql or postgres")
	}

	services, err := cmd.NewServices(cfg)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	relay, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(services.DB),
		publisher,
		logger.Named("outbox"),
		cfg.Worker.OutboxPollInterval,
		cfg.Worker.OutboxBatchSize,
		cfg.Worker.OutboxMaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Worker started",
		zap.Duration("outbox_poll_interval", cfg.Worker.OutboxPollInterval),
		zap.Int("outbox_batch_size", cfg.Worker.OutboxBatchSize),
		zap.Duration("expiry_scan_interval", cfg.Worker.ExpiryScanInterval),
		zap.Int("alert_window_days", cfg.Worker.AlertWindowDays),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return relay.Run(ctx)
	})
	g.Go(func() error {
		return scanExpiry(ctx, services.Medicamentos, cfg.Worker)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker exited with error: %w", err)
	}

	logger.Info("Worker stopped")
	return nil
}

// newPublisher picks Kafka when brokers are configured, otherwise events are only logged.
func newPublisher(cfg *config.Config) (messaging.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured; outbox events will be logged")
		return messaging.NewLoggingPublisher(logger.Named("publisher")), func() {}, nil
	}

	p, err := kafka.NewPublisher(cfg.Kafka, logger.Named("kafka"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return p, func() {
		if err := p.Close(); err != nil {
			logger.Warn("Kafka publisher close failed", zap.Error(err))
		}
	}, nil
}

// scanExpiry raises expiry alerts once at startup and then every ExpiryScanInterval.
func scanExpiry(ctx context.Context, svc *medapp.Service, cfg config.WorkerConfig) error {
	interval := cfg.ExpiryScanInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := svc.SinalizarVencimentos(ctx, medapp.SinalizarVencimentos{JanelaDias: cfg.AlertWindowDays})
		switch {
		case err != nil:
			logger.Error("Expiry scan failed", zap.Error(err))
		case !res.Succeeded():
			logger.Warn("Expiry scan rejected", zap.Strings("errors", res.Errors()))
		default:
			logger.Info("Expiry scan finished", zap.Int("alerts", res.Value()))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
