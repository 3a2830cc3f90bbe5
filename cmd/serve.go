package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/glbter/fund-returns/config"
	dashboardHttp "github.com/glbter/fund-returns/http"
	"github.com/glbter/fund-returns/returns/client/rabbit"
)

func loadConfig() *config.Config {
	path := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config validation:", err)
		os.Exit(1)
	}

	return cfg
}

func Execute() {
	cfg := loadConfig()

	logger, err := InitLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ds, err := LoadDataset(context.Background(), NewFundRepo(cfg))
	if err != nil {
		logger.Fatal(fmt.Errorf("load dataset: %w", err).Error())
	}
	logger.Info("dataset loaded",
		zap.String("source", datasetSource(cfg)),
		zap.Int("funds", len(ds.Funds)),
		zap.Int("periods", len(ds.Periods)),
	)

	periods, err := cfg.Periods()
	if err != nil {
		logger.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		publisher dashboardHttp.RenderPublisher = rabbit.NoopPublisher{}
		blockings <-chan amqp.Blocking
	)
	if cfg.Events.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.Events.RabbitURL)
		if err != nil {
			logger.Fatal(fmt.Errorf("connect to rabbitmq: %w", err).Error())
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Fatal(fmt.Errorf("open a channel: %w", err).Error())
		}
		defer ch.Close()

		client := rabbit.NewRenderEventClient(ch, cfg.Events.Queue)
		if err := client.DeclareQueue(); err != nil {
			logger.Fatal(err.Error())
		}
		publisher = client
		blockings = conn.NotifyBlocked(make(chan amqp.Blocking, 1))
		logger.Info("publishing render events", zap.String("queue", client.Queue()))
	}

	events := dashboardHttp.NewRenderEvents(publisher, cfg.Events.Buffer, logger)
	go events.Run(ctx)
	if blockings != nil {
		go WatchBlocked(ctx, blockings, events, logger)
	}

	handler := dashboardHttp.DashboardHandler{
		Logger:         logger,
		Dataset:        ds,
		DefaultPeriods: periods,
		Title:          cfg.Dashboard.Title,
		Events:         events,
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: dashboardHttp.NewRouter(handler, cfg.HTTP.RequestTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is starting", zap.String("url", localURL(cfg.HTTP.Addr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal(fmt.Errorf("serve: %w", err).Error())
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(fmt.Errorf("shutdown server: %w", err).Error())
		return
	}
	logger.Info("server stopped")
}

type blockable interface {
	SetBlocked(blocked bool)
}

// WatchBlocked forwards the broker's connection.blocked notifications until
// ctx is done or the connection closes.
func WatchBlocked(ctx context.Context, blockings <-chan amqp.Blocking, target blockable, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-blockings:
			if !ok {
				return
			}
			target.SetBlocked(b.Active)
			if b.Active {
				logger.Warn("rabbitmq connection blocked, render events paused", zap.String("reason", b.Reason))
			} else {
				logger.Info("rabbitmq connection unblocked")
			}
		}
	}
}

func datasetSource(cfg *config.Config) string {
	if cfg.Dataset.Path != "" {
		return cfg.Dataset.Path
	}

	return "built-in"
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/"
	}

	return "http://" + addr + "/"
}
