package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/glbter/fund-returns/returns/client/rabbit"
)

// ExecuteAudit consumes render events and logs them until interrupted.
func ExecuteAudit() {
	cfg := loadConfig()

	logger, err := InitLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Events.RabbitURL == "" {
		logger.Fatal("rabbit url is empty")
	}

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

	msgs, err := client.ReceiveRenders()
	if err != nil {
		logger.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("audit is starting", zap.String("queue", client.Queue()))
	ConsumeRenders(ctx, msgs, logger)
	logger.Info("audit stopped")
}

// ConsumeRenders logs every render event until ctx is done or the channel
// closes. Malformed messages are rejected without requeue.
func ConsumeRenders(ctx context.Context, msgs <-chan amqp.Delivery, logger *zap.Logger) int {
	handled := 0
	for {
		select {
		case <-ctx.Done():
			return handled
		case msg, ok := <-msgs:
			if !ok {
				return handled
			}

			event, err := rabbit.DecodeRender(msg)
			if err != nil {
				logger.Error(err.Error(), zap.String("cid", msg.CorrelationId))
				if err := msg.Reject(false); err != nil {
					logger.Error(fmt.Errorf("reject render event: %w", err).Error())
				}
				continue
			}

			logger.Info("render",
				zap.String("rid", event.ID),
				zap.Strings("funds", event.Funds),
				zap.Int("periods", len(event.Periods)),
				zap.Int("records", event.Records),
				zap.Time("at", event.At),
			)
			if err := msg.Ack(false); err != nil {
				logger.Error(fmt.Errorf("acknowledge render event: %w", err).Error())
			}
			handled++
		}
	}
}
