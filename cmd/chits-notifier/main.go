package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/madhuerpdirect-droid/gts-chits/internal/amqp"
	"github.com/madhuerpdirect-droid/gts-chits/internal/backend"
	"github.com/madhuerpdirect-droid/gts-chits/internal/cli"
	applog "github.com/madhuerpdirect-droid/gts-chits/internal/log"
	"github.com/madhuerpdirect-droid/gts-chits/internal/notify"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting chits-notifier")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the notifier")
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}

	reg, err := registry.Load(context.Background(), result.Store)
	if err != nil {
		logger.Error("Failed to load registry", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Error("Failed to close AMQP client", "error", err)
		}
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	})

	useWeb := reg.WhatsAppUseWeb(ctx)
	nlog := applog.New(applog.Config{
		Handler:   logger.Handler(),
		Component: applog.ComponentNotifier,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.Consume(gctx, func(ctx context.Context, msg *notify.Message) error {
			url := notify.WhatsAppURL(msg.Phone, msg.Text, useWeb)
			nlog.InfoContext(ctx, "Notification ready",
				"kind", msg.Kind,
				applog.FieldPhone, msg.Phone,
				"url", url)
			return nil
		})
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped", "error", err)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("chits-notifier stopped")
}
