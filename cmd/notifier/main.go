package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-storefront/internal/config"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/notify"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	service := cfg.ServiceName + "-notifier"
	slog.SetDefault(config.NewLogger(cfg.LogLevel, service))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("redis", "addr", cfg.RedisAddr, "err", err)
		os.Exit(1)
	}

	svc := &notify.Service{Redis: rdb, ServiceName: service}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroup, orders.Topics, cfg.NotifierWorkers)

	slog.Info("notifier consuming", "group", cfg.NotifierGroup, "topics", orders.Topics, "workers", cfg.NotifierWorkers)
	if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
		slog.Error("consumer exit", "err", err)
		os.Exit(1)
	}
	slog.Info("notifier stopped")
}
