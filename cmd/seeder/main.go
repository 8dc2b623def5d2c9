package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	destroy := flag.Bool("d", false, "destroy all orders, products and users instead of importing")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(config.NewLogger(cfg.LogLevel, cfg.ServiceName+"-seeder"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		slog.Error("db open", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	users := &accounts.Repo{DB: db}
	products := &catalog.Repo{DB: db}
	ords := &orders.Repo{DB: db}

	if err := seed.Destroy(ctx, ords, products, users); err != nil {
		slog.Error("destroy", "err", err)
		os.Exit(1)
	}
	if !*destroy {
		if _, err := seed.Import(ctx, users, products, time.Now()); err != nil {
			slog.Error("import", "err", err)
			os.Exit(1)
		}
	}
	purgeCatalogCache(ctx, cfg.RedisAddr)
	slog.Info("seeder done", "destroyed_only", *destroy)
}

// purgeCatalogCache drops cached products so the API stops serving the
// catalog the seeder just replaced. A missing Redis only means no cache.
func purgeCatalogCache(ctx context.Context, addr string) {
	rdb := redisx.New(addr)
	defer func() { _ = rdb.Close() }()
	cache := &catalog.RedisCache{RDB: rdb}
	if err := cache.Purge(ctx); err != nil {
		slog.Warn("catalog cache not purged", "addr", addr, "err", err)
	}
}
