package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/notify"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/seed"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(config.NewLogger(cfg.LogLevel, cfg.ServiceName))

	if err := cfg.Validate(); err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("api exited", "err", err)
		os.Exit(1)
	}
}

// backends are the stores and side channels the API runs on.
type backends struct {
	users    accounts.Store
	products catalog.Store
	orders   orders.Store
	cache    catalog.Cache
	events   orders.Publisher
	feed     httpx.NotificationFeed
	checks   []httpx.HealthCheck
	close    func()
}

func memoryBackends(ctx context.Context) (*backends, error) {
	users := accounts.NewMemoryStore()
	products := catalog.NewMemoryStore()
	if _, err := seed.Import(ctx, users, products, time.Now()); err != nil {
		return nil, err
	}
	return &backends{
		users:    users,
		products: products,
		orders:   orders.NewMemoryStore(users),
		close:    func() {},
	}, nil
}

func postgresBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	rdb := redisx.New(cfg.RedisAddr)
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, catalog cache will miss", "addr", cfg.RedisAddr, "err", err)
	}

	// The producer outlives the request context so in-flight events flush
	// after the server stops.
	prodCtx, cancelProd := context.WithCancel(context.Background())
	prod := kafkax.NewProducer(cfg.KafkaBrokers, 1024)
	prod.Start(prodCtx)

	return &backends{
		users:    &accounts.Repo{DB: db},
		products: &catalog.Repo{DB: db},
		orders:   &orders.Repo{DB: db},
		cache:    &catalog.RedisCache{RDB: rdb},
		events:   prod,
		feed:     &notify.Service{Redis: rdb, ServiceName: cfg.ServiceName},
		checks: []httpx.HealthCheck{
			{Name: "postgres", Check: db.Ping},
			{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		close: func() {
			prod.Close()
			prod.WaitClosed()
			cancelProd()
			_ = rdb.Close()
			db.Close()
		},
	}, nil
}

func run(ctx context.Context, cfg config.Config) error {
	var (
		b   *backends
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		b, err = memoryBackends(ctx)
	default:
		b, err = postgresBackends(ctx, cfg)
	}
	if err != nil {
		return err
	}
	defer b.close()

	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	api := &httpx.API{
		Accounts:       accounts.NewService(b.users, tokens),
		Catalog:        catalog.NewService(b.products, b.cache),
		Orders:         orders.NewService(b.orders, b.events, cfg.ServiceName),
		Notifications:  b.feed,
		Tokens:         tokens,
		UploadDir:      cfg.UploadDir,
		PayPalClientID: cfg.PayPalClientID,
		Production:     cfg.Production(),
		Now:            time.Now,
	}
	router := httpx.NewRouter(api, b.checks...)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
