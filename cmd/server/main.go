package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/httpserver"
	"github.com/Skotchmaster/campus_bites/internal/menu"
	"github.com/Skotchmaster/campus_bites/internal/repo"
	"github.com/Skotchmaster/campus_bites/internal/service"
	"github.com/Skotchmaster/campus_bites/pkg/config"
	pkgdb "github.com/Skotchmaster/campus_bites/pkg/db"
	"github.com/Skotchmaster/campus_bites/pkg/logging"
	"github.com/Skotchmaster/campus_bites/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/campus_bites/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.StaffPasscodeHash, "STAFF_PASSCODE_HASH")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	if err := gormRepo.Migrate(initCtx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	catalog := menu.Default()
	searcher := newSearcher(initCtx, cfg, catalog, logger)
	cancel()

	// Cancelled at shutdown: ends background consumers and open kitchen streams.
	baseCtx, stopBackground := context.WithCancel(logging.IntoContext(context.Background(), logger))

	hub := events.NewHub(events.DefaultBuffer)
	publishers := events.Multi{hub}

	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, kafkaPub)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := events.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram_disabled", "error", err)
		} else {
			updates, unsubscribe := hub.Subscribe()
			defer unsubscribe()
			go notifier.Run(baseCtx, updates)
			logger.Info("telegram_enabled", "chat_id", cfg.TelegramChatID)
		}
	}

	orderSvc := &service.OrderService{Repo: gormRepo, Menu: catalog, Events: publishers}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	httpserver.Register(e, &httpserver.Deps{
		MenuHandler:  &httpserver.MenuHTTP{Catalog: catalog, Searcher: searcher},
		CartHandler:  &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo, Menu: catalog}},
		OrderHandler: &httpserver.OrderHTTP{Svc: orderSvc},
		KitchenHandler: &httpserver.KitchenHTTP{
			Svc: &service.KitchenService{
				Orders:       orderSvc,
				Hub:          hub,
				PollInterval: cfg.PollInterval,
			},
			JWTSecret:    cfg.JWTAccessSecret,
			PasscodeHash: cfg.StaffPasscodeHash,
			TokenTTL:     cfg.StaffTokenTTL,
		},
		JWTSecret: cfg.JWTAccessSecret,
		DB:        db,
		CSRF: csrf.Middleware(csrf.Config{
			SkipPaths: []string{"/api/v1/kitchen/login"},
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")
	stopBackground()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}

	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("server_stopped")
}

// newSearcher prefers Elasticsearch when configured and falls back to the
// in-memory matcher when the cluster is absent or cannot be seeded.
func newSearcher(ctx context.Context, cfg config.Config, catalog *menu.Catalog, logger *slog.Logger) menu.Searcher {
	fallback := &menu.MemorySearcher{Catalog: catalog}
	if cfg.ESURL == "" {
		return fallback
	}

	client, err := menu.NewESClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		logger.Warn("elasticsearch_unavailable", "error", err)
		return fallback
	}

	es := &menu.ESSearcher{ES: client, Index: cfg.ESIndex, Catalog: catalog}
	if err := es.Seed(ctx); err != nil {
		logger.Warn("elasticsearch_seed_failed", "error", err)
		return fallback
	}

	logger.Info("elasticsearch_enabled", "index", cfg.ESIndex)
	return es
}
