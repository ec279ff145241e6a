package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"kpm/internal/domain/auth"
	"kpm/internal/domain/entry"
	"kpm/internal/domain/migration"
	"kpm/internal/domain/stats"
	"kpm/internal/domain/template"
	"kpm/internal/identity"
	"kpm/internal/platform/config"
	"kpm/internal/platform/db"
	"kpm/internal/platform/metrics"
	authhandler "kpm/internal/transport/http/handlers/auth"
	entryhandler "kpm/internal/transport/http/handlers/entries"
	migrationhandler "kpm/internal/transport/http/handlers/migration"
	statshandler "kpm/internal/transport/http/handlers/stats"
	templatehandler "kpm/internal/transport/http/handlers/templates"
	"kpm/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()
	identityClient := identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityTimeout)

	templateStore := template.NewStore(pool)
	templateService := template.NewService(templateStore)

	entryStore := entry.NewStore(pool)
	entryService := entry.NewService(entryStore, templateStore)

	migrationService := migration.NewService(entryService, templateStore, identityClient)
	statsService := stats.NewService(entryStore, templateStore, identityClient)

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		templatehandler.NewHandler(templateService).RegisterRoutes(r)
		entryhandler.NewHandler(entryService, collector).RegisterRoutes(r)
		migrationhandler.NewHandler(migrationService, collector).RegisterRoutes(r)
		statshandler.NewHandler(statsService).RegisterRoutes(r)
	})

	slog.Info("kpm server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
