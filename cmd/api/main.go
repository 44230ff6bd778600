package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/laisvitor/wedding-backend/internal/http/handlers"
	mw "github.com/laisvitor/wedding-backend/internal/http/middleware"
	"github.com/laisvitor/wedding-backend/internal/platform/session"
	"github.com/laisvitor/wedding-backend/internal/repo/postgres"
	"github.com/laisvitor/wedding-backend/pkg/config"
	"github.com/laisvitor/wedding-backend/pkg/database"
	"github.com/laisvitor/wedding-backend/pkg/events"
	"github.com/laisvitor/wedding-backend/pkg/logger"
	pkgmw "github.com/laisvitor/wedding-backend/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Schema setup failures are logged but do not stop the server; the
	// database may already be provisioned externally.
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		logger.Error("Schema setup failed", "error", err)
	} else if err := postgres.Seed(ctx, pool, cfg.Seed); err != nil {
		logger.Error("Seed failed", "error", err)
	}

	// Session store: redis when configured, otherwise in-memory
	var sessions session.Store
	if cfg.Redis.URL != "" {
		redisStore, err := session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		sessions = redisStore
		logger.Info("Using redis session store")
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		logger.Info("Using in-memory session store; sessions are lost on restart")
	}

	// Event bus: NATS when configured, otherwise a noop
	var bus events.Publisher
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		bus = natsBus
	} else {
		bus = events.NoopBus{}
	}

	// Initialize repositories
	adminsRepo := postgres.NewAdminsRepo(pool)
	guestsRepo := postgres.NewGuestsRepo(pool)
	giftsRepo := postgres.NewGiftsRepo(pool)
	testimonialsRepo := postgres.NewTestimonialsRepo(pool)
	statsRepo := postgres.NewStatsRepo(pool)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(adminsRepo, sessions)
	rsvpHandler := handlers.NewRSVPHandler(guestsRepo, bus)
	testimonialsHandler := handlers.NewTestimonialsHandler(guestsRepo, testimonialsRepo, bus)
	giftsHandler := handlers.NewGiftsHandler(giftsRepo)
	guestsHandler := handlers.NewGuestsHandler(guestsRepo, bus)
	dashboardHandler := handlers.NewDashboardHandler(statsRepo)

	requireAdmin := mw.RequireAdmin(sessions)

	// Setup router
	r := chi.NewRouter()

	r.Use(pkgmw.RequestID)
	r.Use(pkgmw.Logging)
	r.Use(pkgmw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login_admin", authHandler.Login)
		r.Post("/rsvp/verificar", rsvpHandler.Verify)
		r.Post("/rsvp/confirmar", rsvpHandler.Confirm)
		r.Get("/depoimentos", testimonialsHandler.ListApproved)
		r.Post("/depoimentos", testimonialsHandler.Submit)
		r.Get("/presentes", giftsHandler.ListActive)

		r.With(requireAdmin).Post("/logout_admin", authHandler.Logout)
		r.With(requireAdmin).Get("/convidados/{id}", guestsHandler.Get)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)

			r.Get("/dashboard_stats", dashboardHandler.Stats)

			r.Route("/depoimentos", func(r chi.Router) {
				r.Get("/pendentes", testimonialsHandler.ListPending)
				r.Put("/{id}/status", testimonialsHandler.SetStatus)
			})

			r.Route("/presentes", func(r chi.Router) {
				r.Get("/", giftsHandler.ListMine)
				r.Post("/", giftsHandler.Create)
				r.Get("/{id}", giftsHandler.Get)
				r.Put("/{id}", giftsHandler.Update)
				r.Put("/{id}/status", giftsHandler.SetStatus)
			})

			r.Route("/convidados", func(r chi.Router) {
				r.Get("/", guestsHandler.List)
				r.Post("/", guestsHandler.Create)
				r.Get("/{id}", guestsHandler.Get)
				r.Put("/{id}", guestsHandler.Update)
			})
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting wedding API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
