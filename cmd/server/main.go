package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/medremhq/medrem-api/internal/cache"
	"github.com/medremhq/medrem-api/internal/config"
	"github.com/medremhq/medrem-api/internal/database"
	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/handlers"
	"github.com/medremhq/medrem-api/internal/middleware"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/reminders"
	"github.com/medremhq/medrem-api/internal/repository"
	"github.com/medremhq/medrem-api/internal/services"
	"github.com/medremhq/medrem-api/internal/session"
	"github.com/medremhq/medrem-api/internal/token"
	"github.com/medremhq/medrem-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting medrem API")

	seed := directory.NewSeed(time.Now())

	// Connect to database and pick the directory backend
	var store directory.Store
	var audit handlers.AuditRecorder
	if cfg.Database.Enabled {
		dbConfig := database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			LogLevel: cfg.Database.LogLevel,
		}

		if err := database.Connect(dbConfig); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer database.Close()

		gormStore := directory.NewGormStore()
		if err := gormStore.SeedIfEmpty(context.Background(), seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed directory")
		}
		store = gormStore
		audit = repository.NewAuditRepository()
		log.Info().Msg("Database directory initialized")
	} else {
		store = directory.NewMemoryStore(seed)
		log.Info().Msg("Memory directory initialized")
	}

	// Initialize cache (holds the durable session slot)
	var cacheImpl cache.Cache
	if cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize session manager and restore any persisted identity
	sessions := session.New(cacheImpl, seed.RecognizedAccounts(), logger.Component("session"), session.Config{
		Latency: cfg.Auth.LoginLatency,
	})
	sessions.Restore(context.Background())

	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize reminder senders
	senderFactory := reminders.NewSenderFactory()
	defer senderFactory.CloseAll()

	// Initialize services
	directoryService := services.NewDirectoryService(store, cacheImpl)
	reminderService := services.NewReminderService(store, senderFactory)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Database.Enabled)
	authHandler := handlers.NewAuthHandler(sessions, issuer, audit)
	directoryHandler := handlers.NewDirectoryHandler(directoryService, reminderService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Session operations
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		// Role-gated directory reads
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(issuer, sessions))

			// Shared by both roles
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleDoctor, models.RolePatient))
				r.Get("/appointments", directoryHandler.Appointments)
				r.Get("/dashboard", directoryHandler.Dashboard)
				r.Get("/notifications", directoryHandler.Notifications)
				r.Post("/notifications/{notificationID}/read", directoryHandler.MarkNotificationRead)
				r.Post("/notifications/read-all", directoryHandler.MarkAllNotificationsRead)
			})

			// Doctors only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleDoctor))
				r.Get("/patients", directoryHandler.Patients)
				r.Get("/patients/{patientID}", directoryHandler.PatientDetail)
			r.Get("/patients/{patientID}/records", directoryHandler.PatientRecords)
				r.Post("/appointments/{appointmentID}/remind", directoryHandler.SendReminder)
			})

			// Patients only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RolePatient))
				r.Get("/records", directoryHandler.OwnRecords)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
