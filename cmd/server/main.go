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

	"skin-diagnosis-api/internal/auth"
	"skin-diagnosis-api/internal/config"
	"skin-diagnosis-api/internal/database"
	"skin-diagnosis-api/internal/handlers"
	"skin-diagnosis-api/internal/middleware"
	"skin-diagnosis-api/internal/mlclient"
	"skin-diagnosis-api/internal/repository"
	"skin-diagnosis-api/internal/services"
	"skin-diagnosis-api/pkg/logger"
	"skin-diagnosis-api/pkg/password"
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
	log.Info().Msg("Starting Skin Diagnosis API")

	// Connect to database
	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apiKeyRepo := repository.NewAPIKeyRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Initialize auth primitives
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	// Initialize the ML diagnosis client
	diagnoser := mlclient.NewClient(cfg.ML.URL, cfg.ML.Timeout)

	// Initialize services
	apiKeyService := services.NewAPIKeyService(apiKeyRepo, cfg.APIKey.TTL, cfg.APIKey.UsageBudget)
	doctorService := services.NewDoctorService(doctorRepo, hasher, tokens, apiKeyService)
	patientService := services.NewPatientService(patientRepo)
	caseService := services.NewCaseService(caseRepo, imageRepo, patientService, apiKeyService, diagnoser)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	usersHandler := handlers.NewUsersHandler(doctorService, patientService)
	casesHandler := handlers.NewCasesHandler(caseService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics)
	}
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

	// Auth gate: public routes pass through, everything else needs a valid
	// bearer token. Claims land in the request context.
	r.Use(middleware.AuthGate(tokens, doctorService, cfg.Auth.BypassEnabled))

	// Health endpoints (no authentication required)
	r.Get("/", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// User management
	r.Route("/users", func(r chi.Router) {
		r.Post("/register-doctor", usersHandler.RegisterDoctor)
		r.Post("/login", usersHandler.Login)
		r.Post("/register-patient", usersHandler.RegisterPatient)
		r.Get("/doctors", usersHandler.GetDoctors)
		r.Get("/patients/{patientNumber}", usersHandler.GetPatient)
	})

	// Case workflow
	r.Route("/cases", func(r chi.Router) {
		r.Post("/new_case", casesHandler.CreateCase)
		r.Get("/get_cases", casesHandler.GetDoctorCases)
		r.Get("/cases/{caseID}", casesHandler.GetCase)
		r.Get("/cases/patient/{patientID}", casesHandler.GetPatientCases)
		r.Get("/images/{imageID}", casesHandler.GetImage)
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
