// main.go
// Anjo Animal case-management API for the animal-welfare complaint office.
// Operators sign in through the external identity provider, file and browse
// complaints, record visits, and export documents; all persistence lives in
// the hosted document store.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/auth"
	"github.com/EmanuelGdA/AnjoAnimal/config"
	"github.com/EmanuelGdA/AnjoAnimal/db"
	"github.com/EmanuelGdA/AnjoAnimal/geo"
	"github.com/EmanuelGdA/AnjoAnimal/handlers"
	"github.com/EmanuelGdA/AnjoAnimal/middleware"
	"github.com/EmanuelGdA/AnjoAnimal/notify"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	cfg.Validate()

	logger.Info("starting Anjo Animal API",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// The store is constructed exactly once and injected everywhere; no
	// hidden module-level client.
	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath, logger)
	if err != nil {
		logger.Fatal("failed to initialize Firestore", zap.Error(err))
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	identity := auth.NewIdentityClient(cfg.Firebase.WebAPIKey, logger)
	geocoder := geo.NewGeocoder(cfg.Geocoder, cfg.Office.CitySuffix, logger)
	composer := notify.NewComposer(cfg.Office.CountryCode, cfg.Office.Name)

	authHandler := handlers.NewAuthHandler(identity, jwtManager, logger)
	reportHandler := handlers.NewReportHandler(store, geocoder, composer, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	rateLimiter.CleanupOldLimiters()

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/reset-password", authHandler.ResetPassword)

	// Protected routes
	authRequired := middleware.AuthMiddleware(jwtManager)
	protect := func(h http.HandlerFunc) http.Handler { return authRequired(h) }

	mux.Handle("GET /api/reports", protect(reportHandler.List))
	mux.Handle("POST /api/reports", protect(reportHandler.Create))
	mux.Handle("GET /api/reports/export.csv", protect(reportHandler.ExportCSV))
	mux.Handle("GET /api/reports/export.xlsx", protect(reportHandler.ExportXLSX))
	mux.Handle("GET /api/reports/{id}", protect(reportHandler.Get))
	mux.Handle("PATCH /api/reports/{id}/status", protect(reportHandler.UpdateStatus))
	mux.Handle("DELETE /api/reports/{id}", protect(reportHandler.Delete))
	mux.Handle("POST /api/reports/{id}/visits", protect(reportHandler.AddVisit))
	mux.Handle("DELETE /api/reports/{id}/visits", protect(reportHandler.RemoveVisit))
	mux.Handle("GET /api/reports/{id}/whatsapp", protect(reportHandler.WhatsAppLink))
	mux.Handle("GET /api/reports/{id}/document", protect(reportHandler.ExportDocument))
	mux.Handle("GET /api/stats", protect(reportHandler.GetStats))
	mux.Handle("GET /api/map", protect(reportHandler.GetMap))

	// Global middleware
	handler := middleware.CORSMiddleware(cfg.CORS.AllowedOrigins)(mux)
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.RequestLogger(logger)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return logger
}

// Health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%d,"version":"1.0.0"}`, time.Now().Unix())
}
