package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trivia-api/internal/auth"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/data"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
)

// purgeInterval is how often expired cache entries are removed.
const purgeInterval = 10 * time.Minute

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	appCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer appCache.Close()
	log.Info("Cache initialized.")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go purgeCache(ctx, appCache, log)

	// --- Authentication and Authorization Setup ---
	authorizer := newAuthorizer(ctx, cfg, log)

	// --- Dependency Injection and Handler Initialization ---
	questionRepository := data.NewSQLQuestionRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	catalogService := service.NewCatalogService(questionRepository, categoryRepository, appCache, cfg.Cache.TTL, log)
	questionService := service.NewQuestionService(questionRepository, categoryRepository)
	quizService := service.NewQuizService(questionRepository)

	catalogHandler := handler.NewCatalogHandler(catalogService, questionService, authorizer, log)
	quizHandler := handler.NewQuizHandler(quizService, log)

	requireDelete := middleware.RequireScope(authorizer, auth.ScopeDeleteQuestions, log)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	router := handler.NewRouter(catalogHandler, quizHandler, requireDelete, errorMiddleware, cfg.CORS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}

// newAuthorizer builds the scope authorizer. With auth disabled every
// request is allowed.
func newAuthorizer(ctx context.Context, cfg *config.Config, log logger.Logger) auth.Authorizer {
	if !cfg.Auth.Enabled {
		log.Warn("Authorization is disabled; create and delete are open to every caller.")
		return auth.AllowAll{}
	}

	log.Info("Initializing authentication and authorization...")
	authenticator, err := auth.NewAuthenticator(ctx, &cfg.Auth)
	if err != nil {
		log.Fatal(err, "Failed to initialize authenticator")
	}
	driverName, err := data.SQLDriverName(cfg.DB.Driver)
	if err != nil {
		log.Fatal(err, "Failed to resolve database driver")
	}
	enforcer, err := auth.NewEnforcer(driverName, cfg.DB.DSN, cfg.Auth.ModelPath)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	return auth.NewScopeAuthorizer(authenticator, enforcer)
}

// purgeCache removes expired cache entries until ctx is done.
func purgeCache(ctx context.Context, c *cache.Cache, log logger.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := c.Purge(ctx)
			if err != nil {
				log.Error(err, "Failed to purge cache")
				continue
			}
			if n > 0 {
				log.Debug(fmt.Sprintf("Purged %d expired cache entries", n))
			}
		}
	}
}
