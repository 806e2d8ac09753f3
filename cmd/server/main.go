package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/adapters/primary/http/handlers"
	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/adapters/secondary/backend"
	"diagram-editor-service/internal/adapters/secondary/memory"
	"diagram-editor-service/internal/adapters/secondary/postgres"
	"diagram-editor-service/internal/adapters/secondary/sqlite"
	"diagram-editor-service/internal/config"
	"diagram-editor-service/internal/core/domain"
	ports "diagram-editor-service/internal/core/ports/output"
	"diagram-editor-service/internal/core/services"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Session store
	sessionRepo, ping, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer closeStore()
	log.WithField("store", cfg.Session.Store).Info("session store ready")

	// Secondary Adapter (backend REST client)
	client := backend.NewClient(&cfg.Backend)
	if client.IsAvailable(ctx) {
		log.WithField("url", cfg.Backend.URL).Info("backend reachable")
	} else {
		log.WithField("url", cfg.Backend.URL).Warn("backend not reachable, continuing")
	}

	// Core Services (Application Layer)
	sessionSvc := services.NewSessionService(client, sessionRepo, cfg.Session.TTL)
	diagramSvc := services.NewDiagramService(client)
	mediaSvc := services.NewMediaService(client)
	editors := services.NewEditorRegistry(client)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(sessionSvc, diagramSvc, mediaSvc, editors)

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = (domain.MaxUploadMB + 1) << 20
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1", middleware.Session(sessionSvc, editors, &cfg.Session))
	h.RegisterRoutes(api)

	// Health check with session store ping
	router.GET("/healthz", handlers.Health(ping, client, editors))

	// Close editors of abandoned browsers
	go closeIdleEditors(ctx, editors, cfg.Session.TTL)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// openSessionStore builds the session repository named by SESSION_STORE
// along with a health check and a close func.
func openSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionRepository, func(context.Context) error, func(), error) {
	noPing := func(context.Context) error { return nil }

	switch cfg.Session.Store {
	case "sqlite":
		repo, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return repo, repo.Ping, func() { repo.Close() }, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		go purgeSessions(ctx, cfg.Session.TTL, func(ctx context.Context) (int64, error) {
			return postgres.PurgeExpired(ctx, pool)
		})
		return postgres.NewSessionRepository(pool), pool.Ping, pool.Close, nil
	}

	return memory.NewSessionRepository(), noPing, func() {}, nil
}

// purgeSessions drops expired sessions every ttl/4 until ctx ends.
func purgeSessions(ctx context.Context, ttl time.Duration, purge func(context.Context) (int64, error)) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purge(ctx)
			if err != nil {
				log.WithError(err).Warn("purge expired sessions failed")
				continue
			}
			if n > 0 {
				log.WithField("count", n).Info("purged expired sessions")
			}
		}
	}
}

// closeIdleEditors drops editors unused for ttl, checking every ttl/4.
func closeIdleEditors(ctx context.Context, editors *services.EditorRegistry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			editors.CloseIdle(ttl)
		}
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
