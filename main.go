package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"vocabtrainer/internal/config"
	"vocabtrainer/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	logInfo("Starting %s in %s mode", AppTitle, cfg.EnvName())

	store, err := storage.Open(cfg.StorageBackend, cfg.DataDir)
	if err != nil {
		logFatal("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logWarn("Failed to close storage: %v", err)
		}
	}()

	app := NewApp(cfg, store)

	// A failed load is not fatal; the page shows the error and retries on reload.
	app.TrainerMutex.Lock()
	if err := app.ensureTrainer(context.Background()); err == nil {
		logInfo("Loaded %d words", app.Trainer.Len())
	}
	app.TrainerMutex.Unlock()

	templates, static := "templates/*.html", "./static"
	if cfg.Production && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		templates, static = "dist/templates/*.html", "./dist/static"
	} else {
		logInfo("Serving development assets from source directories")
	}

	router := app.setupRouter(templates, static)
	startServer(router, cfg)
}

// setupRouter builds the gin engine with all routes and middleware.
func (app *App) setupRouter(templatesGlob, staticDir string) *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{app.Config.StaticBasePath + "/fonts"})))
	router.Use(requestIDMiddleware())
	router.Use(app.cacheHeadersMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.LoadHTMLGlob(templatesGlob)
	router.Static(app.Config.StaticBasePath, staticDir)

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteState, app.stateHandler)
	router.GET(RouteHealth, app.healthzHandler)

	actions := router.Group("/", app.rateLimitMiddleware())
	actions.POST(RouteMark, app.markHandler)
	actions.POST(RouteNext, app.nextHandler)
	actions.POST(RoutePrevious, app.previousHandler)
	actions.POST(RouteReset, app.resetHandler)
	actions.POST(RouteJump, app.jumpHandler)
	actions.POST(RouteSummary, app.summaryHandler)

	return router
}

func startServer(router *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
