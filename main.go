package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/faithfm/faithmedia-v1/internal/cache"
	"github.com/faithfm/faithmedia-v1/internal/catalog"
	"github.com/faithfm/faithmedia-v1/internal/handlers"
	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/metrics"
	"github.com/faithfm/faithmedia-v1/internal/middleware"
	"github.com/faithfm/faithmedia-v1/internal/permissions"
	"github.com/faithfm/faithmedia-v1/internal/startup"
)

func main() {
	startTime := time.Now()

	metrics.InitializeMetrics()

	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	provider, err := config.LoadPermissions()
	if err != nil {
		logging.Fatal("Permissions error: %v", err)
	}

	ctx := context.Background()
	cat, err := catalog.Open(ctx, config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to open catalog: %v", err)
	}
	defer cat.Close()

	// Keep the connection gauge fresh.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			cat.UpdateDBMetrics()
		}
	}()

	h := handlers.New(cat, cache.New())

	router := setupRouter(h, provider)
	startup.LogHTTPRoutes(router)

	handler := middleware.Compression()(
		middleware.Logger(middleware.LoggingConfig{LogHealthChecks: config.LogHealthChecks})(
			middleware.Metrics()(router)))

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsRouter := mux.NewRouter()
		metricsRouter.Handle("/metrics", h.MetricsHandler()).Methods("GET")
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsRouter,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv, cat)

	startup.LogServerStarted(config, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, provider permissions.Provider) *mux.Router {
	r := mux.NewRouter()

	// Probes and build info sit outside the capability gate.
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.RequireCapability(provider, permissions.CapUseApp)))
	api.HandleFunc("/content", h.GetContent).Methods("GET")
	api.HandleFunc("/prefilters", h.GetPrefilters).Methods("GET")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/admin/flush-cache", h.FlushCache).Methods("POST")

	// Metadata writes need the edit capability on top of app access.
	edit := api.PathPrefix("/content/metadata").Subrouter()
	edit.Use(mux.MiddlewareFunc(middleware.RequireCapability(provider, permissions.CapEditContent)))
	edit.HandleFunc("", h.UpdateMetadata).Methods("PATCH")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, cat *catalog.Catalog) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if err := cat.Close(); err != nil {
		logging.Warn("Catalog close error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Catalog closed")
	}

	startup.LogShutdownComplete()
}
