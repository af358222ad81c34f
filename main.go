package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aashish23092/ficha-financeira/config"
	"github.com/Aashish23092/ficha-financeira/handler"
	"github.com/Aashish23092/ficha-financeira/metrics"
	"github.com/Aashish23092/ficha-financeira/scheduler"
	"github.com/Aashish23092/ficha-financeira/service"
	"github.com/Aashish23092/ficha-financeira/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	layout, err := config.LoadLayout(cfg.LayoutPath)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	log.Printf("Using layout %s", layout)

	// Metrics are registered on a dedicated registry
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		gatherer = reg
	}

	// Initialize service layer
	results := store.NewResultStore()
	fichaService := service.NewFichaService(service.NewPDFProcessor(), layout, results, m)

	// Expire old result handles in the background
	sched := scheduler.NewScheduler(fichaService, cfg.Results.TTL, cfg.Results.PurgeInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Initialize handler layer
	fichaHandler := handler.NewFichaHandler(fichaService, cfg.MaxFileSize)
	router := handler.NewRouter(fichaHandler, handler.RouterOptions{
		UploadRate:  rate.Limit(cfg.RateLimit.PerSecond),
		UploadBurst: cfg.RateLimit.Burst,
		Metrics:     gatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler.WithCORS(router, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting Ficha Financeira Service on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	<-sched.Stop().Done()
	log.Println("Server exited")
}
