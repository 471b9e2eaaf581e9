package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/prelabel/internal/anndoc"
	"github.com/dgallion1/prelabel/internal/api"
	"github.com/dgallion1/prelabel/internal/config"
	"github.com/dgallion1/prelabel/internal/ner"
	"github.com/dgallion1/prelabel/internal/pipeline"
	"github.com/dgallion1/prelabel/internal/tagtog"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	tt := tagtog.NewClient(cfg.TagtogDomain, cfg.TagtogOwner, cfg.TagtogProject,
		cfg.TagtogUsername, cfg.TagtogPassword, cfg.VerifyTLS())
	recognizer := ner.NewClient(cfg.NERServiceURL, cfg.NERModel)

	// Both the label legend and the recognizer are fixed for the process
	// lifetime. A failure here aborts startup: running with an empty or
	// inconsistent mapping would misfile every annotation.
	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	legend, err := tt.AnnotationsLegend(startupCtx)
	if err != nil {
		log.Error("failed to fetch annotations legend", "error", err)
		os.Exit(1)
	}
	resolver := anndoc.NewResolver(legend)
	log.Info("annotations legend loaded", "classes", resolver.Len())

	if err := recognizer.Check(startupCtx); err != nil {
		log.Error("ner service unavailable", "error", err)
		os.Exit(1)
	}
	log.Info("ner service ready", "model", recognizer.Model(), "url", cfg.NERServiceURL)

	// Initialize pipeline and HTTP server.
	p := pipeline.New(tt, recognizer, anndoc.NewAssembler(resolver, recognizer.Model()), log)
	srv := api.NewServer(p, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		tt.Close()
	}()

	log.Info("starting prelabel", "port", cfg.Port, "project", cfg.TagtogProject)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
