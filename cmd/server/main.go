package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trt-calculator/internal/binload"
	"trt-calculator/internal/platform/config"
	"trt-calculator/internal/platform/logger"
	"trt-calculator/internal/platform/metrics"
	"trt-calculator/internal/reels"

	"github.com/go-chi/chi/v5"
)

const (
	shutdownTimeout = 10 * time.Second
	loadTimeout     = 30 * time.Second
)

func main() {
	_ = config.Load()
	cfg := config.FromEnv()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	svc := reels.NewService(cfg.FrameRate)
	met := metrics.New()
	h := reels.NewHandler(svc, log, met)

	if cfg.PresetsFile != "" {
		n, err := svc.LoadPresetCatalog(cfg.PresetsFile)
		if err != nil {
			log.Error("load marker presets", "path", cfg.PresetsFile, "error", err)
			os.Exit(1)
		}
		log.Info("marker presets loaded", "path", cfg.PresetsFile, "count", n)
	}
	if cfg.TimelineDir != "" {
		if err := loadTimelines(h, log, cfg); err != nil {
			log.Error("load timelines", "dir", cfg.TimelineDir, "error", err)
			os.Exit(1)
		}
	}

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met, "/metrics"))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() {
			met.SetTimelines(svc.TimelineCount())
			if total, err := svc.TotalRunningTime(); err == nil {
				met.SetTotalRunningFrames(total.Frames)
			}
		}).ServeHTTP(w, r)
	})
	h.Routes(r)

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", cfg.Port,
		"frame_rate", cfg.FrameRate,
		"timelines", svc.TimelineCount(),
		"log_level", cfg.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func loadTimelines(h *reels.Handler, log *slog.Logger, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	recs, err := binload.LoadDir(ctx, cfg.TimelineDir, cfg.FrameRate, cfg.LoadWorkers)
	if err != nil {
		return err
	}
	n, err := h.LoadTimelines(recs)
	if err != nil {
		return err
	}
	log.Info("timelines loaded", "dir", cfg.TimelineDir, "count", n)
	return nil
}
