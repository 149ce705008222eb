package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dacdangvan/seotool-sub006/api"
	"github.com/dacdangvan/seotool-sub006/api/handler"
	"github.com/dacdangvan/seotool-sub006/cache"
	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/decision"
	"github.com/dacdangvan/seotool-sub006/fetcher"
	"github.com/dacdangvan/seotool-sub006/logging"
	"github.com/dacdangvan/seotool-sub006/renderer"
	"github.com/dacdangvan/seotool-sub006/webhook"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// ── 2. Initialise structured logging ────────────────────────────
	if closer := logging.Init(cfg.Log, os.Stdout); closer != nil {
		defer closer.Close()
	}
	slog.Info("jsrender starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"rendering", cfg.JSRender.Enabled,
		"maxRenders", cfg.JSRender.MaxJSRenderPages,
		"viewport", cfg.JSRender.DefaultViewport,
	)

	// ── 3. Decision engine and raw fetcher ──────────────────────────
	dec, err := decision.New(cfg.JSRender)
	if err != nil {
		slog.Error("invalid render patterns", "error", err)
		os.Exit(1)
	}
	fe := fetcher.New(cfg.Fetch, cfg.Browser.DefaultProxy)

	// ── 4. Rendering engine (launches browser) ──────────────────────
	var (
		rend  crawler.Renderer
		stats handler.StatsSource
		eng   *renderer.Engine
	)
	if cfg.JSRender.Enabled {
		eng = renderer.New(renderer.NewRodBackend(cfg.Browser), cfg.JSRender)
		if err := eng.Initialize(context.Background()); err != nil {
			slog.Error("failed to start browser", "error", err)
			os.Exit(1)
		}
		rend, stats = eng, eng
	} else {
		slog.Warn("JavaScript rendering disabled, every page is extracted from raw HTML")
	}

	// ── 5. Orchestrator, cache, webhooks ────────────────────────────
	cr := crawler.New(fe, dec, rend, cfg.Crawl)
	cc := cache.New(cfg.Cache)
	notifier := webhook.New(cfg.Webhook)

	// ── 6. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(cfg, api.Deps{
		Crawler:  cr,
		Stats:    stats,
		Cache:    cc,
		Notifier: notifier,
		Started:  time.Now(),
		Version:  Version,
	})

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Renders can take up to the configured timeout.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.JSRender.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	if eng != nil {
		if err := eng.Close(); err != nil {
			slog.Warn("browser shutdown", "error", err)
		}
	}
	slog.Info("jsrender stopped", "renders", renderCount(eng))
}

func renderCount(eng *renderer.Engine) int64 {
	if eng == nil {
		return 0
	}
	return eng.RenderCount()
}
