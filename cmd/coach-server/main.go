package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chess-coach/internal/cache"
	appcfg "github.com/park285/chess-coach/internal/config"
	"github.com/park285/chess-coach/internal/httpapi"
	"github.com/park285/chess-coach/internal/livefeed"
	"github.com/park285/chess-coach/internal/msgcat"
	"github.com/park285/chess-coach/internal/obslog"
	"github.com/park285/chess-coach/internal/session"
	"github.com/park285/chess-coach/internal/store"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	cat, err := msgcat.New(cfg.MessageOverrideDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	// optional collaborators: the server runs in memory without them
	var repo store.Repository
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("store init error: %v", err)
		}
		repo = pg
		defer pg.Close()
	} else {
		obslog.L().Warn("no DATABASE_URL, using in-memory store")
		repo = store.NewMemRepository()
	}

	var snaps *cache.Cache
	if cfg.RedisURL != "" {
		snaps, err = cache.New(cfg.RedisURL)
		if err != nil {
			log.Fatalf("cache init error: %v", err)
		}
		defer snaps.Close()
	} else {
		obslog.L().Warn("no REDIS_URL, session snapshot cache disabled")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	hub := livefeed.NewHub()
	mgr := session.NewManager(cat, repo, snaps, hub, rng, session.Config{
		BotDelay:    cfg.BotDelay,
		MaxSessions: cfg.MaxSessions,
	})
	defer mgr.Close()

	api := httpapi.NewServer(mgr, repo)
	restSrv := &fasthttp.Server{
		Handler:      api.Handle,
		Name:         "chess-coach",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	wsSrv := &http.Server{
		Addr:    cfg.WSListenAddr,
		Handler: hub.Handler(),
	}

	go func() {
		obslog.L().Info("rest_listen", zap.String("addr", cfg.ListenAddr))
		if err := restSrv.ListenAndServe(cfg.ListenAddr); err != nil {
			obslog.L().Error("rest_server_error", zap.Error(err))
		}
	}()
	go func() {
		obslog.L().Info("ws_listen", zap.String("addr", cfg.WSListenAddr))
		if err := wsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obslog.L().Error("ws_server_error", zap.Error(err))
		}
	}()

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	obslog.L().Info("shutdown_begin")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = restSrv.ShutdownWithContext(shutdownCtx)
	_ = wsSrv.Shutdown(shutdownCtx)
	obslog.L().Info("shutdown_complete")
}
