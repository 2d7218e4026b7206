// cmd/web/main.go
//
// Select2 toolkit – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (.env fallback for dev).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate configuration.
//
//  4. Open the source DB and pick the registry backend (memory or Redis).
//
//  5. Build signer → registry → route table, then mount:
//
//     • central Ajax JSON view  – named select2_central_json
//     • embedded glue statics   – /static/select2/
//     • demo page               – /
//     • Prometheus /metrics
//
//  6. Serve with hardened timeouts; shut down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/select2/components/demo"
	"github.com/yanizio/select2/internal/ajax"
	"github.com/yanizio/select2/internal/config"
	"github.com/yanizio/select2/internal/database"
	"github.com/yanizio/select2/internal/logger"
	"github.com/yanizio/select2/internal/middleware"
	"github.com/yanizio/select2/internal/registry"
	"github.com/yanizio/select2/internal/routing"
	"github.com/yanizio/select2/internal/server"
	"github.com/yanizio/select2/internal/widget"
)

// centralJSONPath is where the shared Ajax view mounts.
const centralJSONPath = "/select2/json"

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { _ = godotenv.Load() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 1.  Source DB ───────────────────────────────────────────────────
	//
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect source DB: %v", err)
	}
	defer db.Close()
	logOut.Infow("source DB online")

	//
	// ── 2.  Registry backend ────────────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store registry.KV
	switch cfg.Cache.Backend {
	case "redis":
		rs, err := registry.NewRedisStore(ctx, registry.RedisConfig{Addrs: cfg.Cache.RedisAddrs})
		if err != nil {
			logOut.Fatalf("connect redis: %v", err)
		}
		defer rs.Close()
		store = rs
	default:
		store = registry.NewMemStore(cfg.Cache.Capacity)
	}
	logOut.Infow("registry online", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)

	var signingKey []byte
	if cfg.Select2.SigningKey != "" {
		signingKey, err = base64.RawURLEncoding.DecodeString(cfg.Select2.SigningKey)
		if err != nil {
			logOut.Fatalf("decode signing key: %v", err)
		}
	}
	signer, err := registry.NewSigner(signingKey)
	if err != nil {
		logOut.Fatalf("build signer: %v", err)
	}
	reg := registry.New(store, signer, cfg.Cache.Prefix, cfg.Cache.TTL, logOut)

	//
	// ── 3.  Router ──────────────────────────────────────────────────────
	//
	routes := routing.NewTable()
	assets := widget.AssetConfig{
		AutoRender: cfg.Select2.AutoRenderStatics,
		Bootstrap:  cfg.Select2.Bootstrap,
	}

	r := chi.NewRouter()
	r.Use(middleware.Security)

	r.Mount(centralJSONPath, ajax.NewView(reg, db, logOut).Routes())
	routes.Register(routing.CentralJSONRoute, centralJSONPath)

	r.Mount(widget.GluePath, widget.StaticHandler())
	r.Handle("/metrics", promhttp.Handler())

	dc := &demo.Comp{DB: db, Registry: reg, Routes: routes, Assets: assets, Log: logOut}
	r.Mount("/", dc.Router())

	//
	// ── 4.  Serve until signalled ───────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("serve: %v", err)
	}
}
