package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"billsplit/internal/auth"
	"billsplit/internal/config"
	"billsplit/internal/middleware"
	"billsplit/internal/server"
	"billsplit/internal/settlement"
	"billsplit/internal/storage/sqlite"
	"billsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret is required (set BILLSPLIT_JWT_SECRET)")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	engine := settlement.NewEngine(store)

	api := server.New(store, authenticator, jwtManager, engine)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.Routes())
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	handler := middleware.Logging(middleware.CORS(middleware.Metrics(mux)))

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
