package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flashbar-dev/flashbar"
	"github.com/flashbar-dev/flashbar/internal/config"
	"github.com/flashbar-dev/flashbar/pkg/i18n"
	"github.com/flashbar-dev/flashbar/pkg/message"
	"github.com/flashbar-dev/flashbar/pkg/middleware"
	"github.com/flashbar-dev/flashbar/pkg/server"
)

func serveCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the message bar page",
		Long: `Start the HTTP server. Every page load gets its own session and
document carrying the five built-in message boxes; the WebSocket
endpoint streams patches to the page and events back.

Prometheus metrics are exposed at /metrics.

Examples:
  flashbar serve
  flashbar serve --config=flashbar.json
  FLASHBAR_SERVER__ADDRESS=:9090 flashbar serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFilename, "Configuration file")

	return cmd
}

func runServe(configFile string) error {
	cfg, err := config.LoadWithFile(configFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	loc := i18n.None
	if cfg.I18n.CatalogFile != "" {
		catalog, err := i18n.LoadCatalog(cfg.I18n.CatalogFile)
		if err != nil {
			return err
		}
		loc = catalog
		logger.Info("localization catalog loaded",
			"file", cfg.I18n.CatalogFile, "entries", catalog.Len())
	}

	setup := func(sess *server.Session) error {
		sess.Document().Root().AppendChild(flashbar.Bar())
		bar, err := flashbar.New(sess.Document(),
			message.WithLocalizer(loc),
			message.WithLogger(sess.Logger()),
			message.WithObserver(middleware.MessageObserver()))
		if err != nil {
			return err
		}
		return bar.ShowInfo(message.ShowOptions{
			Text:        "Connected",
			Dismissable: true,
		})
	}

	srv := server.New(serverConfig(cfg), setup,
		server.WithLogger(logger),
		server.WithPageTitle(cfg.Server.PageTitle),
		server.WithMiddleware(
			middleware.Prometheus(),
			middleware.OpenTelemetry(),
		))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("serving", "address", cfg.Server.Address)
	return srv.ListenAndServe(ctx)
}

func serverConfig(cfg *config.Config) *server.Config {
	sc := server.DefaultConfig()
	sc.Address = cfg.Server.Address
	sc.ReadBufferSize = cfg.Server.ReadBufferSize
	sc.WriteBufferSize = cfg.Server.WriteBufferSize
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	sc.Session.ReadTimeout = cfg.Session.ReadTimeout
	sc.Session.WriteTimeout = cfg.Session.WriteTimeout
	sc.Session.HeartbeatInterval = cfg.Session.HeartbeatInterval
	sc.Session.IdleTimeout = cfg.Session.IdleTimeout
	sc.Session.MaxMessageSize = cfg.Session.MaxMessageSize
	sc.Session.MaxEventQueue = cfg.Session.MaxEventQueue
	sc.Session.EnableCompression = cfg.Session.EnableCompression

	if len(cfg.Server.AllowedOrigins) > 0 {
		allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins))
		wildcard := false
		for _, origin := range cfg.Server.AllowedOrigins {
			if origin == "*" {
				wildcard = true
			}
			allowed[origin] = true
		}
		sc.CheckOrigin = func(origin string) bool {
			return wildcard || allowed[origin]
		}
	}
	return sc
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
