package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"

	"github.com/rayauth/rayauth/internal/authd"
	"github.com/rayauth/rayauth/pkg/authserver"
	"github.com/rayauth/rayauth/pkg/statusserver"
)

// CLI defines the rayauthd command line. File config (--config) is applied
// first, then any flag given here wins.
type CLI struct {
	Config        string `help:"Path to YAML config file" short:"F" type:"existingfile" optional:""`
	Listen        string `help:"Address to listen on for protocol connections" short:"l" placeholder:"HOST:PORT"`
	StatusListen  string `help:"Address to serve /healthz and /status on (disabled when empty)" placeholder:"HOST:PORT"`
	MaxLineLength int    `help:"Maximum protocol frame length in bytes (0 = default 8KiB)"`
	Verbose       int    `help:"Log verbosity, can use multiple" short:"v" type:"counter"`
}

func main() {
	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("rayauthd"),
		kong.Description("Remote-display authentication server"),
	)
	kctx.FatalIfErrorf(cli.Run())
}

// Run starts the protocol listener and, when configured, the status HTTP
// listener, then blocks until SIGINT or SIGTERM.
func (c *CLI) Run() error {
	logger := newLogger(c.Verbose)

	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	svc := authd.New(logger)

	var opts []authserver.Option
	if cfg.MaxLineLength > 0 {
		opts = append(opts, authserver.WithMaxLineLength(cfg.MaxLineLength))
	}
	srv := authserver.New(logger, cfg.Listen, svc, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.StatusListen != "" {
		go serveStatus(ctx, logger, cfg.StatusListen, srv)
	}

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("shut down")
	return nil
}

// resolveConfig merges the config file (if any) with command line flags.
func (c *CLI) resolveConfig() (*config, error) {
	cfg := defaultConfig()
	if c.Config != "" {
		loaded, err := loadConfigFile(c.Config)
		if err != nil {
			return nil, fmt.Errorf("unable to load config %s: %w", c.Config, err)
		}
		cfg = loaded
	}

	if c.Listen != "" {
		cfg.Listen = c.Listen
	}
	if c.StatusListen != "" {
		cfg.StatusListen = c.StatusListen
	}
	if c.MaxLineLength > 0 {
		cfg.MaxLineLength = c.MaxLineLength
	}

	return cfg, cfg.validate()
}

func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch verbosity {
	case 0:
	case 1:
		level = slog.LevelInfo
	default: // 2+
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}

func serveStatus(ctx context.Context, logger *slog.Logger, addr string, stats statusserver.Stats) {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Mount("/", statusserver.New(stats, logger))

	httpServer := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("status listening", "address", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("status server failed", "error", err)
	}
}
