package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/plexsphere/tunnelctl/internal/agent"
	"github.com/plexsphere/tunnelctl/internal/connection"
	"github.com/plexsphere/tunnelctl/internal/platform"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// newPlatform selects the strategy for this host. Hosts without one get the
// unsupported stub so read-only commands still answer.
var newPlatform = func(cfg platform.Config, logger *slog.Logger) platform.Platform {
	p, err := platform.Current(cfg, logger)
	if err != nil {
		logger.Warn("no tunnel strategy for this host", "error", err)
		return platform.NewUnsupportedStrategy()
	}
	return p
}

// env is what every command needs: configuration, a logger and the host's
// platform strategy.
type env struct {
	cfg      *agent.Config
	logger   *slog.Logger
	platform platform.Platform
}

// loadEnv parses the configuration, applies flag overrides and builds the
// logger and platform.
func loadEnv(name string) (*env, error) {
	cfg, err := agent.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("tunnelctl %s: %w", name, err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := setupLogger(cfg.LogLevel)
	return &env{
		cfg:      cfg,
		logger:   logger,
		platform: newPlatform(cfg.Platform, logger),
	}, nil
}

// orchestrator returns a connection orchestrator that has adopted whatever
// tunnel the OS already reports.
func (e *env) orchestrator(ctx context.Context) (*connection.Orchestrator, wireguard.ConnectionStatus, error) {
	o := connection.New(e.platform, e.cfg.Connection, e.logger)
	st, err := o.Reconcile(ctx)
	if err != nil && !errors.Is(err, wireguard.ErrPlatformNotSupported) {
		return o, st, err
	}
	return o, st, nil
}

// closeOrchestrator waits for in-flight work before the process exits.
func (e *env) closeOrchestrator(o *connection.Orchestrator) {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Platform.CommandTimeout)
	defer cancel()
	if err := o.Close(ctx); err != nil {
		e.logger.Warn("operation still running at exit", "error", err)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// setupLogger creates a structured logger with the given level.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
