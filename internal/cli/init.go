// Package cli provides common CLI initialization utilities shared by the
// comissoes commands.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"comissoes/internal/config"
	"comissoes/internal/log"
)

// SetupLogger initializes structured logging on w at the given level and
// installs it as the default slog logger.
func SetupLogger(level string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
		Output:    w,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env files for local development. Missing files are
// ignored; variables already set in the environment win.
func LoadEnvFile(files ...string) {
	_ = godotenv.Load(files...)
}

// LoadAndValidateConfig loads configuration from the environment, overlays
// the optional run file and then each override in order, and validates the
// result.
func LoadAndValidateConfig(runFile string, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	if runFile != "" {
		rf, err := config.LoadFile(runFile)
		if err != nil {
			return nil, err
		}
		rf.Apply(cfg)
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
