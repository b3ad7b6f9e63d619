package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/piot/conclave-console/internal/adapters/loopback"
	secretsfile "github.com/piot/conclave-console/internal/adapters/secrets/file"
	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

const (
	configDir  = ".conclave"
	configName = "config"
	configType = "toml"

	identityDir  = ".guise"
	identityFile = "identity.toml"
)

type app struct {
	cfg           *viper.Viper
	log           *slog.Logger
	identityStore ports.IdentityStore
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix("CONCLAVE")
	cfg.AutomaticEnv()

	cfg.SetDefault("guise.host", "127.0.0.1")
	cfg.SetDefault("guise.port", 27004)
	cfg.SetDefault("conclave.host", "127.0.0.1")
	cfg.SetDefault("conclave.port", 27003)
	cfg.SetDefault("transport", "loopback")
	cfg.SetDefault("console.prompt", "conclave> ")
	cfg.SetDefault("console.tick_ms", 16)
	cfg.SetDefault("console.response_buffer", 4096)
	cfg.SetDefault("identity.path", filepath.Join(homeDir, identityDir, identityFile))
	cfg.SetDefault("log.level", "info")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &app{
		cfg:           cfg,
		log:           newLogger(os.Stderr, cfg.GetString("log.level")),
		identityStore: secretsfile.NewStore(cfg.GetString("identity.path")),
	}, nil
}

// newLogger builds the process logger: human-readable text on a terminal,
// JSON when redirected.
func newLogger(output *os.File, level string) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLogLevel(level)}

	var handler slog.Handler
	if term.IsTerminal(int(output.Fd())) {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return parsed
}

// sessions builds the auth session and room-session dialer for the
// configured transport. Real network session clients implement the same
// ports and slot in here.
func (a *app) sessions(identity domain.Identity) (ports.AuthSession, ports.SessionDialer, error) {
	switch transport := a.cfg.GetString("transport"); transport {
	case "loopback":
		coordinator := loopback.NewCoordinator(a.log)
		return loopback.NewAuthSession(identity, a.log), coordinator.Dial, nil
	default:
		return nil, nil, fmt.Errorf("unknown transport %q", transport)
	}
}

func (a *app) tickInterval() time.Duration {
	return time.Duration(a.cfg.GetInt("console.tick_ms")) * time.Millisecond
}
