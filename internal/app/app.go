// Package app wires configuration, logging, the credential store and the
// API client together for cmd/shikictl.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bobmcallan/shiki/pkg/common"
	"github.com/bobmcallan/shiki/pkg/shikimori"
	"github.com/bobmcallan/shiki/pkg/store"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "SHIKI_CONFIG"

// App holds the initialized client and everything it depends on.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       store.Store
	Client      *shikimori.Client
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the provided path, SHIKI_CONFIG, then the binary
// dir, then the working directory.
func resolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "shiki.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "shiki.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and builds a closed client over the configured
// credential store. Extra options are applied after the configured ones.
// A *shikimori.ConfigError is returned unwrapped so callers can show its
// authorization URL.
func NewApp(configPath string, opts ...shikimori.Option) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if missing := config.ValidateRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	logger := common.NewLogger(config.Logging.Level)

	st, err := store.New(config.Store.Driver, config.Store.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg, clientOpts := shikimori.ConfigFromCommon(config)
	clientOpts = append(clientOpts,
		shikimori.WithStore(st),
		shikimori.WithAutoCloseStore(),
		shikimori.WithLogger(logger),
	)
	client, err := shikimori.NewClient(cfg, append(clientOpts, opts...)...)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("app", cfg.AppName).
		Str("store", config.Store.Driver).
		Bool("restricted", client.Restricted()).
		Dur("elapsed", time.Since(startupStart)).
		Msg("App initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Store:       st,
		Client:      client,
		StartupTime: startupStart,
	}, nil
}

// Run opens the client, runs fn and closes the client again.
func (a *App) Run(ctx context.Context, fn func(ctx context.Context, c *shikimori.Client) error) error {
	return a.Client.WithSession(ctx, fn)
}

// Close releases the client and, through it, the credential store.
func (a *App) Close(ctx context.Context) error {
	if err := a.Client.Close(ctx); err != nil {
		return err
	}
	if !a.Store.Closed() {
		return a.Store.Close(ctx)
	}
	return nil
}
