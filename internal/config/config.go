package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default input files, looked up relative to the working directory.
const (
	DefaultDealsFile    = "Data for Dashboard 2.xlsx"
	DefaultTrackingFile = "File and Claim inc. - File tracking list - RH tracking.xlsx"
	DefaultAddr         = "127.0.0.1:8790"
	DefaultTheme        = "flexoki-dark"
)

// Environment overrides, applied after the config file.
const (
	EnvDealsFile    = "FCIDASH_DEALS_FILE"
	EnvTrackingFile = "FCIDASH_TRACKING_FILE"
	EnvTheme        = "FCIDASH_THEME"
	EnvAddr         = "FCIDASH_ADDR"
)

// Config holds all fcidash configuration.
type Config struct {
	Files      FilesConfig      `toml:"files"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// FilesConfig names the two input spreadsheets. Empty sheet names select
// the first sheet.
type FilesConfig struct {
	Deals             string `toml:"deals"`
	DealsSheet        string `toml:"deals_sheet"`
	FileTracking      string `toml:"file_tracking"`
	FileTrackingSheet string `toml:"file_tracking_sheet"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Files: FilesConfig{
			Deals:        DefaultDealsFile,
			FileTracking: DefaultTrackingFile,
		},
		Appearance: AppearanceConfig{
			Theme: DefaultTheme,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fcidash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fcidash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory and FCIDASH_* environment
// variables are applied on top.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile(ConfigPath())
	ApplyEnv(&cfg)
	return cfg, err
}

// LoadFile reads one TOML file over the defaults. A missing file is not
// an error.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with any non-empty FCIDASH_* variable.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDealsFile); v != "" {
		cfg.Files.Deals = v
	}
	if v := os.Getenv(EnvTrackingFile); v != "" {
		cfg.Files.FileTracking = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes cfg as TOML to path, creating the parent directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
