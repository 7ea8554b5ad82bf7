package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/store"
)

// Config is the on-disk CLI configuration, read from
// $XDG_CONFIG_HOME/panelayout/config.toml. Flags override it.
//
//	[store]
//	backend = "redis"
//	[store.redis]
//	addr = "localhost:6379"
//	namespace = "panelayout:"
//
//	[layouts]
//	namespace = "team-a:"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Store   store.Config  `toml:"store"`
	Layouts LayoutsConfig `toml:"layouts"`
	Server  ServerConfig  `toml:"server"`
}

// LayoutsConfig controls how layouts are keyed in the store.
type LayoutsConfig struct {
	// Namespace scopes every stored layout key.
	Namespace string `toml:"namespace"`
	// TTL expires saved layouts, e.g. "720h". Empty keeps them forever.
	TTL string `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Store:  store.Config{Backend: store.BackendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// TTLDuration parses the layout TTL. Empty means no expiry.
func (c LayoutsConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("layouts.ttl: %w", err)
	}
	return d, nil
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// configPath returns the default config file location using the XDG
// standard (~/.config/panelayout/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// dataDir returns the directory for the file store (~/.local/share/panelayout/layouts).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "layouts"), nil
}
