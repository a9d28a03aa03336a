package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/pipeline"
)

// Config is the optional user configuration, loaded from
// ~/.config/argmap/config.toml. All fields are optional; flags always win
// over the config file, which wins over built-in defaults.
//
// Example:
//
//	[layout]
//	node_spacing = 300
//	iterations = 12
//
//	[render]
//	formats = ["svg", "json"]
//
//	[server]
//	addr = ":8080"
//	redis = "localhost:6379"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout engine defaults.
type LayoutConfig struct {
	NodeSpacing     int `toml:"node_spacing"`
	LayerSeparation int `toml:"layer_separation"`
	Iterations      int `toml:"iterations"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// ServerConfig holds serve command defaults.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	Redis     string `toml:"redis"`
	MongoURI  string `toml:"mongo_uri"`
	Namespace string `toml:"cache_namespace"`
}

// configPath returns the config file path using XDG standard
// (~/.config/argmap/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the user config file. A missing file is not an error:
// it returns the zero Config so built-in defaults apply.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

// loadConfigFile reads and parses a specific config file.
func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// apply fills unset pipeline options from the config. Options already set
// by flags are left alone.
func (cfg Config) apply(opts *pipeline.Options) {
	if opts.NodeSpacing == 0 {
		opts.NodeSpacing = cfg.Layout.NodeSpacing
	}
	if opts.LayerSeparation == 0 {
		opts.LayerSeparation = cfg.Layout.LayerSeparation
	}
	if opts.Iterations == 0 {
		opts.Iterations = cfg.Layout.Iterations
	}
	if len(opts.Formats) == 0 && len(cfg.Render.Formats) > 0 {
		opts.Formats = cfg.Render.Formats
	}
	if !opts.Detailed {
		opts.Detailed = cfg.Render.Detailed
	}
}
