// Package config provides configuration management for vibery using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/paths"
)

// Configuration keys.
const (
	KeyKitsDir     = "kits_dir"
	KeyProjectRoot = "project_root"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// KitsDir is the directory holding one subdirectory per kit.
	KitsDir string `mapstructure:"kits_dir" yaml:"kits_dir"`
	// ProjectRoot is the workspace kits are installed into. Empty means the
	// current working directory.
	ProjectRoot string `mapstructure:"project_root" yaml:"project_root"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("VIBERY")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault(KeyKitsDir, paths.DefaultKitsDir())
	viper.SetDefault(KeyProjectRoot, "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
		if path != "" {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.KitsDir = paths.ExpandHome(cfg.KitsDir)
	cfg.ProjectRoot = paths.ExpandHome(cfg.ProjectRoot)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v", errors.Join(errs...))
	}

	return &cfg, nil
}
