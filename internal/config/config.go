// Package config loads contract-mapper settings with viper.
//
// Precedence, lowest to highest: defaults, the config file, then
// CONTRACT_MAPPER_* environment variables (dots become underscores, so
// engine.wasm_path is CONTRACT_MAPPER_ENGINE_WASM_PATH).
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"contract-mapper/codec"
	"contract-mapper/internal/engine"
	"contract-mapper/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONTRACT_MAPPER"

// Config is the full set of settings.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
	Log       LogConfig       `mapstructure:"log"`
}

// EngineConfig locates the optional transformation engine.
type EngineConfig struct {
	// WASMPath is the engine module. Empty disables the engine.
	WASMPath          string `mapstructure:"wasm_path"`
	VersionConstraint string `mapstructure:"version_constraint"`
}

type NormalizeConfig struct {
	MaxNestingDepth int    `mapstructure:"max_nesting_depth"`
	DataLevelTagKey string `mapstructure:"data_level_tag_key"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads settings. An empty path uses defaults and the environment
// only; the file format follows the extension (yaml, json, toml).
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	return FromViper(v)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// FromViper unmarshals and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if cfg.Normalize.MaxNestingDepth <= 0 {
		return nil, errors.WithHint(
			errors.Newf("normalize.max_nesting_depth must be positive, got %d", cfg.Normalize.MaxNestingDepth),
			"omit the key to use the default")
	}

	return &cfg, nil
}

// CodecOptions maps the settings onto codec.Options. The engine is only
// configured when a module path is set.
func (c *Config) CodecOptions(log *zap.SugaredLogger) codec.Options {
	opts := codec.Options{
		Logger:          log,
		MaxNestingDepth: c.Normalize.MaxNestingDepth,
		DataLevelTagKey: c.Normalize.DataLevelTagKey,
	}

	if c.Engine.WASMPath != "" {
		opts.Engine = engine.NewLoader(engine.WASMFile(c.Engine.WASMPath), c.Engine.VersionConstraint)
	}

	return opts
}
