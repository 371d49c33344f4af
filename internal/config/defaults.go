package config

import (
	"github.com/spf13/viper"

	"contract-mapper/internal/engine"
	"contract-mapper/internal/normalize"
	"contract-mapper/model"
)

// SetDefaults registers a default for every key. Keys without a default
// are invisible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("engine.wasm_path", "")
	v.SetDefault("engine.version_constraint", engine.DefaultVersionConstraint)

	v.SetDefault("normalize.max_nesting_depth", model.DefaultMaxNestingDepth)
	v.SetDefault("normalize.data_level_tag_key", normalize.DefaultDataLevelTagKey)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
