// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".mrmesh"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix, e.g. MRMESH_MESH_MAX_LEVEL.
const envPrefix = "MRMESH"

// Load reads configuration from file, env vars and defaults.
// If path is non-empty it names the config file; otherwise .mrmesh.yaml is
// searched in the working directory and $HOME. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("mesh.min_level", DefaultMinLevel)
	v.SetDefault("mesh.max_level", DefaultMaxLevel)
	v.SetDefault("mesh.ghost_width", DefaultGhostWidth)
	v.SetDefault("mesh.box_min", DefaultBoxMin)
	v.SetDefault("mesh.box_max", DefaultBoxMax)
	v.SetDefault("mesh.refine_min", DefaultRefineMin)
	v.SetDefault("mesh.refine_max", DefaultRefineMax)

	v.SetDefault("burgers.time", DefaultTime)

	v.SetDefault("log.level", DefaultLogLevel)
}
