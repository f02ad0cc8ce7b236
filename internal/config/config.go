package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the current working directory.
const DefaultConfigFile = "lastpass_inventory.yml"

// EnvPrefix prefixes every environment override, e.g. LASTPASS_INVENTORY_LPASS.
const EnvPrefix = "LASTPASS_INVENTORY"

// Settings are the runtime knobs of a run. The host groups themselves live
// in the file named by Config, see LoadGroups.
type Settings struct {
	Config   string        `mapstructure:"config"`
	LPass    string        `mapstructure:"lpass"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
}

// Load reads Settings from v, falling back to the global viper instance.
func Load(v *viper.Viper) (*Settings, error) {
	if v == nil {
		v = viper.GetViper()
	}

	cfg := &Settings{
		Config:   DefaultConfigFile,
		LPass:    "lpass",
		LogLevel: "info",
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	if cfg.Config == "" {
		cfg.Config = DefaultConfigFile
	}
	if cfg.LPass == "" {
		cfg.LPass = "lpass"
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	path, err := homedir.Expand(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", cfg.Config, err)
	}
	cfg.Config = path

	return cfg, nil
}
