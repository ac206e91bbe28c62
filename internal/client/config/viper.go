package config

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pdstore/internal/flagx"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "PDSCLI"

// parseViper overlays cfg with the config file named by -c/-config and
// then with PDSCLI_* environment variables.
func parseViper(cfg *Config, args []string) error {
	v := viper.New()

	v.SetDefault("server_url", cfg.ServerURL)
	v.SetDefault("session_file", cfg.SessionFile)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("online_check_interval", cfg.OnlineCheckInterval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := flagx.ConfigFileFlag(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
