package config

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pdstore/internal/flagx"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the server reads,
// e.g. PDS_DATABASE_DSN or PDS_TOKEN_TTL.
const EnvPrefix = "PDS"

// parseViper overlays cfg with values from the config file named by
// -c/-config (JSON, YAML or TOML, picked by extension) and then with
// PDS_* environment variables. Keys absent from both keep the value
// already in cfg.
func parseViper(cfg *Config, args []string) error {
	v := viper.New()

	// Seed viper with the current values so AutomaticEnv can see every key.
	for key, val := range map[string]any{
		"http_addr":             cfg.HTTPAddr,
		"grpc_health_addr":      cfg.GRPCHealthAddr,
		"database_dsn":          cfg.DatabaseDSN,
		"secret_key":            cfg.SecretKey,
		"token_ttl":             cfg.TokenTTL,
		"bcrypt_cost":           cfg.BcryptCost,
		"log_level":             cfg.LogLevel,
		"log_format":            cfg.LogFormat,
		"max_body_bytes":        cfg.MaxBodyBytes,
		"health_check_interval": cfg.HealthCheckInterval,
		"shutdown_timeout":      cfg.ShutdownTimeout,
	} {
		v.SetDefault(key, val)
	}

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
