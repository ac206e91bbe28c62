package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the pdstore CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - SessionFile: SQLite file keeping the signed-in session between runs.
//   - RequestTimeout: per-request timeout.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerURL           string        `mapstructure:"server_url"`
	SessionFile         string        `mapstructure:"session_file"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	OnlineCheckInterval time.Duration `mapstructure:"online_check_interval"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.SessionFile = "pdstore-session.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url must be absolute, got %q", c.ServerURL))
	}
	if c.SessionFile == "" {
		errs = append(errs, errors.New("session file must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from os.Args: defaults, then the config
// file and environment, then flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseViper(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
