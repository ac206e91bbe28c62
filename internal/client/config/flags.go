package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The args are first filtered with flagx.FilterArgs so that flags meant
// for other layers (like -c) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-f", "-t", "-i"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session store file")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
