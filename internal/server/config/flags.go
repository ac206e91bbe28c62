package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/pdstore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":3000")
//	-g string     gRPC health bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-s string     token HMAC secret key
//	-t duration   session token validity (e.g., "1h")
//	-b int        bcrypt cost
//	-l string     log level (debug, info, warn, error)
//
// The args are first filtered with flagx.FilterArgs so flags meant for
// other layers (like -c) do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-b", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port to run the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "session token validity")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
