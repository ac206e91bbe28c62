// Package config loads runtime configuration for the pdstore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (JSON, YAML or TOML) selected with -c or -config.
//  3. PDSCLI_* environment variables, e.g. PDSCLI_SERVER_URL.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the pdstore HTTP API
//	-f string     path of the local session store (SQLite)
//	-t duration   per-request timeout
//	-i int        online status check interval (seconds)
//
// Example file:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "session_file": "pdstore-session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
