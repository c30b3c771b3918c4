// Package config loads runtime configuration for the libhub CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags -a, -s and -t.
//
// Example file:
//
//	{
//	  // local dev server
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "session_db_path": "libhub-session.db",
//	  "request_timeout": "10s",
//	}
package config
