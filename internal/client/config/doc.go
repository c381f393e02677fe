// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//	-e          keep the session in memory only
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "30s",
//	  "session_db_path": "session.db"
//	}
package config
