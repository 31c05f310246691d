// Package config loads runtime configuration for the TruFund CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the TruFund backend
//	-t int      request timeout (seconds)
//	-s string   path to local session storage
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://10.3.2.8:3000/",
//	  "request_timeout": "15s",
//	  "storage_path": "trufund.db",
//	  "online_check_interval": "30s",
//	  "strict_login_email": false
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
