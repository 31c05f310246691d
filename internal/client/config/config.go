package config

import "time"

// Config holds runtime settings for the TruFund CLI.
//
// Fields:
//   - APIBaseURL: base URL of the TruFund backend, trailing slash included.
//   - RequestTimeout: overall timeout applied to each HTTP request.
//   - StoragePath: path to the local sqlite file holding session state.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - StrictLoginEmail: when true, the login form also requires a
//     well-formed email address (off by default, matching the product).
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	StoragePath         string
	OnlineCheckInterval time.Duration
	StrictLoginEmail    bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://10.3.2.8:3000/"
	c.RequestTimeout = 15 * time.Second
	c.StoragePath = "trufund.db"
	c.OnlineCheckInterval = 30 * time.Second
	c.StrictLoginEmail = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
