package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/trufund/trufund/internal/flagx"
	"github.com/trufund/trufund/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so JSON can specify them either as strings like "15s" or as
// integer nanoseconds. After parsing, values are copied into the runtime
// Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	StoragePath         string         `json:"storage_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	StrictLoginEmail    bool           `json:"strict_login_email"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. When no file is given the function returns without
// touching cfg. Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, where later stages override earlier
// ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	cfg.StrictLoginEmail = jc.StrictLoginEmail
}
