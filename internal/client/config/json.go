package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/libhub/internal/flagx"
	"github.com/dmitrijs2005/libhub/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the CLI config file. Comments and
// trailing commas are accepted.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	SessionDBPath  string          `json:"session_db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. Missing keys keep
// their current values. Panics on read or parse errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
