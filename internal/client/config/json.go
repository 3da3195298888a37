package config

import (
	"encoding/json"
	"os"

	"github.com/stujob/stujob/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerBaseURL              string `json:"server_base_url"`
	DatabaseDSN                string `json:"database_dsn"`
	AllowUnconfirmedEmailLogin *bool  `json:"allow_unconfirmed_email_login"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via -c or -config. When neither flag is present nothing happens.
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AllowUnconfirmedEmailLogin != nil {
		cfg.AllowUnconfirmedEmailLogin = *jc.AllowUnconfirmedEmailLogin
	}
}
