// Package config holds runtime settings for the stujob CLI.
package config

// Config holds runtime settings for the stujob CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabaseDSN: path of the local sqlite profile store.
//   - AllowUnconfirmedEmailLogin: whether a correct password with an
//     unconfirmed email still produces a successful login.
type Config struct {
	ServerBaseURL              string
	DatabaseDSN                string
	AllowUnconfirmedEmailLogin bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "stujob.db"
	c.AllowUnconfirmedEmailLogin = true
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
