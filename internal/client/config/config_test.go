package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, "stujob.db", cfg.DatabaseDSN)
	assert.True(t, cfg.AllowUnconfirmedEmailLogin)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")

	off := false
	jc := JsonConfig{
		ServerBaseURL:              "http://example.com:9090",
		DatabaseDSN:                "other.db",
		AllowUnconfirmedEmailLogin: &off,
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://example.com:9090", cfg.ServerBaseURL)
	assert.Equal(t, "other.db", cfg.DatabaseDSN)
	assert.False(t, cfg.AllowUnconfirmedEmailLogin)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-a", "http://10.0.0.1:8080", "-f", "x.db", "-u=false"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://10.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, "x.db", cfg.DatabaseDSN)
	assert.False(t, cfg.AllowUnconfirmedEmailLogin)
}
