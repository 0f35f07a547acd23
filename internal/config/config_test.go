package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every CERTLINK_ env var that Load() reads.
var allConfigKeys = []string{
	"CERTLINK_LISTEN_ADDR",
	"CERTLINK_DB_PATH",
	"CERTLINK_BASE_URL",
	"CERTLINK_TEMPLATE_PATH",
	"CERTLINK_TIMEZONE",
	"CERTLINK_MAX_UPLOAD_BYTES",
}

// isolateConfigEnv saves and unsets all CERTLINK_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("CERTLINK_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("CERTLINK_DB_PATH", "/tmp/test.db")
	t.Setenv("CERTLINK_BASE_URL", "https://certs.example.com/api?hash=")
	t.Setenv("CERTLINK_TEMPLATE_PATH", "/srv/temp.html")
	t.Setenv("CERTLINK_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CERTLINK_MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "https://certs.example.com/api?hash=", cfg.BaseURL)
	assert.Equal(t, "/srv/temp.html", cfg.TemplatePath)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "data.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:3000/api?hash=", cfg.BaseURL)
	assert.Equal(t, "", cfg.TemplatePath)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown timezone", key: "CERTLINK_TIMEZONE", value: "Mars/Olympus"},
		{name: "non-numeric upload size", key: "CERTLINK_MAX_UPLOAD_BYTES", value: "big"},
		{name: "zero upload size", key: "CERTLINK_MAX_UPLOAD_BYTES", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CERTLINK_DB_PATH=/from/dotenv.db\nCERTLINK_LISTEN_ADDR=:4000\n"), 0o600))
	t.Setenv("CERTLINK_LISTEN_ADDR", ":5000")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv.db", cfg.DBPath)
	// Existing environment values win over the file.
	assert.Equal(t, ":5000", cfg.ListenAddr)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
