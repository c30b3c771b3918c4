package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// staging
		"server_base_url": "https://staging.example",
		"request_timeout": "30s",
	}`), 0o600))

	t.Run("overlays present keys", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{SessionDBPath: "keep.db"}
		parseJson(cfg)

		assert.Equal(t, "https://staging.example", cfg.ServerBaseURL)
		assert.Equal(t, "keep.db", cfg.SessionDBPath)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerBaseURL: "http://defaults:1234"}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
