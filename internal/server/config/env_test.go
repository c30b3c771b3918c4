package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("process environment", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Chdir(t.TempDir())

		t.Setenv("PORT", "8080")
		t.Setenv("DATABASE_URL", "postgres://example/db")
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("JWT_EXPIRES_HOURS", "24")
		t.Setenv("BCRYPT_COST", "12")
		t.Setenv("ALLOW_SUPERADMIN_SIGNUP", "true")
		t.Setenv("CORS_ORIGIN", "http://a.example/, http://b.example")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://example/db", cfg.DatabaseDSN)
		assert.Equal(t, "env-secret", cfg.SecretKey)
		assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.True(t, cfg.AllowSuperadminSignup)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	})

	t.Run("dotenv file does not override environment", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, "test.env")
		require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nUPLOAD_DIR=/srv/uploads\n"), 0o600))

		os.Args = []string{"testbin", "-env", envFile}
		t.Setenv("JWT_SECRET", "from-env")
		t.Setenv("UPLOAD_DIR", "")
		t.Cleanup(func() { _ = os.Unsetenv("UPLOAD_DIR") })
		require.NoError(t, os.Unsetenv("UPLOAD_DIR"))

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "from-env", cfg.SecretKey)
		assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	})

	t.Run("missing dotenv file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "nope.env")}

		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}

func Test_splitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins(" a/ ,, b "))
	assert.Nil(t, splitOrigins(""))
}
