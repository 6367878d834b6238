package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKILLSHARE_ADDR", ":8080")
	t.Setenv("SKILLSHARE_STORE", "memory")
	t.Setenv("SKILLSHARE_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SKILLSHARE_STORE_TIMEOUT", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DETAILS=mongodb://db.test:27017\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MONGO_DETAILS") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.test:27017", cfg.MongoURI)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("SKILLSHARE_STORE", "postgres")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("SKILLSHARE_STORE_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
