package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_StoreConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PATHWAY_DB_PATH", "/var/lib/pathways/test.db")
	defer os.Unsetenv("PATHWAY_DB_PATH")

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify store config
	assert.Equal(t, "/var/lib/pathways/test.db", cfg.Store.Path)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("PATHWAY_DB_PATH")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "data/pathways.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}
