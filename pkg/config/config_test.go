package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := `{
		"fflogs": {"client_id": "ff-id", "client_secret": "ff-secret", "character_id": 42},
		"wow": {"character_name": "Testchar", "realm": "stormrage", "region": "eu"},
		"raids": {"admin_key": "secret", "storage": {"type": "file", "file_path": "/tmp/raids.json"}},
		"cache": {"ttl_seconds": 60}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ff-id", cfg.FFLogs.ClientID)
	assert.Equal(t, 42, cfg.FFLogs.CharacterID)
	assert.Equal(t, "Testchar", cfg.WoW.CharacterName)
	assert.Equal(t, "file", cfg.Raids.Storage.Type)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("FFLOGS_CLIENT_ID", "  env-id  ")
	t.Setenv("FFLOGS_CLIENT_SECRET", "env-secret\n")
	t.Setenv("FFLOGS_CHARACTER_ID", "777")
	t.Setenv("RAID_ADMIN_KEY", "admin-key")
	t.Setenv("RAID_STORAGE_TYPE", "s3")
	t.Setenv("RAID_S3_BUCKET", "raid-logs")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// Env values are whitespace-trimmed before use.
	assert.Equal(t, "env-id", cfg.FFLogs.ClientID)
	assert.Equal(t, "env-secret", cfg.FFLogs.ClientSecret)
	assert.Equal(t, 777, cfg.FFLogs.CharacterID)
	assert.Equal(t, "admin-key", cfg.Raids.AdminKey)
	assert.Equal(t, "s3", cfg.Raids.Storage.Type)
	assert.Equal(t, "raid-logs", cfg.Raids.Storage.S3Bucket)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steam": {"api_key": "file-key"}}`), 0644))

	t.Setenv("STEAM_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Steam.APIKey)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Secrets default to empty so endpoints report configured: false.
	assert.Empty(t, cfg.FFLogs.ClientID)
	assert.Empty(t, cfg.Steam.APIKey)
	assert.Empty(t, cfg.NFT.AlchemyAPIKey)

	assert.Equal(t, 15692673, cfg.FFLogs.CharacterID)
	assert.Equal(t, "moon-guard", cfg.WoW.Realm)
	assert.Equal(t, "memory", cfg.Raids.Storage.Type)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
}

func TestLoadConfig_InvalidIntEnvIgnored(t *testing.T) {
	t.Setenv("FFLOGS_CHARACTER_ID", "not-a-number")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().FFLogs.CharacterID, cfg.FFLogs.CharacterID)
}
