package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
)

// FFLogsConfig holds FFLogs API credentials and the character to display.
type FFLogsConfig struct {
	ClientID     string `json:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret" mapstructure:"client_secret"`
	CharacterID  int    `json:"character_id" mapstructure:"character_id"`
}

// WarcraftLogsConfig holds Warcraft Logs API credentials. Warcraft Logs and
// FFLogs require separate OAuth clients.
type WarcraftLogsConfig struct {
	ClientID     string `json:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret" mapstructure:"client_secret"`
}

// WoWConfig identifies the WoW character shown on the site; shared by the
// Warcraft Logs proxy defaults and the Raider.io profile endpoint.
type WoWConfig struct {
	CharacterName string `json:"character_name" mapstructure:"character_name"`
	Realm         string `json:"realm" mapstructure:"realm"`
	Region        string `json:"region" mapstructure:"region"`
}

// SteamConfig holds the Steam Web API key and the profile to display.
type SteamConfig struct {
	APIKey  string `json:"api_key" mapstructure:"api_key"`
	SteamID string `json:"steam_id" mapstructure:"steam_id"`
}

// NFTConfig holds the Alchemy key and the wallet whose NFTs are shown.
type NFTConfig struct {
	AlchemyAPIKey string `json:"alchemy_api_key" mapstructure:"alchemy_api_key"`
	WalletAddress string `json:"wallet_address" mapstructure:"wallet_address"`
}

// OpenAIConfig holds the key for the screenshot-parsing endpoint.
type OpenAIConfig struct {
	APIKey string `json:"api_key" mapstructure:"api_key"`
}

// StorageConfig selects and configures the raid store backend.
type StorageConfig struct {
	Type string `json:"type" mapstructure:"type"` // "memory", "file", "s3"

	// File storage
	FilePath string `json:"file_path,omitempty" mapstructure:"file_path"`

	// S3 storage
	S3Bucket    string `json:"s3_bucket,omitempty" mapstructure:"s3_bucket"`
	S3Region    string `json:"s3_region,omitempty" mapstructure:"s3_region"`
	S3Prefix    string `json:"s3_prefix,omitempty" mapstructure:"s3_prefix"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" mapstructure:"s3_endpoint"`
	S3AccessKey string `json:"s3_access_key,omitempty" mapstructure:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key,omitempty" mapstructure:"s3_secret_key"`
}

// RaidsConfig configures the ARC Raiders raid log.
type RaidsConfig struct {
	AdminKey string        `json:"admin_key" mapstructure:"admin_key"`
	Storage  StorageConfig `json:"storage" mapstructure:"storage"`
}

// CacheConfig controls the TTL cache in front of the REST upstreams.
type CacheConfig struct {
	TTLSeconds int `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// WarmupConfig controls the scheduled cache warmer.
type WarmupConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Schedule string `json:"schedule" mapstructure:"schedule"` // cron expression
}

// Config is the full server configuration.
type Config struct {
	FFLogs       FFLogsConfig       `json:"fflogs" mapstructure:"fflogs"`
	WarcraftLogs WarcraftLogsConfig `json:"warcraftlogs" mapstructure:"warcraftlogs"`
	WoW          WoWConfig          `json:"wow" mapstructure:"wow"`
	Steam        SteamConfig        `json:"steam" mapstructure:"steam"`
	NFT          NFTConfig          `json:"nft" mapstructure:"nft"`
	OpenAI       OpenAIConfig       `json:"openai" mapstructure:"openai"`
	Raids        RaidsConfig        `json:"raids" mapstructure:"raids"`
	Cache        CacheConfig        `json:"cache" mapstructure:"cache"`
	Warmup       WarmupConfig       `json:"warmup" mapstructure:"warmup"`
}

// LoadConfig loads configuration from a JSON file, then applies environment
// variable overrides. A missing file is not an error when the filename is
// empty; env vars alone can fully configure the server.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := file.Close(); err != nil {
				log.Printf("Failed to close config file: %v", err)
			}
		}()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
	}

	config.applyEnv()
	return config, nil
}

// DefaultConfig returns the configuration used when no file is supplied.
// Secrets are intentionally empty; the matching endpoints answer with
// `configured: false` until they are set.
func DefaultConfig() *Config {
	return &Config{
		FFLogs: FFLogsConfig{
			CharacterID: 15692673,
		},
		WoW: WoWConfig{
			CharacterName: "Yüriko",
			Realm:         "moon-guard",
			Region:        "us",
		},
		Steam: SteamConfig{
			SteamID: "76561198355375261",
		},
		NFT: NFTConfig{
			WalletAddress: "0xc9b7a281e601baf49d6bb8ba390868539eac2c7c",
		},
		Raids: RaidsConfig{
			Storage: StorageConfig{
				Type: "memory",
			},
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
		Warmup: WarmupConfig{
			Schedule: "*/15 * * * *",
		},
	}
}

// applyEnv overrides config fields from environment variables. Values are
// trimmed because secrets pasted into dashboards routinely pick up stray
// whitespace.
func (c *Config) applyEnv() {
	setString(&c.FFLogs.ClientID, "FFLOGS_CLIENT_ID")
	setString(&c.FFLogs.ClientSecret, "FFLOGS_CLIENT_SECRET")
	setInt(&c.FFLogs.CharacterID, "FFLOGS_CHARACTER_ID")

	setString(&c.WarcraftLogs.ClientID, "WARCRAFTLOGS_CLIENT_ID")
	setString(&c.WarcraftLogs.ClientSecret, "WARCRAFTLOGS_CLIENT_SECRET")

	setString(&c.WoW.CharacterName, "WOW_CHARACTER_NAME")
	setString(&c.WoW.Realm, "WOW_REALM")
	setString(&c.WoW.Region, "WOW_REGION")

	setString(&c.Steam.APIKey, "STEAM_API_KEY")
	setString(&c.Steam.SteamID, "STEAM_ID")

	setString(&c.NFT.AlchemyAPIKey, "ALCHEMY_API_KEY")
	setString(&c.NFT.WalletAddress, "WALLET_ADDRESS")

	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")

	setString(&c.Raids.AdminKey, "RAID_ADMIN_KEY")
	setString(&c.Raids.Storage.Type, "RAID_STORAGE_TYPE")
	setString(&c.Raids.Storage.FilePath, "RAID_STORAGE_FILE_PATH")
	setString(&c.Raids.Storage.S3Bucket, "RAID_S3_BUCKET")
	setString(&c.Raids.Storage.S3Region, "RAID_S3_REGION")
	setString(&c.Raids.Storage.S3Prefix, "RAID_S3_PREFIX")
	setString(&c.Raids.Storage.S3Endpoint, "RAID_S3_ENDPOINT")
	setString(&c.Raids.Storage.S3AccessKey, "RAID_S3_ACCESS_KEY")
	setString(&c.Raids.Storage.S3SecretKey, "RAID_S3_SECRET_KEY")
}

func setString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q", key, value)
		return
	}
	*target = parsed
}
