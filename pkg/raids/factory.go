package raids

import (
	"context"
	"fmt"

	"github.com/yurikomh/portfolio-api/pkg/config"
)

// NewStorage creates a raid store from configuration.
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "memory", "":
		return NewMemoryStorage(), nil

	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "./raids.json"
		}
		return NewFileStorage(path)

	case "s3":
		return NewS3Storage(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
