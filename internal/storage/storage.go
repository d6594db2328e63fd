package storage

import (
	"context"
	"fmt"

	"github.com/Chelo123Mau/P-RENAPP/config"
)

// StoredObject describes a blob after it has been persisted.
type StoredObject struct {
	Key  string
	URL  string
	Size int64
}

// Store persists opaque blobs. Records reference blobs by key and serve
// them through the returned URL.
type Store interface {
	Put(ctx context.Context, data []byte, filename string, contentType string) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
}

// New selects the blob driver from config.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
