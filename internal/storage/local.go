package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// LocalStore keeps blobs on the local filesystem under a single flat
// directory and serves them through the /uploads static route.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir string, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, data []byte, filename string, contentType string) (*StoredObject, error) {
	key := buildKey(filename)
	path := filepath.Join(s.dir, key)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write blob: %w", err)
	}

	return &StoredObject{
		Key:  key,
		URL:  fmt.Sprintf("%s/uploads/%s", s.baseURL, key),
		Size: int64(len(data)),
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	// Keys are uuid-prefixed sanitized names; reject anything with path parts.
	if key != filepath.Base(key) {
		return fmt.Errorf("invalid storage key: %s", key)
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// buildKey prefixes a sanitized filename with a fresh uuid so uploads
// with the same name never collide.
func buildKey(filename string) string {
	base := filepath.Base(filename)
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "archivo"
	}
	return fmt.Sprintf("%s-%s", uuid.NewString(), base)
}
