package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), []byte("contenido"), "acta constitutiva.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, int64(len("contenido")), obj.Size)
	assert.True(t, strings.HasSuffix(obj.Key, "acta_constitutiva.pdf"))
	assert.Equal(t, "http://localhost:8080/uploads/"+obj.Key, obj.URL)

	data, err := os.ReadFile(filepath.Join(dir, obj.Key))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, store.Delete(context.Background(), obj.Key))
	_, err = os.Stat(filepath.Join(dir, obj.Key))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is a no-op.
	assert.NoError(t, store.Delete(context.Background(), obj.Key))
}

func TestLocalStoreRejectsPathTraversalKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "../secret"))
}

func TestBuildKeySanitizesName(t *testing.T) {
	key := buildKey("../../etc/passwd")
	assert.False(t, strings.Contains(key, "/"))
	assert.True(t, strings.HasSuffix(key, "passwd"))

	key = buildKey("")
	assert.True(t, strings.HasSuffix(key, "archivo"))
}
