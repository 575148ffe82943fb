package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointmerge/blobstore"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "snapshots/")
	assert.Equal(t, "snapshots/a.pmrg", s.key("a.pmrg"))
	assert.Equal(t, "snapshots", s.key(""))

	bare := NewStore(nil, "bucket", "")
	assert.Equal(t, "CURRENT", bare.key("CURRENT"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestDial(t *testing.T) {
	s, err := Dial("localhost:9000", "key", "secret", false, "bucket", "p/")
	require.NoError(t, err)
	assert.Equal(t, "bucket", s.bucket)
}

// TestMinioStore_Integration requires a running MinIO instance, addressed by
// POINTMERGE_MINIO_ENDPOINT (e.g. localhost:9000).
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("POINTMERGE_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("POINTMERGE_MINIO_ENDPOINT not set")
	}
	const bucket = "test-pointmerge"

	store, err := Dial(endpoint, "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	require.NoError(t, err)

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}
	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.pmrg", data))

	blob, err := store.Open(ctx, "test.pmrg")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(len(data)), blob.Size())

	got, err := blobstore.ReadAll(ctx, store, "test.pmrg")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.pmrg")

	require.NoError(t, store.Delete(ctx, "test.pmrg"))
	_, err = store.Open(ctx, "test.pmrg")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
