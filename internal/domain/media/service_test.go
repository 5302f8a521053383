package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskchat-server/internal/utils/imageid"
)

// pngBytes is a minimal payload carrying the PNG magic number.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)

type fakeStorage struct {
	keys         []string
	contentTypes []string
	uploadErr    error
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func newTestService(storage *fakeStorage, maxBytes int64) *Service {
	return NewService(storage, maxBytes, zerolog.Nop())
}

func TestStoreImageHappyPath(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, 1<<20)

	url, err := svc.StoreImage(context.Background(), pngBytes)
	require.NoError(t, err)

	require.Len(t, storage.keys, 1)
	key := storage.keys[0]
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	id := strings.TrimSuffix(strings.TrimPrefix(key, "images/"), ".png")
	assert.True(t, imageid.IsValid(id), "object key must carry a parseable id: %s", key)
	assert.Equal(t, "image/png", storage.contentTypes[0])
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestStoreImageRejectsEmptyFile(t *testing.T) {
	svc := newTestService(&fakeStorage{}, 1<<20)

	_, err := svc.StoreImage(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestStoreImageRejectsOversizedFile(t *testing.T) {
	svc := newTestService(&fakeStorage{}, 16)

	_, err := svc.StoreImage(context.Background(), pngBytes)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStoreImageRejectsNonImageContent(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, 1<<20)

	_, err := svc.StoreImage(context.Background(), []byte("#!/bin/sh\necho hello\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, storage.keys, "rejected content must never reach storage")
}

func TestStoreImageKeysAreUnique(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, 1<<20)

	_, err := svc.StoreImage(context.Background(), pngBytes)
	require.NoError(t, err)
	_, err = svc.StoreImage(context.Background(), pngBytes)
	require.NoError(t, err)

	require.Len(t, storage.keys, 2)
	assert.NotEqual(t, storage.keys[0], storage.keys[1])
}
