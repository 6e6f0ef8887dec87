package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailx/retailx-backend/internal/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newLocalStorage(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewStorageService(&config.Config{
		Storage: config.StorageConfig{UploadDir: dir, PublicBaseURL: "http://cdn.test/", MaxUploadMB: 1},
	})
	require.NoError(t, err)
	require.False(t, svc.UsesS3())
	return svc, dir
}

func TestStorageService_LocalUpload(t *testing.T) {
	svc, dir := newLocalStorage(t)

	result, err := svc.UploadProductImage(context.Background(), "s@shop.in", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.MimeType)
	assert.True(t, strings.HasPrefix(result.Key, "products/s_at_shop.in/"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, "http://cdn.test/uploads/"+result.Key, result.URL)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, svc.DeleteFile(context.Background(), result.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(result.Key)))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, svc.DeleteFile(context.Background(), result.Key))
}

func TestStorageService_Rejects(t *testing.T) {
	svc, _ := newLocalStorage(t)
	ctx := context.Background()

	_, err := svc.UploadProductImage(ctx, "s@shop.in", strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UploadProductImage(ctx, "s@shop.in", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrValidation)

	big := append(append([]byte{}, pngHeader...), make([]byte, 1024*1024)...)
	_, err = svc.UploadProductImage(ctx, "s@shop.in", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrValidation)
}
