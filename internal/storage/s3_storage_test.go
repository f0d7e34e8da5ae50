package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("products/laptop/", "Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "products/laptop/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ObjectKey("products/laptop", "Photo.JPG"))

	assert.True(t, strings.HasPrefix(ObjectKey("", "a.png"), "uploads/"))
}

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, ValidateContentType("image/png", ImageContentTypes))
	assert.NoError(t, ValidateContentType("IMAGE/WEBP", ImageContentTypes))
	assert.ErrorIs(t, ValidateContentType("application/pdf", ImageContentTypes), ErrContentTypeNotAllowed)
}

func TestS3Storage_GeneratePresignedURL(t *testing.T) {
	s := NewS3Storage(context.Background(), "eu-central-1", "gadgets", "AKIDEXAMPLE", "secret", "https://cdn.example.com/")

	resp, err := s.GeneratePresignedURLWithFolder(context.Background(), "x1.png", "image/png", "products/laptop")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "products/laptop/"))
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.FileURL)
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature")

	_, err = s.GeneratePresignedURLWithFolder(context.Background(), "doc.pdf", "application/pdf", "products/laptop")
	assert.ErrorIs(t, err, ErrContentTypeNotAllowed)
}
