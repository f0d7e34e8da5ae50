package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStorage struct {
	folder string
	err    error
}

func (f *fakeImageStorage) GeneratePresignedURLWithFolder(_ context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := storage.ValidateContentType(contentType, storage.ImageContentTypes); err != nil {
		return nil, err
	}
	f.folder = folder
	key := storage.ObjectKey(folder, filename)
	return &storage.PresignedURLResponse{
		UploadURL: "https://upload.example.com/" + key,
		FileURL:   "https://cdn.example.com/" + key,
		Key:       key,
	}, nil
}

func setupUploadControllerTest(t *testing.T, store *fakeImageStorage) *gin.Engine {
	env := setupControllerEnv(t)
	ctrl := NewUploadController(store, env.catalog)
	env.router.POST("/uploads/presigned-url", ctrl.GeneratePresignedURL)
	return env.router
}

func TestUploadController_GeneratePresignedURL(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		storeErr   error
		wantStatus int
		wantCode   string
		wantFolder string
	}{
		{"Default folder", gin.H{"filename": "a.png", "content_type": "image/png"}, nil, http.StatusOK, "", "products"},
		{"Variant folder", gin.H{"filename": "a.jpg", "content_type": "image/jpeg", "variant": "laptop"}, nil, http.StatusOK, "", "products/laptop"},
		{"Unknown variant", gin.H{"filename": "a.jpg", "content_type": "image/jpeg", "variant": "tablet"}, nil, http.StatusNotFound, "CATALOG_UNKNOWN_VARIANT", ""},
		{"Not an image", gin.H{"filename": "a.pdf", "content_type": "application/pdf"}, nil, http.StatusBadRequest, "UPLOAD_INVALID_FILE_TYPE", ""},
		{"Missing filename", gin.H{"content_type": "image/png"}, nil, http.StatusBadRequest, "VALIDATION_INVALID_INPUT", ""},
		{"Storage failure", gin.H{"filename": "a.png", "content_type": "image/png"}, errors.New("s3 down"), http.StatusInternalServerError, "UPLOAD_FAILED", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeImageStorage{err: tt.storeErr}
			r := setupUploadControllerTest(t, store)

			w := performJSON(r, http.MethodPost, "/uploads/presigned-url", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decodeJSON(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error"])
				return
			}
			assert.Equal(t, tt.wantFolder, store.folder)
			key := body["key"].(string)
			assert.Contains(t, key, tt.wantFolder+"/")
			assert.Equal(t, fmt.Sprintf("https://cdn.example.com/%s", key), body["file_url"])
		})
	}
}
