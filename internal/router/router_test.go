package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/config"
	"github.com/ikkim/gadgetshop-backend/internal/app/controller"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	"github.com/ikkim/gadgetshop-backend/internal/db"
	"github.com/ikkim/gadgetshop-backend/internal/middleware"
	"github.com/ikkim/gadgetshop-backend/internal/storage"
	"github.com/ikkim/gadgetshop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func setupRouterTest(t *testing.T, origins []string) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedTestDB(testDB))

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: origins},
		Catalog: config.CatalogConfig{
			LandingVariants:  []string{model.VariantLaptop, model.VariantSmartphone},
			LatestPerVariant: 5,
		},
	}

	registry := repository.NewProductRegistry(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)

	catalog := service.NewCatalogService(testDB, categoryRepo, registry, cartRepo)
	carts := service.NewCartService(testDB, customerRepo, cartRepo, registry)
	auth := service.NewAuthService(testDB, repository.NewUserRepository(testDB), customerRepo, testSecret, 15*time.Minute, time.Hour)
	images := storage.NewS3Storage(context.Background(), "eu-central-1", "gadgets", "AKIDEXAMPLE", "secret", "")

	return NewRouter(
		controller.NewAuthController(auth),
		controller.NewCatalogController(catalog, cfg.Catalog),
		controller.NewCartController(carts),
		controller.NewUploadController(images, catalog),
		middleware.NewAuthMiddleware(testSecret),
		cfg,
	).Setup()
}

func token(t *testing.T, role model.UserRole) string {
	pair, err := util.GenerateTokenPair(1, 0, "admin@example.com", string(role), testSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	return pair.AccessToken
}

func do(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := setupRouterTest(t, nil)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/health", http.StatusOK},
		{"/api/v1/categories", http.StatusOK},
		{"/api/v1/products/latest", http.StatusOK},
		{"/api/v1/products/laptop", http.StatusOK},
		{"/api/v1/products/tablet", http.StatusNotFound},
		{"/api/v1/products/laptop/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	r := setupRouterTest(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/cart", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/auth/me", "").Code)

	// authenticated but no customer profile in the token
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/cart", token(t, model.RoleUser)).Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/admin/categories", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/v1/admin/categories", token(t, model.RoleUser)).Code)
	// admins get past the role check and fail on the empty body
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/admin/categories", token(t, model.RoleAdmin)).Code)
}

func TestRouter_CORS(t *testing.T) {
	r := setupRouterTest(t, []string{"https://shop.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"https://a.example.com", "*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.NoError(t, cfg.Validate())
}
