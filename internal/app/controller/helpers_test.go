package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/config"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	"github.com/ikkim/gadgetshop-backend/internal/db"
	"github.com/ikkim/gadgetshop-backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type controllerEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	catalog  service.CatalogService
	carts    service.CartService
	auth     service.AuthService
	category *model.Category
}

func setupControllerEnv(t *testing.T) *controllerEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedTestDB(testDB))

	registry := repository.NewProductRegistry(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	customerRepo := repository.NewCustomerRepository(testDB)

	category, err := categoryRepo.FindBySlug("laptops")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	return &controllerEnv{
		db:       testDB,
		router:   gin.New(),
		catalog:  service.NewCatalogService(testDB, categoryRepo, registry, cartRepo),
		carts:    service.NewCartService(testDB, customerRepo, cartRepo, registry),
		auth:     service.NewAuthService(testDB, repository.NewUserRepository(testDB), customerRepo, "test-secret", 15*time.Minute, time.Hour),
		category: category,
	}
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		LandingVariants:  []string{model.VariantLaptop, model.VariantSmartphone},
		LatestPerVariant: 5,
	}
}

// asCustomer stands in for the auth middleware.
func asCustomer(userID, customerID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, model.RoleUser)
		if customerID != 0 {
			c.Set(middleware.CustomerIDKey, customerID)
		}
		c.Next()
	}
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func laptopPayload(categoryID uint, slug, price string) map[string]interface{} {
	return map[string]interface{}{
		"name":           "Laptop " + slug,
		"category_id":    categoryID,
		"slug":           slug,
		"price":          price,
		"diagonal":       "14\"",
		"display_type":   "OLED",
		"processor_freq": "3.0 GHz",
		"ram":            "32 GB",
		"video":          "Integrated",
		"time_battery":   "12 h",
	}
}

func smartphonePayload(categoryID uint, slug, price string) map[string]interface{} {
	return map[string]interface{}{
		"name":           "Phone " + slug,
		"category_id":    categoryID,
		"slug":           slug,
		"price":          price,
		"diagonal":       "6.1\"",
		"display_type":   "OLED",
		"resolution":     "2532x1170",
		"ram":            "6 GB",
		"accum_volume":   "3300 mAh",
		"main_cam_mp":    "48",
		"frontal_cam_mp": "12",
	}
}

func createCustomer(t *testing.T, testDB *gorm.DB, email string) *model.Customer {
	user := &model.User{Email: email, PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)
	customer := &model.Customer{UserID: user.ID}
	require.NoError(t, testDB.Create(customer).Error)
	return customer
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func performRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
