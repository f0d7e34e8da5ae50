package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogControllerTest(t *testing.T) (*controllerEnv, *gin.Engine) {
	env := setupControllerEnv(t)
	ctrl := NewCatalogController(env.catalog, testCatalogConfig())

	r := env.router
	r.GET("/categories", ctrl.ListCategories)
	r.GET("/products/latest", ctrl.GetLatest)
	r.GET("/products/:variant", ctrl.ListVariant)
	r.GET("/products/:variant/:slug", ctrl.GetProduct)
	r.POST("/admin/categories", ctrl.CreateCategory)
	r.POST("/admin/products/:variant", ctrl.CreateProduct)
	r.PUT("/admin/products/:variant/:id", ctrl.UpdateProduct)
	r.DELETE("/admin/products/:variant/:id", ctrl.DeleteProduct)
	return env, r
}

func TestCatalogController_CreateProduct(t *testing.T) {
	env, r := setupCatalogControllerTest(t)

	w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID, "xps-13", "1499.00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, "laptop", body["variant"])
	product := body["product"].(map[string]interface{})
	assert.Equal(t, "xps-13", product["slug"])
	assert.Equal(t, "1499", product["price"])
	assert.Equal(t, "32 GB", product["ram"])

	t.Run("Duplicate slug", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID, "xps-13", "10"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CATALOG_SLUG_EXISTS", decodeJSON(t, w)["error"])
	})

	t.Run("Unknown variant", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/admin/products/tablet", laptopPayload(env.category.ID, "tab", "10"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CATALOG_UNKNOWN_VARIANT", decodeJSON(t, w)["error"])
	})

	t.Run("Negative price", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID, "neg", "-1"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeJSON(t, w)
		assert.Equal(t, "VALIDATION_INVALID_INPUT", body["error"])
		assert.Contains(t, body["fields"], "price")
	})

	t.Run("Missing category", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID+50, "orphan", "10"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CATALOG_CATEGORY_NOT_FOUND", decodeJSON(t, w)["error"])
	})

	t.Run("Malformed body", func(t *testing.T) {
		w := performJSON(r, http.MethodPost, "/admin/products/laptop", map[string]interface{}{"price": "abc"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalogController_SmartphoneSDDefault(t *testing.T) {
	env, r := setupCatalogControllerTest(t)

	w := performJSON(r, http.MethodPost, "/admin/products/smartphone", smartphonePayload(env.category.ID, "iphone", "999"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, decodeJSON(t, w)["product"].(map[string]interface{})["sd"])

	payload := smartphonePayload(env.category.ID, "iphone-no-sd", "999")
	payload["sd"] = false
	w = performJSON(r, http.MethodPost, "/admin/products/smartphone", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, decodeJSON(t, w)["product"].(map[string]interface{})["sd"])
}

func TestCatalogController_GetProduct(t *testing.T) {
	env, r := setupCatalogControllerTest(t)

	_, err := env.catalog.CreateProduct(model.VariantSmartphone, newTestSmartphone(t, env, "galaxy-s24"))
	require.NoError(t, err)

	w := performJSON(r, http.MethodGet, "/products/smartphone/galaxy-s24", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "smartphone", body["variant"])

	w = performJSON(r, http.MethodGet, "/products/laptop/galaxy-s24", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CATALOG_PRODUCT_NOT_FOUND", decodeJSON(t, w)["error"])
}

func TestCatalogController_GetLatest(t *testing.T) {
	env, r := setupCatalogControllerTest(t)

	for i := 1; i <= 7; i++ {
		w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID, fmt.Sprintf("l-%d", i), "100"))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	for i := 1; i <= 3; i++ {
		w := performJSON(r, http.MethodPost, "/admin/products/smartphone", smartphonePayload(env.category.ID, fmt.Sprintf("p-%d", i), "100"))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	variantsIn := func(body map[string]interface{}) []string {
		var out []string
		for _, item := range body["products"].([]interface{}) {
			out = append(out, item.(map[string]interface{})["variant"].(string))
		}
		return out
	}

	w := performJSON(r, http.MethodGet, "/products/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(8), body["count"])
	assert.Equal(t, "laptop", variantsIn(body)[0])

	w = performJSON(r, http.MethodGet, "/products/latest?prefer=smartphone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := variantsIn(decodeJSON(t, w))
	assert.Equal(t, []string{"smartphone", "smartphone", "smartphone"}, got[:3])

	w = performJSON(r, http.MethodGet, "/products/latest?variants=smartphone&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeJSON(t, w)["count"])

	w = performJSON(r, http.MethodGet, "/products/latest?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodGet, "/products/laptop?limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeJSON(t, w)["count"])
}

func TestCatalogController_UpdateAndDelete(t *testing.T) {
	env, r := setupCatalogControllerTest(t)

	w := performJSON(r, http.MethodPost, "/admin/products/laptop", laptopPayload(env.category.ID, "old", "100"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeJSON(t, w)["product"].(map[string]interface{})["id"].(float64))

	w = performJSON(r, http.MethodPut, fmt.Sprintf("/admin/products/laptop/%d", id), laptopPayload(env.category.ID, "new", "120.50"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "new", decodeJSON(t, w)["product"].(map[string]interface{})["slug"])

	w = performJSON(r, http.MethodPut, "/admin/products/laptop/abc", laptopPayload(env.category.ID, "new", "1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodDelete, fmt.Sprintf("/admin/products/laptop/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(r, http.MethodDelete, fmt.Sprintf("/admin/products/laptop/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogController_Categories(t *testing.T) {
	_, r := setupCatalogControllerTest(t)

	w := performJSON(r, http.MethodPost, "/admin/categories", map[string]string{"name": "Tablets", "slug": "tablets"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(r, http.MethodPost, "/admin/categories", map[string]string{"name": "Tablets", "slug": "tablets"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeJSON(t, w)["count"])
}

func newTestSmartphone(t *testing.T, env *controllerEnv, slug string) model.Product {
	p, err := env.catalog.NewProduct(model.VariantSmartphone)
	require.NoError(t, err)
	phone := p.(*model.Smartphone)
	phone.Name = "Phone " + slug
	phone.CategoryID = env.category.ID
	phone.Slug = slug
	phone.Diagonal = "6.2\""
	phone.DisplayType = "AMOLED"
	phone.Resolution = "2340x1080"
	phone.RAM = "8 GB"
	phone.AccumVolume = "4000 mAh"
	phone.MainCamMP = "50"
	phone.FrontalCamMP = "12"
	return phone
}
