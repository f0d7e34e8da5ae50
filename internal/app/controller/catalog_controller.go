package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/gadgetshop-backend/config"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	apperrors "github.com/ikkim/gadgetshop-backend/internal/errors"
	"github.com/ikkim/gadgetshop-backend/internal/middleware"
)

const maxListLimit = 100

type CatalogController struct {
	catalogService service.CatalogService
	landing        config.CatalogConfig
}

func NewCatalogController(catalogService service.CatalogService, landing config.CatalogConfig) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		landing:        landing,
	}
}

// ProductResponse tags a product with its variant so clients can pick the
// right detail view.
type ProductResponse struct {
	Variant string        `json:"variant"`
	Product model.Product `json:"product"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=250"`
	Slug string `json:"slug" binding:"required,max=250"`
}

func wrapProducts(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{Variant: p.VariantName(), Product: p})
	}
	return out
}

// limitQuery reads ?limit=, falling back to def when absent.
func limitQuery(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 || limit > maxListLimit {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "limit must be between 0 and 100")
		return 0, false
	}
	return limit, true
}

// ListCategories returns every category
// GET /api/v1/categories
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories, err := ctrl.catalogService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory creates a category
// POST /api/v1/admin/categories
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.catalogService.CreateCategory(req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetLatest returns the landing page feed
// GET /api/v1/products/latest?variants=laptop,smartphone&limit=5&prefer=smartphone
func (ctrl *CatalogController) GetLatest(c *gin.Context) {
	variants := ctrl.landing.LandingVariants
	if raw, ok := c.GetQuery("variants"); ok {
		variants = config.ParseList(raw)
	}
	prefer := ctrl.landing.PreferVariant
	if raw, ok := c.GetQuery("prefer"); ok {
		prefer = raw
	}
	limit, ok := limitQuery(c, ctrl.landing.LatestPerVariant)
	if !ok {
		return
	}

	products, err := ctrl.catalogService.GetLatest(variants, limit, prefer)
	if err != nil {
		respondServiceError(c, err, "list latest products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": wrapProducts(products),
		"count":    len(products),
	})
}

// ListVariant returns the newest products of one variant
// GET /api/v1/products/:variant?limit=
func (ctrl *CatalogController) ListVariant(c *gin.Context) {
	limit, ok := limitQuery(c, service.DefaultLatestLimit)
	if !ok {
		return
	}

	products, err := ctrl.catalogService.ListLatest(c.Param("variant"), limit)
	if err != nil {
		respondServiceError(c, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": wrapProducts(products),
		"count":    len(products),
	})
}

// GetProduct returns one product by slug
// GET /api/v1/products/:variant/:slug
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	product, err := ctrl.catalogService.GetProductBySlug(c.Param("variant"), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "get product")
		return
	}

	c.JSON(http.StatusOK, ProductResponse{Variant: product.VariantName(), Product: product})
}

// bindProduct decodes the body into a fresh product of the path's variant.
func (ctrl *CatalogController) bindProduct(c *gin.Context) (string, model.Product, bool) {
	variant := c.Param("variant")
	product, err := ctrl.catalogService.NewProduct(variant)
	if err != nil {
		respondServiceError(c, err, "bind product")
		return "", nil, false
	}
	if err := c.ShouldBindJSON(product); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid product payload", map[string]interface{}{
			"variant": variant,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid product payload")
		return "", nil, false
	}
	return variant, product, true
}

// CreateProduct creates a product of the path's variant
// POST /api/v1/admin/products/:variant
func (ctrl *CatalogController) CreateProduct(c *gin.Context) {
	variant, product, ok := ctrl.bindProduct(c)
	if !ok {
		return
	}

	created, err := ctrl.catalogService.CreateProduct(variant, product)
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, ProductResponse{Variant: variant, Product: created})
}

// UpdateProduct replaces a product's fields
// PUT /api/v1/admin/products/:variant/:id
func (ctrl *CatalogController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variant, product, ok := ctrl.bindProduct(c)
	if !ok {
		return
	}

	updated, err := ctrl.catalogService.UpdateProduct(variant, id, product)
	if err != nil {
		respondServiceError(c, err, "update product")
		return
	}

	c.JSON(http.StatusOK, ProductResponse{Variant: variant, Product: updated})
}

// DeleteProduct removes a product and the cart lines pointing at it
// DELETE /api/v1/admin/products/:variant/:id
func (ctrl *CatalogController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteProduct(c.Param("variant"), id); err != nil {
		respondServiceError(c, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
