package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"github.com/ikkim/gadgetshop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLatestLimit is used when GetLatest is called with a non-positive limit.
const DefaultLatestLimit = 5

// maxPrice is the first value that no longer fits decimal(9,2).
var maxPrice = decimal.New(1, 7)

type CatalogService interface {
	CreateCategory(name, slug string) (*model.Category, error)
	ListCategories() ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)

	// Variants lists the registered product variants.
	Variants() []string
	// NewProduct returns an empty product of the variant for request binding.
	NewProduct(variant string) (model.Product, error)
	CreateProduct(variant string, product model.Product) (model.Product, error)
	GetProduct(variant string, id uint) (model.Product, error)
	GetProductBySlug(variant, slug string) (model.Product, error)
	ListLatest(variant string, limit int) ([]model.Product, error)
	GetLatest(variants []string, limitPerVariant int, prefer string) ([]model.Product, error)
	UpdateProduct(variant string, id uint, product model.Product) (model.Product, error)
	DeleteProduct(variant string, id uint) error
}

type catalogService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	registry     *repository.ProductRegistry
	cartRepo     repository.CartRepository
	validate     *validator.Validate
}

func NewCatalogService(
	db *gorm.DB,
	categoryRepo repository.CategoryRepository,
	registry *repository.ProductRegistry,
	cartRepo repository.CartRepository,
) CatalogService {
	return &catalogService{
		db:           db,
		categoryRepo: categoryRepo,
		registry:     registry,
		cartRepo:     cartRepo,
		validate:     newValidator(),
	}
}

// newValidator reports field names as they appear in JSON payloads.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *catalogService) CreateCategory(name, slug string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if !util.IsValidSlug(slug) {
		return nil, invalid("slug", "must contain only lowercase letters, digits, '-' and '_'")
	}

	category := &model.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(category); err != nil {
		if repository.IsDuplicateKey(err) {
			logger.Warn("Category slug already taken", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrDuplicateKey
		}
		logger.Error("Failed to create category", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        slug,
	})
	return category, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) Variants() []string {
	return s.registry.Names()
}

func (s *catalogService) NewProduct(variant string) (model.Product, error) {
	p, err := s.registry.New(variant)
	if err != nil {
		return nil, translateRegistryError(err)
	}
	return p, nil
}

// validateProduct checks the struct tags plus the rules tags cannot express.
func (s *catalogService) validateProduct(p model.Product) error {
	if err := s.validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return invalid(fieldErrs[0].Field(), "failed '"+fieldErrs[0].Tag()+"' rule")
		}
		return err
	}

	base := p.Common()
	if !util.IsValidSlug(base.Slug) {
		return invalid("slug", "must contain only lowercase letters, digits, '-' and '_'")
	}
	if base.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if !base.Price.Equal(base.Price.Round(2)) {
		return invalid("price", "must have at most 2 decimal places")
	}
	if base.Price.GreaterThanOrEqual(maxPrice) {
		return invalid("price", "must be below 10000000")
	}
	return nil
}

// isNilProduct catches both a nil interface and a typed nil pointer.
func isNilProduct(p model.Product) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (s *catalogService) ensureCategory(categoryID uint) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if repository.IsNotFound(err) {
			logger.Warn("Product refers to missing category", map[string]interface{}{
				"category_id": categoryID,
			})
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) CreateProduct(variant string, product model.Product) (model.Product, error) {
	if isNilProduct(product) {
		return nil, invalid("product", "must not be empty")
	}
	logger.Info("Creating product", map[string]interface{}{
		"variant": variant,
		"slug":    product.Common().Slug,
	})

	if !s.registry.IsRegistered(variant) {
		return nil, ErrUnknownVariant
	}
	if product.VariantName() != variant {
		return nil, invalid("variant", "payload does not match "+variant)
	}
	if err := s.validateProduct(product); err != nil {
		logger.Warn("Product validation failed", map[string]interface{}{
			"variant": variant,
			"error":   err.Error(),
		})
		return nil, err
	}
	if err := s.ensureCategory(product.Common().CategoryID); err != nil {
		return nil, err
	}

	product.Common().ID = 0
	if err := s.registry.Create(variant, product); err != nil {
		if repository.IsDuplicateKey(err) {
			logger.Warn("Product slug already taken", map[string]interface{}{
				"variant": variant,
				"slug":    product.Common().Slug,
			})
			return nil, ErrDuplicateKey
		}
		logger.Error("Failed to create product", err, map[string]interface{}{
			"variant": variant,
		})
		return nil, translateRegistryError(err)
	}

	logger.Info("Product created", map[string]interface{}{
		"variant":    variant,
		"product_id": product.Common().ID,
	})
	return s.GetProduct(variant, product.Common().ID)
}

func (s *catalogService) GetProduct(variant string, id uint) (model.Product, error) {
	p, err := s.registry.FindByID(variant, id)
	if err != nil {
		return nil, translateRegistryError(err)
	}
	return p, nil
}

func (s *catalogService) GetProductBySlug(variant, slug string) (model.Product, error) {
	p, err := s.registry.FindBySlug(variant, slug)
	if err != nil {
		return nil, translateRegistryError(err)
	}
	return p, nil
}

func (s *catalogService) ListLatest(variant string, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	products, err := s.registry.FindLatest(variant, limit)
	if err != nil {
		return nil, translateRegistryError(err)
	}
	return products, nil
}

// GetLatest concatenates the newest items of each variant in the given order.
// When prefer names one of the requested, registered variants its items are
// moved to the front; relative order is otherwise kept.
func (s *catalogService) GetLatest(variants []string, limitPerVariant int, prefer string) ([]model.Product, error) {
	if limitPerVariant <= 0 {
		limitPerVariant = DefaultLatestLimit
	}

	products := []model.Product{}
	seen := make(map[string]bool, len(variants))
	for _, variant := range variants {
		if seen[variant] {
			continue
		}
		seen[variant] = true

		if !s.registry.IsRegistered(variant) {
			logger.Debug("Skipping unknown variant in latest query", map[string]interface{}{
				"variant": variant,
			})
			continue
		}
		latest, err := s.registry.FindLatest(variant, limitPerVariant)
		if err != nil {
			logger.Error("Failed to load latest products", err, map[string]interface{}{
				"variant": variant,
			})
			return nil, err
		}
		products = append(products, latest...)
	}

	if prefer == "" || !seen[prefer] || !s.registry.IsRegistered(prefer) {
		return products, nil
	}

	ordered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.VariantName() == prefer {
			ordered = append(ordered, p)
		}
	}
	for _, p := range products {
		if p.VariantName() != prefer {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *catalogService) UpdateProduct(variant string, id uint, product model.Product) (model.Product, error) {
	if isNilProduct(product) {
		return nil, invalid("product", "must not be empty")
	}
	logger.Info("Updating product", map[string]interface{}{
		"variant":    variant,
		"product_id": id,
	})

	existing, err := s.GetProduct(variant, id)
	if err != nil {
		return nil, err
	}
	if product.VariantName() != variant {
		return nil, invalid("variant", "payload does not match "+variant)
	}
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(product.Common().CategoryID); err != nil {
		return nil, err
	}

	base := product.Common()
	base.ID = id
	base.CreatedAt = existing.Common().CreatedAt
	if err := s.registry.Save(product); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"variant":    variant,
			"product_id": id,
		})
		return nil, translateRegistryError(err)
	}

	logger.Info("Product updated", map[string]interface{}{
		"variant":    variant,
		"product_id": id,
	})
	return s.GetProduct(variant, id)
}

// DeleteProduct removes the product and every cart line pointing at it, then
// recomputes the totals of the carts that lost lines.
func (s *catalogService) DeleteProduct(variant string, id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"variant":    variant,
		"product_id": id,
	})

	if !s.registry.IsRegistered(variant) {
		return ErrUnknownVariant
	}
	ref := model.ProductRef{ContentType: variant, ObjectID: id}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		registry := s.registry.WithTx(tx)
		carts := s.cartRepo.WithTx(tx)

		if err := registry.Delete(variant, id); err != nil {
			return err
		}

		cartIDs, err := carts.CartIDsByProduct(ref)
		if err != nil {
			return err
		}
		if _, err := carts.DeleteLinesByProduct(ref); err != nil {
			return err
		}
		for _, cartID := range cartIDs {
			if _, err := recomputeCart(carts, cartID); err != nil {
				return err
			}
		}

		logger.Info("Cart lines removed with product", map[string]interface{}{
			"product":        ref.String(),
			"affected_carts": len(cartIDs),
		})
		return nil
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"variant":    variant,
			"product_id": id,
		})
		return translateRegistryError(err)
	}
	return nil
}

func translateRegistryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUnknownVariant):
		return ErrUnknownVariant
	case errors.Is(err, repository.ErrVariantMismatch):
		return invalid("variant", err.Error())
	case repository.IsNotFound(err):
		return ErrProductNotFound
	}
	return err
}
