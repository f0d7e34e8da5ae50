package repository

import (
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductRegistry maps variant names to their stores. It is the lookup side
// of model.ProductRef: a reference resolves by picking the store named by
// its content type and loading the row by id.
type ProductRegistry struct {
	db     *gorm.DB
	stores map[string]VariantStore
	names  []string
}

// DefaultVariantStores returns the stores for every shipped variant.
func DefaultVariantStores() []VariantStore {
	return []VariantStore{
		NewVariantStore[model.Laptop](model.VariantLaptop),
		NewVariantStore[model.Smartphone](model.VariantSmartphone),
	}
}

func NewProductRegistry(db *gorm.DB, stores ...VariantStore) *ProductRegistry {
	if len(stores) == 0 {
		stores = DefaultVariantStores()
	}
	r := &ProductRegistry{
		db:     db,
		stores: make(map[string]VariantStore, len(stores)),
	}
	for _, store := range stores {
		if _, exists := r.stores[store.Name()]; !exists {
			r.names = append(r.names, store.Name())
		}
		r.stores[store.Name()] = store
	}
	return r
}

// WithTx returns a registry bound to tx, sharing the same stores.
func (r *ProductRegistry) WithTx(tx *gorm.DB) *ProductRegistry {
	return &ProductRegistry{db: tx, stores: r.stores, names: r.names}
}

// Names lists registered variants in registration order.
func (r *ProductRegistry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *ProductRegistry) IsRegistered(variant string) bool {
	_, ok := r.stores[variant]
	return ok
}

func (r *ProductRegistry) store(variant string) (VariantStore, error) {
	store, ok := r.stores[variant]
	if !ok {
		logger.Debug("Unknown product variant requested", map[string]interface{}{
			"variant": variant,
		})
		return nil, ErrUnknownVariant
	}
	return store, nil
}

// New returns an empty, defaulted product of the variant, ready for binding.
func (r *ProductRegistry) New(variant string) (model.Product, error) {
	store, err := r.store(variant)
	if err != nil {
		return nil, err
	}
	return store.New(), nil
}

func (r *ProductRegistry) Create(variant string, p model.Product) error {
	store, err := r.store(variant)
	if err != nil {
		return err
	}
	if p.VariantName() != variant {
		return ErrVariantMismatch
	}

	logger.Debug("Creating product in database", map[string]interface{}{
		"variant": variant,
		"slug":    p.Common().Slug,
	})

	if err := store.Create(r.db, p); err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"variant": variant,
			"slug":    p.Common().Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"variant":    variant,
		"product_id": p.Common().ID,
	})
	return nil
}

func (r *ProductRegistry) Save(p model.Product) error {
	store, err := r.store(p.VariantName())
	if err != nil {
		return err
	}

	if err := store.Save(r.db, p); err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"variant":    p.VariantName(),
			"product_id": p.Common().ID,
		})
		return err
	}
	return nil
}

// Delete removes a product row; gorm.ErrRecordNotFound if nothing matched.
func (r *ProductRegistry) Delete(variant string, id uint) error {
	store, err := r.store(variant)
	if err != nil {
		return err
	}

	affected, err := store.Delete(r.db, id)
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"variant":    variant,
			"product_id": id,
		})
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"variant":    variant,
		"product_id": id,
	})
	return nil
}

func (r *ProductRegistry) FindByID(variant string, id uint) (model.Product, error) {
	store, err := r.store(variant)
	if err != nil {
		return nil, err
	}
	return store.FindByID(r.db, id)
}

func (r *ProductRegistry) FindBySlug(variant, slug string) (model.Product, error) {
	store, err := r.store(variant)
	if err != nil {
		return nil, err
	}
	return store.FindBySlug(r.db, slug)
}

// FindLatest returns the newest limit products of the variant.
func (r *ProductRegistry) FindLatest(variant string, limit int) ([]model.Product, error) {
	store, err := r.store(variant)
	if err != nil {
		return nil, err
	}

	products, err := store.FindLatest(r.db, limit)
	if err != nil {
		logger.Error("Failed to find latest products in database", err, map[string]interface{}{
			"variant": variant,
			"limit":   limit,
		})
		return nil, err
	}

	logger.Debug("Latest products found in database", map[string]interface{}{
		"variant": variant,
		"count":   len(products),
	})
	return products, nil
}

// Resolve loads the product a reference points at. It fails with
// ErrUnknownVariant or gorm.ErrRecordNotFound.
func (r *ProductRegistry) Resolve(ref model.ProductRef) (model.Product, error) {
	return r.FindByID(ref.ContentType, ref.ObjectID)
}
