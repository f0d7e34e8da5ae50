package repository

import (
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariantStore is the storage collection of one product variant. Methods take
// the connection explicitly so the same store serves plain and transactional
// calls.
type VariantStore interface {
	Name() string
	New() model.Product
	Create(db *gorm.DB, p model.Product) error
	Save(db *gorm.DB, p model.Product) error
	Delete(db *gorm.DB, id uint) (int64, error)
	FindByID(db *gorm.DB, id uint) (model.Product, error)
	FindBySlug(db *gorm.DB, slug string) (model.Product, error)
	FindLatest(db *gorm.DB, limit int) ([]model.Product, error)
}

type defaulter interface {
	SetDefaults()
}

type variantStore[T any, PT interface {
	*T
	model.Product
}] struct {
	name string
}

// NewVariantStore builds the store for variant T, e.g.
// NewVariantStore[model.Laptop](model.VariantLaptop).
func NewVariantStore[T any, PT interface {
	*T
	model.Product
}](name string) VariantStore {
	return &variantStore[T, PT]{name: name}
}

func (s *variantStore[T, PT]) Name() string {
	return s.name
}

func (s *variantStore[T, PT]) New() model.Product {
	item := PT(new(T))
	if d, ok := any(item).(defaulter); ok {
		d.SetDefaults()
	}
	return item
}

func (s *variantStore[T, PT]) cast(p model.Product) (PT, error) {
	item, ok := p.(PT)
	if !ok {
		var zero PT
		return zero, ErrVariantMismatch
	}
	return item, nil
}

func (s *variantStore[T, PT]) Create(db *gorm.DB, p model.Product) error {
	item, err := s.cast(p)
	if err != nil {
		return err
	}
	return db.Omit(clause.Associations).Create(item).Error
}

func (s *variantStore[T, PT]) Save(db *gorm.DB, p model.Product) error {
	item, err := s.cast(p)
	if err != nil {
		return err
	}
	return db.Omit(clause.Associations).Save(item).Error
}

func (s *variantStore[T, PT]) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Delete(new(T), id)
	return result.RowsAffected, result.Error
}

func (s *variantStore[T, PT]) FindByID(db *gorm.DB, id uint) (model.Product, error) {
	item := new(T)
	if err := db.Preload("Category").First(item, id).Error; err != nil {
		return nil, err
	}
	return PT(item), nil
}

func (s *variantStore[T, PT]) FindBySlug(db *gorm.DB, slug string) (model.Product, error) {
	item := new(T)
	if err := db.Preload("Category").Where("slug = ?", slug).First(item).Error; err != nil {
		return nil, err
	}
	return PT(item), nil
}

// FindLatest returns up to limit rows, newest (highest id) first.
func (s *variantStore[T, PT]) FindLatest(db *gorm.DB, limit int) ([]model.Product, error) {
	products := []model.Product{}
	if limit <= 0 {
		return products, nil
	}

	var items []T
	if err := db.Preload("Category").Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		products = append(products, PT(&items[i]))
	}
	return products, nil
}
