package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is implemented by every catalog variant. Variants share the
// ProductBase shape and add their own spec fields.
type Product interface {
	VariantName() string
	Common() *ProductBase
}

// ProductBase holds the attributes common to all variants. It is embedded by
// value so each variant keeps its own table (and its own slug namespace).
type ProductBase struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"size:250;not null" json:"name" validate:"required,max=250"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id" validate:"required"`
	Slug        string          `gorm:"size:250;uniqueIndex;not null" json:"slug" validate:"required,max=250"`
	Image       string          `gorm:"size:500" json:"image"`             // asset reference (URL or storage key)
	Description *string         `gorm:"type:text" json:"description"`      // nullable
	Price       decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (b *ProductBase) Common() *ProductBase {
	return b
}
