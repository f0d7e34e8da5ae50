package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a customer's basket; at most one per customer is active at a time.
type Cart struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	OwnerID          uint            `gorm:"not null;index" json:"owner_id"`
	TotalLineCount   int             `gorm:"not null;default:0" json:"total_line_count"`
	FinalPrice       decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0" json:"final_price"`
	InOrder          bool            `gorm:"not null;default:false" json:"in_order"`
	ForAnonymousUser bool            `gorm:"not null;default:false" json:"for_anonymous_user"`
	// ActiveOwnerID mirrors OwnerID while the cart is active and is NULL once
	// ordered; its unique index allows at most one active cart per customer.
	ActiveOwnerID *uint     `gorm:"uniqueIndex" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Owner *Customer  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Lines []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"lines"`
}

func (Cart) TableName() string {
	return "carts"
}

// NewActiveCart builds an unsaved active cart for the customer.
func NewActiveCart(ownerID uint) *Cart {
	active := ownerID
	return &Cart{
		OwnerID:       ownerID,
		FinalPrice:    decimal.Zero,
		ActiveOwnerID: &active,
	}
}

// CartLine is one product entry in a cart. TotalPrice is fixed at the time the
// line is written and is not re-synced when the product price changes.
type CartLine struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	CustomerID uint            `gorm:"not null;index" json:"user_id"`
	CartID     uint            `gorm:"not null;index" json:"cart_id"`
	ProductRef ProductRef      `gorm:"embedded" json:"product_ref"`
	Amount     int             `gorm:"not null;default:1" json:"amount"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Product is resolved through the registry on read.
	Product Product `gorm:"-" json:"product,omitempty"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}
