package model

import (
	"time"
)

// Customer is the shopping profile of a User; carts belong to it.
type Customer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // one per account in practice, not enforced
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:250" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Carts     []Cart     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CartLines []CartLine `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
