package model

// Category groups products of any variant.
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:250;not null" json:"name"`
	Slug string `gorm:"size:250;uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
