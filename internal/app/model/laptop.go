package model

const VariantLaptop = "laptop"

// Laptop is the laptop product variant.
type Laptop struct {
	ProductBase
	Diagonal      string `gorm:"size:250;not null" json:"diagonal" validate:"required"`
	DisplayType   string `gorm:"size:250;not null" json:"display_type" validate:"required"`
	ProcessorFreq string `gorm:"size:250;not null" json:"processor_freq" validate:"required"`
	RAM           string `gorm:"column:ram;size:250;not null" json:"ram" validate:"required"`
	Video         string `gorm:"size:250;not null" json:"video" validate:"required"`
	TimeBattery   string `gorm:"size:250;not null" json:"time_battery" validate:"required"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty" validate:"-"`
}

func (Laptop) TableName() string {
	return "laptops"
}

func (*Laptop) VariantName() string {
	return VariantLaptop
}
