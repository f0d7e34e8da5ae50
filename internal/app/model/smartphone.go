package model

const VariantSmartphone = "smartphone"

// Smartphone is the smartphone product variant. SDVolumeMax is only
// meaningful when SD is set.
type Smartphone struct {
	ProductBase
	Diagonal     string  `gorm:"size:250;not null" json:"diagonal" validate:"required"`
	DisplayType  string  `gorm:"size:250;not null" json:"display_type" validate:"required"`
	Resolution   string  `gorm:"size:250;not null" json:"resolution" validate:"required"`
	RAM          string  `gorm:"column:ram;size:250;not null" json:"ram" validate:"required"`
	AccumVolume  string  `gorm:"size:250;not null" json:"accum_volume" validate:"required"`
	SD           bool    `gorm:"column:sd;not null" json:"sd"`
	SDVolumeMax  *string `gorm:"column:sd_volume_max;size:250" json:"sd_volume_max"`
	MainCamMP    string  `gorm:"column:main_cam_mp;size:250;not null" json:"main_cam_mp" validate:"required"`
	FrontalCamMP string  `gorm:"column:frontal_cam_mp;size:250;not null" json:"frontal_cam_mp" validate:"required"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty" validate:"-"`
}

func (Smartphone) TableName() string {
	return "smartphones"
}

func (*Smartphone) VariantName() string {
	return VariantSmartphone
}

// SetDefaults marks a fresh smartphone as having an SD slot unless the
// payload says otherwise.
func (s *Smartphone) SetDefaults() {
	s.SD = true
}
