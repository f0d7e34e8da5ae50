package model

import "fmt"

// ProductRef points at one product of any registered variant: the variant
// name plays the role of a content type, ObjectID is the row id inside that
// variant's table.
type ProductRef struct {
	ContentType string `gorm:"column:content_type;size:50;not null;index:idx_cart_lines_product_ref" json:"variant"`
	ObjectID    uint   `gorm:"column:object_id;not null;index:idx_cart_lines_product_ref" json:"product_id"`
}

// RefTo captures a reference to an already persisted product.
func RefTo(p Product) ProductRef {
	return ProductRef{
		ContentType: p.VariantName(),
		ObjectID:    p.Common().ID,
	}
}

func (r ProductRef) String() string {
	return fmt.Sprintf("%s#%d", r.ContentType, r.ObjectID)
}
