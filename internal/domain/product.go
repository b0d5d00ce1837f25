package domain

// Product is a catalog item shown by the storefront. The JSON id key is "_id"
// because the storefront frontend addresses products by product._id.
type Product struct {
	ID             string            `json:"_id" gorm:"primaryKey;size:24"`
	Title          string            `json:"title" gorm:"size:200;index"`
	Subtitle       string            `json:"subtitle,omitempty" gorm:"size:200"`
	Description    string            `json:"description,omitempty" gorm:"type:text"`
	Images         []string          `json:"images" gorm:"type:text;serializer:json"` // bare filenames, display order
	Category       string            `json:"category,omitempty" gorm:"size:64;index"`
	Features       []string          `json:"features,omitempty" gorm:"type:text;serializer:json"`
	Specifications map[string]string `json:"specifications,omitempty" gorm:"type:text;serializer:json"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "catalog_product"
}

// CollectionName is the document store collection holding products.
const CollectionName = "products"
