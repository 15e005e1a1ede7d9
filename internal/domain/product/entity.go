// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/velvety/storefront/internal/variation"
	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SKU            string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Slug           string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	ShortDesc      string         `gorm:"size:500" json:"short_description"`
	Price          int64          `gorm:"not null" json:"price"` // Price in cents
	ComparePrice   int64          `json:"compare_price"`         // Original price for strike-through display
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsFeatured     bool           `gorm:"default:false" json:"is_featured"`
	TrackInventory bool           `gorm:"default:true" json:"track_inventory"`
	Stock          int            `gorm:"default:0" json:"stock"`
	Tags           string         `gorm:"size:500" json:"tags"` // Comma-separated tags
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category           `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Images     []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Attributes []ProductAttribute `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attributes,omitempty"`
	Variations []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variations,omitempty"`
	Reviews    []Review           `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// Category represents product categories
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	Image       string         `gorm:"size:500" json:"image"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// ProductImage represents product images
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductAttribute represents a named customization axis (e.g. Size)
// with its ordered list of allowed values. Deleting an attribute
// cascades to deletion of the product's variations; they would otherwise
// reference a removed axis.
type ProductAttribute struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Values    []string       `gorm:"serializer:json;type:text;not null" json:"values"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductVariation represents one combination of attribute values with
// optional price/stock/image overrides. A nil PriceCents inherits the
// product base price; zero is a real override.
type ProductVariation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ProductID  uint              `gorm:"not null;index" json:"product_id"`
	Attributes map[string]string `gorm:"serializer:json;type:text;not null" json:"attributes"`
	PriceCents *int64            `json:"price_cents"`
	Stock      int               `gorm:"default:0" json:"stock"`
	SKU        string            `gorm:"size:100" json:"sku,omitempty"`
	Images     []string          `gorm:"serializer:json;type:text" json:"images,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`
}

// Review represents a customer product review
type Review struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Rating     int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title      string         `gorm:"size:255" json:"title"`
	Content    string         `gorm:"type:text" json:"content"`
	IsApproved bool           `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string          { return "products" }
func (Category) TableName() string         { return "categories" }
func (ProductImage) TableName() string     { return "product_images" }
func (ProductAttribute) TableName() string { return "product_attributes" }
func (ProductVariation) TableName() string { return "product_variations" }
func (Review) TableName() string           { return "reviews" }

// Business methods for Product

func (p *Product) IsInStock() bool {
	return p.Stock > 0 || !p.TrackInventory
}

func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}

// VariationInfo adapts the product to the resolution engine's view.
func (p *Product) VariationInfo() variation.ProductInfo {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}
	return variation.ProductInfo{
		BasePriceCents: p.Price,
		Stock:          p.Stock,
		TrackInventory: p.TrackInventory,
		Images:         images,
	}
}

// AttributeList converts stored attributes to engine attributes,
// preserving the stored sort order.
func (p *Product) AttributeList() []variation.Attribute {
	attrs := make([]variation.Attribute, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		attrs = append(attrs, variation.Attribute{Name: a.Name, Values: a.Values})
	}
	return attrs
}

// VariationList converts stored variations to engine variations.
func (p *Product) VariationList() []variation.Variation {
	vars := make([]variation.Variation, 0, len(p.Variations))
	for _, v := range p.Variations {
		vars = append(vars, v.Engine())
	}
	return vars
}

// Engine adapts a stored variation to the resolution engine's type.
func (v *ProductVariation) Engine() variation.Variation {
	return variation.Variation{
		ID:         v.ID,
		Attributes: v.Attributes,
		PriceCents: v.PriceCents,
		Stock:      v.Stock,
		SKU:        v.SKU,
		Images:     v.Images,
	}
}

// Label renders the variation's attributes for order item snapshots,
// e.g. "Size: M, Color: Red". Attribute order follows the product's
// declared attributes so labels are stable.
func (v *ProductVariation) Label(attributes []ProductAttribute) string {
	label := ""
	for _, attr := range attributes {
		value, ok := v.Attributes[attr.Name]
		if !ok {
			continue
		}
		if label != "" {
			label += ", "
		}
		label += attr.Name + ": " + value
	}
	return label
}
