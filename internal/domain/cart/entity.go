// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/velvety/storefront/internal/domain/product"
)

// CartItem represents a persisted cart line for an authenticated user.
// One row per (user, product, variation) combination.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_cart_user_line,unique" json:"user_id"`
	ProductID   uint      `gorm:"not null;index:idx_cart_user_line,unique" json:"product_id"`
	VariationID *uint     `gorm:"index:idx_cart_user_line,unique" json:"variation_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionItem is one line of a guest cart stored in Redis
type SessionItem struct {
	ProductID   uint  `json:"product_id"`
	VariationID *uint `json:"variation_id,omitempty"`
	Quantity    int   `json:"quantity"`
}

// SessionCart is the guest cart payload stored in Redis as JSON
type SessionCart struct {
	Items     []SessionItem `json:"items"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Line is a priced cart line returned to clients
type Line struct {
	ProductID      uint     `json:"product_id"`
	VariationID    *uint    `json:"variation_id,omitempty"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	VariationLabel string   `json:"variation_label,omitempty"`
	UnitPriceCents int64    `json:"unit_price_cents"`
	Quantity       int      `json:"quantity"`
	LineTotalCents int64    `json:"line_total_cents"`
	Images         []string `json:"images,omitempty"`
	InStock        bool     `json:"in_stock"`
}

// View is the full priced cart returned to clients
type View struct {
	Lines         []Line `json:"lines"`
	SubtotalCents int64  `json:"subtotal_cents"`
	ItemCount     int    `json:"item_count"`
}
