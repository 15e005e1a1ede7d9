// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/velvety/storefront/internal/domain/product"
)

// WishlistItem represents a product saved by a user. One row per
// (user, product) pair.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
