// internal/domain/wishlist/service.go
package wishlist

import (
	"fmt"

	"github.com/velvety/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetWishlist retrieves a user's wishlist, newest first
func (s *Service) GetWishlist(userID uint) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}
	return items, nil
}

// AddToWishlist saves a product. Adding an already saved product is
// a no-op, mirroring the toggle behavior on the storefront.
func (s *Service) AddToWishlist(userID, productID uint) (*WishlistItem, error) {
	var count int64
	if err := s.db.Model(&product.Product{}).Where("id = ? AND is_active = ?", productID, true).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("product not found")
	}

	var existing WishlistItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing)
	if result.Error == nil {
		return &existing, nil
	}

	item := WishlistItem{UserID: userID, ProductID: productID}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return &item, nil
}

// RemoveFromWishlist removes a saved product
func (s *Service) RemoveFromWishlist(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in wishlist")
	}
	return nil
}

// IsWishlisted reports whether a product is saved by the user
func (s *Service) IsWishlisted(userID, productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return count > 0, nil
}
