// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/pricing"
	"github.com/velvety/storefront/internal/variation"
	"gorm.io/gorm"
)

// Service handles cart business logic. Authenticated carts live in
// Postgres; guest carts live in Redis keyed by session.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID   uint  `json:"product_id" binding:"required"`
	VariationID *uint `json:"variation_id"`
	Quantity    int   `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// GetCart retrieves the priced cart for a user or guest session.
// Prices are resolved at read time so the cart always reflects the
// current catalog, never stale snapshots.
func (s *Service) GetCart(userID *uint, sessionID string) (*View, error) {
	items, err := s.rawItems(userID, sessionID)
	if err != nil {
		return nil, err
	}

	view := &View{Lines: make([]Line, 0, len(items))}
	var engineLines []pricing.Line
	for _, item := range items {
		line, err := s.priceLine(item)
		if err != nil {
			// Product removed or deactivated since the item was added
			continue
		}
		view.Lines = append(view.Lines, *line)
		view.ItemCount += line.Quantity
		engineLines = append(engineLines, pricing.Line{
			ProductID:      line.ProductID,
			VariationID:    line.VariationID,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}
	view.SubtotalCents = pricing.ComputeSubtotal(engineLines)
	return view, nil
}

// AddToCart adds an item to the cart after validating the product,
// the variation selection and available stock.
func (s *Service) AddToCart(userID *uint, sessionID string, req *AddToCartRequest) (*View, error) {
	var prod product.Product
	result := s.db.Preload("Variations").
		Where("id = ? AND is_active = ?", req.ProductID, true).
		First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	available := prod.Stock
	if req.VariationID != nil {
		v := findVariation(prod.Variations, *req.VariationID)
		if v == nil {
			return nil, fmt.Errorf("variation not found for this product")
		}
		ev := v.Engine()
		available = variation.EffectiveStock(prod.VariationInfo(), &ev)
	} else if len(prod.Variations) > 0 {
		return nil, fmt.Errorf("this product requires a variation selection")
	} else if !prod.TrackInventory {
		available = variation.UnboundedStock
	}

	if available < req.Quantity {
		return nil, fmt.Errorf("insufficient stock. Available: %d", available)
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, req, available); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToGuestCart(sessionID, req, available); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID, sessionID)
}

// UpdateCartItem sets the quantity of a cart line; zero removes it
func (s *Service) UpdateCartItem(userID *uint, sessionID string, productID uint, variationID *uint, req *UpdateCartItemRequest) (*View, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if req.Quantity > 0 {
		var prod product.Product
		if err := s.db.Preload("Variations").Where("id = ?", productID).First(&prod).Error; err != nil {
			return nil, fmt.Errorf("product not found")
		}
		available := prod.Stock
		if variationID != nil {
			v := findVariation(prod.Variations, *variationID)
			if v == nil {
				return nil, fmt.Errorf("variation not found for this product")
			}
			ev := v.Engine()
			available = variation.EffectiveStock(prod.VariationInfo(), &ev)
		} else if !prod.TrackInventory {
			available = variation.UnboundedStock
		}
		if available < req.Quantity {
			return nil, fmt.Errorf("insufficient stock. Available: %d", available)
		}
	}

	if userID != nil {
		if err := s.updateUserCartItem(*userID, productID, variationID, req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.updateGuestCartItem(sessionID, productID, variationID, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID, sessionID)
}

// RemoveFromCart removes a cart line
func (s *Service) RemoveFromCart(userID *uint, sessionID string, productID uint, variationID *uint) (*View, error) {
	return s.UpdateCartItem(userID, sessionID, productID, variationID, &UpdateCartItemRequest{Quantity: 0})
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(userID *uint, sessionID string) error {
	if userID != nil {
		return s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error
	}
	ctx := context.Background()
	return s.redisClient.Del(ctx, cartKey(sessionID)).Err()
}

// MergeGuestCartToUser merges a guest cart into a user cart at login.
// Quantities for the same line add up; the guest cart is then cleared.
func (s *Service) MergeGuestCartToUser(userID uint, sessionID string) error {
	guestCart, err := s.getGuestCart(sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil
	}

	for _, guestItem := range guestCart.Items {
		var existing CartItem
		result := s.lineQuery(userID, guestItem.ProductID, guestItem.VariationID).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			item := CartItem{
				UserID:      userID,
				ProductID:   guestItem.ProductID,
				VariationID: guestItem.VariationID,
				Quantity:    guestItem.Quantity,
			}
			s.db.Create(&item)
		} else if result.Error == nil {
			existing.Quantity += guestItem.Quantity
			s.db.Save(&existing)
		}
	}

	return s.ClearCart(nil, sessionID)
}

// Private helpers

func (s *Service) rawItems(userID *uint, sessionID string) ([]SessionItem, error) {
	if userID != nil {
		var dbItems []CartItem
		if err := s.db.Where("user_id = ?", *userID).Order("created_at ASC").Find(&dbItems).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
		}
		items := make([]SessionItem, len(dbItems))
		for i, item := range dbItems {
			items[i] = SessionItem{
				ProductID:   item.ProductID,
				VariationID: item.VariationID,
				Quantity:    item.Quantity,
			}
		}
		return items, nil
	}

	sessionCart, err := s.getGuestCart(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionCart.Items, nil
}

func (s *Service) priceLine(item SessionItem) (*Line, error) {
	var prod product.Product
	err := s.db.Preload("Variations").Preload("Attributes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("is_primary DESC, sort_order ASC, id ASC")
	}).Where("id = ? AND is_active = ?", item.ProductID, true).First(&prod).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	return buildLine(&prod, item)
}

// buildLine prices one cart line against a loaded product. Variation
// overrides resolve through the engine; the in-stock flag reflects the
// line's requested quantity, not just non-zero stock.
func buildLine(prod *product.Product, item SessionItem) (*Line, error) {
	info := prod.VariationInfo()
	line := &Line{
		ProductID:   item.ProductID,
		VariationID: item.VariationID,
		Name:        prod.Name,
		Slug:        prod.Slug,
		Quantity:    item.Quantity,
	}

	if item.VariationID != nil {
		v := findVariation(prod.Variations, *item.VariationID)
		if v == nil {
			return nil, fmt.Errorf("variation not found")
		}
		ev := v.Engine()
		line.VariationLabel = v.Label(prod.Attributes)
		line.UnitPriceCents = variation.EffectivePrice(info, &ev)
		line.Images = variation.EffectiveImages(info, &ev)
		line.InStock = variation.InStock(info, &ev, item.Quantity)
	} else {
		line.UnitPriceCents = prod.Price
		line.Images = info.Images
		line.InStock = variation.InStock(info, nil, item.Quantity)
	}

	line.LineTotalCents = line.UnitPriceCents * int64(line.Quantity)
	return line, nil
}

func (s *Service) addToUserCart(userID uint, req *AddToCartRequest, available int) error {
	var existing CartItem
	result := s.lineQuery(userID, req.ProductID, req.VariationID).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		item := CartItem{
			UserID:      userID,
			ProductID:   req.ProductID,
			VariationID: req.VariationID,
			Quantity:    req.Quantity,
		}
		return s.db.Create(&item).Error
	} else if result.Error != nil {
		return fmt.Errorf("failed to check cart: %w", result.Error)
	}

	newQuantity := existing.Quantity + req.Quantity
	if available < newQuantity {
		return fmt.Errorf("insufficient stock for total quantity. Available: %d", available)
	}
	existing.Quantity = newQuantity
	return s.db.Save(&existing).Error
}

func (s *Service) addToGuestCart(sessionID string, req *AddToCartRequest, available int) error {
	sessionCart, err := s.getGuestCart(sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range sessionCart.Items {
		if sameLine(sessionCart.Items[i], req.ProductID, req.VariationID) {
			newQuantity := sessionCart.Items[i].Quantity + req.Quantity
			if available < newQuantity {
				return fmt.Errorf("insufficient stock for total quantity. Available: %d", available)
			}
			sessionCart.Items[i].Quantity = newQuantity
			found = true
			break
		}
	}

	if !found {
		sessionCart.Items = append(sessionCart.Items, SessionItem{
			ProductID:   req.ProductID,
			VariationID: req.VariationID,
			Quantity:    req.Quantity,
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(sessionID, sessionCart)
}

func (s *Service) updateUserCartItem(userID, productID uint, variationID *uint, quantity int) error {
	if quantity == 0 {
		return s.lineQuery(userID, productID, variationID).Delete(&CartItem{}).Error
	}
	result := s.lineQuery(userID, productID, variationID).
		Model(&CartItem{}).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

func (s *Service) updateGuestCartItem(sessionID string, productID uint, variationID *uint, quantity int) error {
	sessionCart, err := s.getGuestCart(sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range sessionCart.Items {
		if sameLine(sessionCart.Items[i], productID, variationID) {
			if quantity == 0 {
				sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			} else {
				sessionCart.Items[i].Quantity = quantity
			}
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("item not found in cart")
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(sessionID, sessionCart)
}

func (s *Service) lineQuery(userID, productID uint, variationID *uint) *gorm.DB {
	query := s.db.Where("user_id = ? AND product_id = ?", userID, productID)
	if variationID == nil {
		return query.Where("variation_id IS NULL")
	}
	return query.Where("variation_id = ?", *variationID)
}

func (s *Service) getGuestCart(sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	ctx := context.Background()
	cartData, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return &SessionCart{Items: []SessionItem{}, UpdatedAt: time.Now().UTC()}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, err
	}
	return &sessionCart, nil
}

func (s *Service) saveGuestCart(sessionID string, cart *SessionCart) error {
	ctx := context.Background()
	cartData, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	// Guest carts expire after 24 hours of inactivity
	return s.redisClient.Set(ctx, cartKey(sessionID), cartData, 24*time.Hour).Err()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func sameLine(item SessionItem, productID uint, variationID *uint) bool {
	if item.ProductID != productID {
		return false
	}
	if item.VariationID == nil && variationID == nil {
		return true
	}
	return item.VariationID != nil && variationID != nil && *item.VariationID == *variationID
}

func findVariation(vars []product.ProductVariation, id uint) *product.ProductVariation {
	for i := range vars {
		if vars[i].ID == id {
			return &vars[i]
		}
	}
	return nil
}
