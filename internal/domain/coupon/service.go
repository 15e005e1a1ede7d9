// internal/domain/coupon/service.go
package coupon

import (
	"fmt"
	"time"

	"github.com/velvety/storefront/internal/pricing"
	"gorm.io/gorm"
)

// Service handles coupon business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new coupon service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CouponCreateRequest represents coupon creation data
type CouponCreateRequest struct {
	Code          string     `json:"code" binding:"required"`
	Kind          string     `json:"kind" binding:"required,oneof=PERCENT FIXED"`
	Value         int64      `json:"value" binding:"required,min=1"`
	MinOrderCents *int64     `json:"min_order_cents"`
	MaxUses       *int       `json:"max_uses"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// CouponUpdateRequest represents coupon update data
type CouponUpdateRequest struct {
	Value         *int64     `json:"value"`
	MinOrderCents *int64     `json:"min_order_cents"`
	MaxUses       *int       `json:"max_uses"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// GetCoupons lists all coupons (admin operation)
func (s *Service) GetCoupons() ([]Coupon, error) {
	var coupons []Coupon
	if err := s.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon creates a new coupon. The code is normalized before
// storage so lookups can match case-insensitively.
func (s *Service) CreateCoupon(req *CouponCreateRequest) (*Coupon, error) {
	code := pricing.NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("coupon code must not be empty")
	}
	if req.Kind == KindPercent && (req.Value < 1 || req.Value > 100) {
		return nil, fmt.Errorf("percent value must be between 1 and 100")
	}

	var existing Coupon
	if result := s.db.Where("code = ?", code).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("coupon %s already exists", code)
	}

	coupon := Coupon{
		Code:          code,
		Kind:          req.Kind,
		Value:         req.Value,
		MinOrderCents: req.MinOrderCents,
		MaxUses:       req.MaxUses,
		ExpiresAt:     req.ExpiresAt,
	}
	if err := s.db.Create(&coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return &coupon, nil
}

// UpdateCoupon updates an existing coupon
func (s *Service) UpdateCoupon(id uint, req *CouponUpdateRequest) (*Coupon, error) {
	var coupon Coupon
	result := s.db.Where("id = ?", id).First(&coupon)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("coupon not found")
		}
		return nil, fmt.Errorf("failed to find coupon: %w", result.Error)
	}

	updates := make(map[string]interface{})
	if req.Value != nil {
		if coupon.Kind == KindPercent && (*req.Value < 1 || *req.Value > 100) {
			return nil, fmt.Errorf("percent value must be between 1 and 100")
		}
		updates["value"] = *req.Value
	}
	if req.MinOrderCents != nil {
		updates["min_order_cents"] = *req.MinOrderCents
	}
	if req.MaxUses != nil {
		updates["max_uses"] = *req.MaxUses
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}

	if err := s.db.Model(&coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	s.db.First(&coupon, coupon.ID)
	return &coupon, nil
}

// DeleteCoupon soft deletes a coupon
func (s *Service) DeleteCoupon(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Coupon{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}

// Lookup satisfies pricing.LookupFunc. A missing coupon returns
// (nil, nil); the pricing engine merges that with the expired case.
func (s *Service) Lookup(code string) (*pricing.Coupon, error) {
	var coupon Coupon
	result := s.db.Where("code = ?", code).First(&coupon)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", result.Error)
	}
	return coupon.ToPricing(), nil
}

// Validate prices a coupon against a subtotal without consuming usage
func (s *Service) Validate(code string, subtotalCents int64) (*pricing.CouponResult, error) {
	return pricing.ValidateAndPriceCoupon(code, subtotalCents, time.Now(), s.Lookup)
}

// ConsumeUsage increments a coupon's usage count with the limit checked
// in the same statement. Concurrent checkouts race on the last slot;
// the guard makes exactly one of them win.
func (s *Service) ConsumeUsage(tx *gorm.DB, code string) error {
	result := tx.Model(&Coupon{}).
		Where("code = ? AND (max_uses IS NULL OR used_count < max_uses)", code).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to consume coupon usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &pricing.CouponError{
			Reason:  pricing.RejectUsageLimitReached,
			Message: "This code has reached its usage limit",
		}
	}
	return nil
}
