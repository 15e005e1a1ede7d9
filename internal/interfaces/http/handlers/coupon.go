// internal/interfaces/http/handlers/coupon.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/domain/coupon"
	"github.com/velvety/storefront/internal/pricing"
)

// CouponHandler handles coupon validation and admin coupon management
type CouponHandler struct {
	couponService *coupon.Service
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *coupon.Service) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// ValidateCoupon handles POST /coupons/validate. Read-only preview of
// the discount a code would yield at the given subtotal; usage counts
// are only consumed at checkout.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code          string `json:"code"`
		SubtotalCents int64  `json:"subtotal_cents" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.couponService.Validate(req.Code, req.SubtotalCents)
	if err != nil {
		var couponErr *pricing.CouponError
		if errors.As(err, &couponErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"valid":  false,
				"reason": couponErr.Reason,
				"error":  couponErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"data": gin.H{
			"code":               result.Code,
			"kind":               result.Kind,
			"value":              result.Value,
			"discount_cents":     result.DiscountCents,
			"discount_formatted": pricing.FormatCents(result.DiscountCents),
		},
	})
}

// AdminGetCoupons handles GET /admin/coupons
func (h *CouponHandler) AdminGetCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetCoupons()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    coupons,
	})
}

// CreateCoupon handles POST /admin/coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req coupon.CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.couponService.CreateCoupon(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"data":    created,
	})
}

// UpdateCoupon handles PUT /admin/coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req coupon.CouponUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.couponService.UpdateCoupon(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"data":    updated,
	})
}

// DeleteCoupon handles DELETE /admin/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon deleted successfully",
	})
}
