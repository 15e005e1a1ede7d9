// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/domain/cart"
	"github.com/velvety/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart endpoints for both authenticated
// users and guests. Guests identify their cart with the X-Session-ID
// header; authenticated requests use the user from the JWT.
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// cartIdentity extracts the cart owner from the request. Returns false
// and writes the error response when neither a user nor a session is
// present.
func (h *CartHandler) cartIdentity(c *gin.Context) (*uint, string, bool) {
	sessionID := c.GetHeader("X-Session-ID")

	if userID, exists := middleware.GetUserIDFromContext(c); exists {
		return &userID, sessionID, true
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required for guest carts"})
		return nil, "", false
	}
	return nil, sessionID, true
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, sessionID, ok := h.cartIdentity(c)
	if !ok {
		return
	}

	view, err := h.cartService.GetCart(userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    view,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, sessionID, ok := h.cartIdentity(c)
	if !ok {
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.AddToCart(userID, sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    view,
	})
}

// UpdateCartItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, sessionID, ok := h.cartIdentity(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	variationID, ok := parseVariationQuery(c)
	if !ok {
		return
	}

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.UpdateCartItem(userID, sessionID, productID, variationID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    view,
	})
}

// RemoveFromCart handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, sessionID, ok := h.cartIdentity(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	variationID, ok := parseVariationQuery(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveFromCart(userID, sessionID, productID, variationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    view,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, sessionID, ok := h.cartIdentity(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// parseVariationQuery reads the optional variation_id query parameter.
func parseVariationQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("variation_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variation_id"})
		return nil, false
	}
	variationID := uint(id)
	return &variationID, true
}
