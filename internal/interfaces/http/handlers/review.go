// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ReviewHandler handles review submission and moderation endpoints
type ReviewHandler struct {
	productService *product.Service
	reviewService  *product.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		productService: product.NewService(db, cfg),
		reviewService:  product.NewReviewService(db),
	}
}

// CreateReview handles POST /products/:slug/reviews. New reviews are
// held for moderation and only appear publicly once approved.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	p, err := h.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req product.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	review, err := h.reviewService.CreateReview(userID, p.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted for moderation",
		"data":    review,
	})
}

// GetPendingReviews handles GET /admin/reviews/pending
func (h *ReviewHandler) GetPendingReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetPendingReviews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending reviews retrieved successfully",
		"data":    reviews,
	})
}

// ApproveReview handles PUT /admin/reviews/:id/approve
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.ApproveReview(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review approved successfully",
	})
}

// DeleteReview handles DELETE /admin/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}
