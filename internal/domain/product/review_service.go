// internal/domain/product/review_service.go
package product

import (
	"fmt"

	"gorm.io/gorm"
)

// ReviewService handles product review business logic
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ReviewCreateRequest represents review submission data
type ReviewCreateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReviewSummary aggregates approved reviews for a product
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	TotalReviews  int64    `json:"total_reviews"`
}

// GetProductReviews retrieves approved reviews with aggregates
func (s *ReviewService) GetProductReviews(productID uint) (*ReviewSummary, error) {
	var reviews []Review
	if err := s.db.Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	summary := &ReviewSummary{
		Reviews:      reviews,
		TotalReviews: int64(len(reviews)),
	}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		summary.AverageRating = float64(sum) / float64(len(reviews))
	}
	return summary, nil
}

// CreateReview submits a review. One review per user per product.
func (s *ReviewService) CreateReview(userID, productID uint, req *ReviewCreateRequest) (*Review, error) {
	var count int64
	if err := s.db.Model(&Product{}).Where("id = ? AND is_active = ?", productID, true).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("product not found")
	}

	var existing Review
	if result := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("you have already reviewed this product")
	}

	review := Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// ApproveReview marks a review visible (admin operation)
func (s *ReviewService) ApproveReview(reviewID uint) error {
	result := s.db.Model(&Review{}).Where("id = ?", reviewID).Update("is_approved", true)
	if result.Error != nil {
		return fmt.Errorf("failed to approve review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

// DeleteReview removes a review (admin operation)
func (s *ReviewService) DeleteReview(reviewID uint) error {
	result := s.db.Where("id = ?", reviewID).Delete(&Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

// GetPendingReviews lists reviews awaiting moderation (admin operation)
func (s *ReviewService) GetPendingReviews() ([]Review, error) {
	var reviews []Review
	if err := s.db.Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve pending reviews: %w", err)
	}
	return reviews, nil
}
