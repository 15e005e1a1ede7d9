// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/velvety/storefront/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
	MinPrice   int64  `form:"min_price"`
	MaxPrice   int64  `form:"max_price"`
	IsActive   *bool  `form:"is_active"`
	IsFeatured *bool  `form:"is_featured"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	SKU            string `json:"sku" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	ShortDesc      string `json:"short_description"`
	Price          int64  `json:"price" binding:"required"`
	ComparePrice   int64  `json:"compare_price"`
	CategoryID     uint   `json:"category_id" binding:"required"`
	IsActive       bool   `json:"is_active"`
	IsFeatured     bool   `json:"is_featured"`
	TrackInventory bool   `json:"track_inventory"`
	Stock          int    `json:"stock"`
	Tags           string `json:"tags"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	ShortDesc      *string `json:"short_description"`
	Price          *int64  `json:"price"`
	ComparePrice   *int64  `json:"compare_price"`
	CategoryID     *uint   `json:"category_id"`
	IsActive       *bool   `json:"is_active"`
	IsFeatured     *bool   `json:"is_featured"`
	TrackInventory *bool   `json:"track_inventory"`
	Stock          *int    `json:"stock"`
	Tags           *string `json:"tags"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	// Build query
	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		})

	// Apply filters
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", search, search, search)
	}

	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	if req.IsFeatured != nil {
		query = query.Where("is_featured = ?", *req.IsFeatured)
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	orderClause := s.buildOrderClause(req.SortBy, req.SortOrder)
	query = query.Order(orderClause)

	// Apply pagination
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	// Calculate pagination info
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ProductResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Variations").
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetProductBySlug retrieves a single active product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Variations").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	// Check if SKU already exists
	var existing Product
	if result := s.db.Where("sku = ?", req.SKU).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("product with SKU %s already exists", req.SKU)
	}

	// Generate slug from name
	slug := s.generateSlug(req.Name)

	product := Product{
		SKU:            req.SKU,
		Name:           req.Name,
		Slug:           slug,
		Description:    req.Description,
		ShortDesc:      req.ShortDesc,
		Price:          req.Price,
		ComparePrice:   req.ComparePrice,
		CategoryID:     req.CategoryID,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
		TrackInventory: req.TrackInventory,
		Stock:          req.Stock,
		Tags:           req.Tags,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Load relationships
	s.db.Preload("Category").First(&product, product.ID)

	return &product, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	// Update fields
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = s.generateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ShortDesc != nil {
		updates["short_desc"] = *req.ShortDesc
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ComparePrice != nil {
		updates["compare_price"] = *req.ComparePrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.TrackInventory != nil {
		updates["track_inventory"] = *req.TrackInventory
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Load updated product with relationships
	s.db.Preload("Category").First(&product, product.ID)

	return &product, nil
}

// DeleteProduct soft deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// Bulk actions accepted by BulkUpdate
const (
	BulkActionDelete   = "delete"
	BulkActionStock    = "stock"
	BulkActionCategory = "category"
)

// BulkUpdateRequest represents an admin operation over a set of products
type BulkUpdateRequest struct {
	IDs        []uint `json:"ids" binding:"required,min=1"`
	Action     string `json:"action" binding:"required,oneof=delete stock category"`
	Stock      *int   `json:"stock"`
	CategoryID *uint  `json:"category_id"`
}

// BulkUpdate applies one action to every product in the set. Delete
// removes the products with their attributes and variations; stock and
// category overwrite the field across the set. Returns the affected
// row count.
func (s *Service) BulkUpdate(req *BulkUpdateRequest) (int64, error) {
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch req.Action {
		case BulkActionDelete:
			if err := tx.Where("product_id IN ?", req.IDs).Delete(&ProductAttribute{}).Error; err != nil {
				return fmt.Errorf("failed to delete product attributes: %w", err)
			}
			if err := tx.Where("product_id IN ?", req.IDs).Delete(&ProductVariation{}).Error; err != nil {
				return fmt.Errorf("failed to delete product variations: %w", err)
			}
			result := tx.Where("id IN ?", req.IDs).Delete(&Product{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete products: %w", result.Error)
			}
			affected = result.RowsAffected
			return nil

		case BulkActionStock:
			if req.Stock == nil || *req.Stock < 0 {
				return fmt.Errorf("stock action requires a non-negative stock value")
			}
			result := tx.Model(&Product{}).Where("id IN ?", req.IDs).Update("stock", *req.Stock)
			if result.Error != nil {
				return fmt.Errorf("failed to update stock: %w", result.Error)
			}
			affected = result.RowsAffected
			return nil

		case BulkActionCategory:
			if req.CategoryID == nil {
				return fmt.Errorf("category action requires a category_id")
			}
			var count int64
			if err := tx.Model(&Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check category: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("category not found")
			}
			result := tx.Model(&Product{}).Where("id IN ?", req.IDs).Update("category_id", *req.CategoryID)
			if result.Error != nil {
				return fmt.Errorf("failed to update category: %w", result.Error)
			}
			affected = result.RowsAffected
			return nil
		}
		return fmt.Errorf("unknown bulk action: %s", req.Action)
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// buildOrderClause builds ORDER BY clause for sorting
func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"name":       true,
		"price":      true,
		"created_at": true,
		"updated_at": true,
		"stock":      true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}

// generateSlug generates URL-friendly slug from name
func (s *Service) generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
