// internal/domain/product/attribute_service.go
package product

import (
	"fmt"

	"github.com/velvety/storefront/internal/variation"
	"gorm.io/gorm"
)

// AttributeService handles product attribute and variation management
type AttributeService struct {
	db *gorm.DB
}

// NewAttributeService creates a new attribute service
func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

// AttributeCreateRequest represents attribute creation data
type AttributeCreateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Values    []string `json:"values" binding:"required,min=1"`
	SortOrder int      `json:"sort_order"`
}

// AttributeUpdateRequest represents attribute update data
type AttributeUpdateRequest struct {
	Name      *string   `json:"name"`
	Values    *[]string `json:"values"`
	SortOrder *int      `json:"sort_order"`
}

// VariationCreateRequest represents variation creation data
type VariationCreateRequest struct {
	Attributes map[string]string `json:"attributes" binding:"required"`
	PriceCents *int64            `json:"price_cents"`
	Stock      int               `json:"stock"`
	SKU        string            `json:"sku"`
	Images     []string          `json:"images"`
}

// VariationUpdateRequest represents variation update data
type VariationUpdateRequest struct {
	PriceCents *int64    `json:"price_cents"`
	ClearPrice bool      `json:"clear_price"`
	Stock      *int      `json:"stock"`
	SKU        *string   `json:"sku"`
	Images     *[]string `json:"images"`
}

// VariationDraft is an unsaved combination offered to the admin UI.
type VariationDraft struct {
	Attributes map[string]string `json:"attributes"`
	Exists     bool              `json:"exists"`
}

// GetAttributes retrieves a product's attributes in declared order
func (s *AttributeService) GetAttributes(productID uint) ([]ProductAttribute, error) {
	var attrs []ProductAttribute
	if err := s.db.Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve attributes: %w", err)
	}
	return attrs, nil
}

// CreateAttribute adds a customization axis to a product
func (s *AttributeService) CreateAttribute(productID uint, req *AttributeCreateRequest) (*ProductAttribute, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}

	var existing ProductAttribute
	if result := s.db.Where("product_id = ? AND name = ?", productID, req.Name).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("attribute %s already exists for this product", req.Name)
	}

	if err := validateValues(req.Values); err != nil {
		return nil, err
	}

	attr := ProductAttribute{
		ProductID: productID,
		Name:      req.Name,
		Values:    req.Values,
		SortOrder: req.SortOrder,
	}
	if err := s.db.Create(&attr).Error; err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}
	return &attr, nil
}

// UpdateAttribute updates an attribute. Renaming it or changing its value
// list invalidates existing variations, so those are removed.
func (s *AttributeService) UpdateAttribute(productID, attributeID uint, req *AttributeUpdateRequest) (*ProductAttribute, error) {
	var attr ProductAttribute
	result := s.db.Where("id = ? AND product_id = ?", attributeID, productID).First(&attr)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("attribute not found")
		}
		return nil, fmt.Errorf("failed to find attribute: %w", result.Error)
	}

	invalidates := false
	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != attr.Name {
		updates["name"] = *req.Name
		invalidates = true
	}
	if req.Values != nil {
		if err := validateValues(*req.Values); err != nil {
			return nil, err
		}
		updates["values"] = *req.Values
		invalidates = true
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&attr).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update attribute: %w", err)
		}
		if invalidates {
			if err := tx.Where("product_id = ?", productID).Delete(&ProductVariation{}).Error; err != nil {
				return fmt.Errorf("failed to remove stale variations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.First(&attr, attr.ID)
	return &attr, nil
}

// DeleteAttribute removes an attribute and the product's variations,
// which reference the removed axis and can no longer be resolved.
func (s *AttributeService) DeleteAttribute(productID, attributeID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND product_id = ?", attributeID, productID).Delete(&ProductAttribute{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete attribute: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("attribute not found")
		}
		if err := tx.Where("product_id = ?", productID).Delete(&ProductVariation{}).Error; err != nil {
			return fmt.Errorf("failed to remove stale variations: %w", err)
		}
		return nil
	})
}

// GetVariations retrieves a product's variations
func (s *AttributeService) GetVariations(productID uint) ([]ProductVariation, error) {
	var vars []ProductVariation
	if err := s.db.Where("product_id = ?", productID).
		Order("id ASC").
		Find(&vars).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve variations: %w", err)
	}
	return vars, nil
}

// CreateVariation adds a variation after checking it against the
// product's declared attributes and existing variations.
func (s *AttributeService) CreateVariation(productID uint, req *VariationCreateRequest) (*ProductVariation, error) {
	attrs, existing, err := s.loadForValidation(productID)
	if err != nil {
		return nil, err
	}

	candidate := variation.Variation{Attributes: req.Attributes}
	if err := variation.ValidateAgainst(attrs, append(existing, candidate)); err != nil {
		return nil, err
	}

	v := ProductVariation{
		ProductID:  productID,
		Attributes: req.Attributes,
		PriceCents: req.PriceCents,
		Stock:      req.Stock,
		SKU:        req.SKU,
		Images:     req.Images,
	}
	if err := s.db.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to create variation: %w", err)
	}
	return &v, nil
}

// UpdateVariation updates a variation's overrides. The attribute
// combination itself is immutable; delete and recreate to change it.
func (s *AttributeService) UpdateVariation(productID, variationID uint, req *VariationUpdateRequest) (*ProductVariation, error) {
	var v ProductVariation
	result := s.db.Where("id = ? AND product_id = ?", variationID, productID).First(&v)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("variation not found")
		}
		return nil, fmt.Errorf("failed to find variation: %w", result.Error)
	}

	updates := make(map[string]interface{})
	if req.ClearPrice {
		updates["price_cents"] = nil
	} else if req.PriceCents != nil {
		updates["price_cents"] = *req.PriceCents
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Images != nil {
		updates["images"] = *req.Images
	}

	if err := s.db.Model(&v).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update variation: %w", err)
	}
	s.db.First(&v, v.ID)
	return &v, nil
}

// DeleteVariation removes a variation
func (s *AttributeService) DeleteVariation(productID, variationID uint) error {
	result := s.db.Where("id = ? AND product_id = ?", variationID, productID).Delete(&ProductVariation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete variation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("variation not found")
	}
	return nil
}

// GenerateDrafts builds the full Cartesian product of the product's
// attribute values as unsaved drafts, flagging combinations that
// already exist as variations.
func (s *AttributeService) GenerateDrafts(productID uint) ([]VariationDraft, error) {
	attrs, existing, err := s.loadForValidation(productID)
	if err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("product has no attributes to combine")
	}

	combos := variation.GenerateCombinations(attrs)
	drafts := make([]VariationDraft, 0, len(combos))
	for _, combo := range combos {
		drafts = append(drafts, VariationDraft{
			Attributes: combo,
			Exists:     combinationExists(existing, combo),
		})
	}
	return drafts, nil
}

// ResolveVariation resolves a selection to the product's matching
// variation using the resolution engine.
func (s *AttributeService) ResolveVariation(productID uint, selection map[string]string) (*ProductVariation, error) {
	var vars []ProductVariation
	if err := s.db.Where("product_id = ?", productID).Find(&vars).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve variations: %w", err)
	}

	engineVars := make([]variation.Variation, 0, len(vars))
	for i := range vars {
		engineVars = append(engineVars, vars[i].Engine())
	}

	matched, err := variation.Resolve(selection, engineVars)
	if err != nil {
		return nil, err
	}
	for i := range vars {
		if vars[i].ID == matched.ID {
			return &vars[i], nil
		}
	}
	return nil, fmt.Errorf("variation not found")
}

func (s *AttributeService) ensureProduct(productID uint) error {
	var count int64
	if err := s.db.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (s *AttributeService) loadForValidation(productID uint) ([]variation.Attribute, []variation.Variation, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, nil, err
	}

	var stored []ProductAttribute
	if err := s.db.Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&stored).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve attributes: %w", err)
	}
	attrs := make([]variation.Attribute, 0, len(stored))
	for _, a := range stored {
		attrs = append(attrs, variation.Attribute{Name: a.Name, Values: a.Values})
	}

	var vars []ProductVariation
	if err := s.db.Where("product_id = ?", productID).Find(&vars).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve variations: %w", err)
	}
	engineVars := make([]variation.Variation, 0, len(vars))
	for i := range vars {
		engineVars = append(engineVars, vars[i].Engine())
	}

	return attrs, engineVars, nil
}

func validateValues(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("attribute needs at least one value")
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("attribute values must not be empty")
		}
		if seen[v] {
			return fmt.Errorf("duplicate attribute value %s", v)
		}
		seen[v] = true
	}
	return nil
}

func combinationExists(existing []variation.Variation, combo map[string]string) bool {
	for _, v := range existing {
		if len(v.Attributes) != len(combo) {
			continue
		}
		match := true
		for k, val := range combo {
			if v.Attributes[k] != val {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
