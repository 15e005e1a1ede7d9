// internal/interfaces/http/handlers/variation.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/variation"
	"gorm.io/gorm"
)

// VariationHandler handles product attribute and variation endpoints
type VariationHandler struct {
	db               *gorm.DB
	attributeService *product.AttributeService
}

// NewVariationHandler creates a new variation handler
func NewVariationHandler(db *gorm.DB) *VariationHandler {
	return &VariationHandler{
		db:               db,
		attributeService: product.NewAttributeService(db),
	}
}

// GetAttributes handles GET /admin/products/:id/attributes
func (h *VariationHandler) GetAttributes(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attrs, err := h.attributeService.GetAttributes(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attributes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attributes retrieved successfully",
		"data":    attrs,
	})
}

// CreateAttribute handles POST /admin/products/:id/attributes
func (h *VariationHandler) CreateAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req product.AttributeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	attr, err := h.attributeService.CreateAttribute(productID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Attribute created successfully",
		"data":    attr,
	})
}

// UpdateAttribute handles PUT /admin/products/:id/attributes/:attributeId
func (h *VariationHandler) UpdateAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseIDParam(c, "attributeId")
	if !ok {
		return
	}

	var req product.AttributeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	attr, err := h.attributeService.UpdateAttribute(productID, attributeID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attribute updated successfully",
		"data":    attr,
	})
}

// DeleteAttribute handles DELETE /admin/products/:id/attributes/:attributeId
func (h *VariationHandler) DeleteAttribute(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseIDParam(c, "attributeId")
	if !ok {
		return
	}

	if err := h.attributeService.DeleteAttribute(productID, attributeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attribute deleted successfully",
	})
}

// GetVariations handles GET /admin/products/:id/variations
func (h *VariationHandler) GetVariations(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vars, err := h.attributeService.GetVariations(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve variations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variations retrieved successfully",
		"data":    vars,
	})
}

// CreateVariation handles POST /admin/products/:id/variations
func (h *VariationHandler) CreateVariation(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req product.VariationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.attributeService.CreateVariation(productID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Variation created successfully",
		"data":    v,
	})
}

// UpdateVariation handles PUT /admin/products/:id/variations/:variationId
func (h *VariationHandler) UpdateVariation(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variationID, ok := parseIDParam(c, "variationId")
	if !ok {
		return
	}

	var req product.VariationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.attributeService.UpdateVariation(productID, variationID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variation updated successfully",
		"data":    v,
	})
}

// DeleteVariation handles DELETE /admin/products/:id/variations/:variationId
func (h *VariationHandler) DeleteVariation(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variationID, ok := parseIDParam(c, "variationId")
	if !ok {
		return
	}

	if err := h.attributeService.DeleteVariation(productID, variationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variation deleted successfully",
	})
}

// GenerateVariations handles POST /admin/products/:id/variations/generate
func (h *VariationHandler) GenerateVariations(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	drafts, err := h.attributeService.GenerateDrafts(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variation combinations generated successfully",
		"data":    drafts,
	})
}

// ResolveVariation handles POST /products/:slug/resolve. The storefront
// posts the customer's attribute selection and gets back the matching
// variation, or 404 when the selection is incomplete or ambiguous.
func (h *VariationHandler) ResolveVariation(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
		return
	}

	var p product.Product
	if err := h.db.Where("slug = ? AND is_active = ?", slug, true).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	var req struct {
		Attributes map[string]string `json:"attributes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.attributeService.ResolveVariation(p.ID, req.Attributes)
	if err != nil {
		var noMatch *variation.ErrNoMatch
		if errors.As(err, &noMatch) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve variation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variation resolved successfully",
		"data":    v,
	})
}
