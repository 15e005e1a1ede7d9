// internal/interfaces/http/handlers/marketing.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvety/storefront/internal/domain/marketing"
)

// MarketingHandler handles newsletter signups and contact form submissions
type MarketingHandler struct {
	marketingService *marketing.Service
}

// NewMarketingHandler creates a new marketing handler
func NewMarketingHandler(marketingService *marketing.Service) *MarketingHandler {
	return &MarketingHandler{
		marketingService: marketingService,
	}
}

// Subscribe handles POST /newsletter
func (h *MarketingHandler) Subscribe(c *gin.Context) {
	var req marketing.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Valid email is required",
			"details": err.Error(),
		})
		return
	}

	if err := h.marketingService.Subscribe(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thanks for subscribing!",
	})
}

// SubmitContact handles POST /contact
func (h *MarketingHandler) SubmitContact(c *gin.Context) {
	var req marketing.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Name, email, and message are required",
			"details": err.Error(),
		})
		return
	}

	if err := h.marketingService.SubmitContact(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent. We'll get back to you soon.",
	})
}

// GetSubscribers handles GET /admin/newsletter/subscribers
func (h *MarketingHandler) GetSubscribers(c *gin.Context) {
	subscribers, err := h.marketingService.GetSubscribers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscribers retrieved successfully",
		"data":    subscribers,
	})
}

// GetContactMessages handles GET /admin/contact-messages
func (h *MarketingHandler) GetContactMessages(c *gin.Context) {
	messages, err := h.marketingService.GetContactMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact messages retrieved successfully",
		"data":    messages,
	})
}
