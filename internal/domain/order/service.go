// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/domain/cart"
	"github.com/velvety/storefront/internal/domain/coupon"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/pkg/email"
	"github.com/velvety/storefront/internal/pricing"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db            *gorm.DB
	config        *config.Config
	cartService   *cart.Service
	couponService *coupon.Service
	emailService  *email.Service
	logger        *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, couponService *coupon.Service, emailService *email.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:            db,
		config:        cfg,
		cartService:   cartService,
		couponService: couponService,
		emailService:  emailService,
		logger:        logger,
	}
}

// CreateOrderRequest represents order submission data
type CreateOrderRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	ShippingMethodID string  `json:"shipping_method_id" binding:"required"`
	CouponCode       string  `json:"coupon_code"`
	ShippingAddress  Address `json:"shipping_address" binding:"required"`
	Notes            string  `json:"notes"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// OrderListResponse represents orders with pagination
type OrderListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination product.Pagination `json:"pagination"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status  Status `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// ErrEmptyCart is returned when the submitted cart has no lines
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientStock is returned when a line cannot be fulfilled
type ErrInsufficientStock struct {
	ProductID   uint
	VariationID *uint
}

func (e *ErrInsufficientStock) Error() string {
	if e.VariationID != nil {
		return fmt.Sprintf("insufficient stock for product %d variation %d", e.ProductID, *e.VariationID)
	}
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// ShippingMethods returns the configured shipping methods
func (s *Service) ShippingMethods() []pricing.ShippingMethod {
	standardFree := s.config.Shipping.StandardFreeOverCents
	return []pricing.ShippingMethod{
		{ID: "standard", Label: "Standard Shipping", BaseCents: s.config.Shipping.StandardCents, FreeOverCents: &standardFree},
		{ID: "express", Label: "Express Shipping", BaseCents: s.config.Shipping.ExpressCents},
	}
}

func (s *Service) findShippingMethod(id string) *pricing.ShippingMethod {
	for _, m := range s.ShippingMethods() {
		if m.ID == id {
			method := m
			return &method
		}
	}
	return nil
}

// CreateOrder submits the current cart as an order. Pricing, stock
// decrements and coupon usage happen in one transaction; any failure
// rolls the whole submission back.
func (s *Service) CreateOrder(userID *uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	view, err := s.cartService.GetCart(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	engineLines := make([]pricing.Line, 0, len(view.Lines))
	for _, line := range view.Lines {
		engineLines = append(engineLines, pricing.Line{
			ProductID:      line.ProductID,
			VariationID:    line.VariationID,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}
	subtotal := pricing.ComputeSubtotal(engineLines)

	method := s.findShippingMethod(req.ShippingMethodID)
	if method == nil {
		return nil, fmt.Errorf("unknown shipping method %s", req.ShippingMethodID)
	}

	var couponResult *pricing.CouponResult
	if req.CouponCode != "" {
		couponResult, err = pricing.ValidateAndPriceCoupon(req.CouponCode, subtotal, time.Now(), s.couponService.Lookup)
		if err != nil {
			return nil, err
		}
	}

	var discount int64
	var couponCode string
	if couponResult != nil {
		discount = couponResult.DiscountCents
		couponCode = couponResult.Code
	}
	shipping := pricing.ResolveShipping(subtotal, *method)
	total := pricing.ComputeTotal(subtotal, discount, shipping)

	newOrder := Order{
		UserID:          userID,
		Email:           req.Email,
		Status:          StatusPending,
		SubtotalCents:   subtotal,
		DiscountCents:   discount,
		ShippingCents:   shipping,
		TotalCents:      total,
		CouponCode:      couponCode,
		ShippingMethod:  method.ID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		newOrder.OrderNumber = newOrder.GenerateOrderNumber()
		if err := tx.Model(&newOrder).Update("order_number", newOrder.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		for _, line := range view.Lines {
			item := OrderItem{
				OrderID:        newOrder.ID,
				ProductID:      line.ProductID,
				VariationID:    line.VariationID,
				Name:           line.Name,
				VariationLabel: line.VariationLabel,
				Quantity:       line.Quantity,
				UnitPriceCents: line.UnitPriceCents,
				TotalCents:     line.LineTotalCents,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			newOrder.Items = append(newOrder.Items, item)

			if err := s.decrementStock(tx, line); err != nil {
				return err
			}
		}

		if couponCode != "" {
			if err := s.couponService.ConsumeUsage(tx, couponCode); err != nil {
				return err
			}
		}

		history := StatusHistory{
			OrderID:   newOrder.ID,
			Status:    StatusPending,
			Comment:   "Order placed",
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartService.ClearCart(userID, sessionID); err != nil {
		s.logger.WithError(err).WithField("order_number", newOrder.OrderNumber).
			Warn("Failed to clear cart after order submission")
	}

	s.sendConfirmation(&newOrder)

	return &newOrder, nil
}

// decrementStock takes stock for one line with the availability check
// in the same statement, so two concurrent checkouts cannot both take
// the last unit.
func (s *Service) decrementStock(tx *gorm.DB, line cart.Line) error {
	var prod product.Product
	if err := tx.Select("id", "track_inventory").Where("id = ?", line.ProductID).First(&prod).Error; err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if !prod.TrackInventory {
		return nil
	}

	var result *gorm.DB
	if line.VariationID != nil {
		result = tx.Model(&product.ProductVariation{}).
			Where("id = ? AND stock >= ?", *line.VariationID, line.Quantity).
			Update("stock", gorm.Expr("stock - ?", line.Quantity))
	} else {
		result = tx.Model(&product.Product{}).
			Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
			Update("stock", gorm.Expr("stock - ?", line.Quantity))
	}
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &ErrInsufficientStock{ProductID: line.ProductID, VariationID: line.VariationID}
	}
	return nil
}

// GetOrder retrieves a single order. A non-admin caller only sees
// their own orders.
func (s *Service) GetOrder(id uint, userID *uint, isAdmin bool) (*Order, error) {
	var o Order
	query := s.db.Preload("Items").Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ?", id)
	if !isAdmin {
		if userID == nil {
			return nil, fmt.Errorf("order not found")
		}
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.First(&o).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// GetUserOrders retrieves a user's order history, newest first
func (s *Service) GetUserOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	query := s.db.Model(&Order{}).Where("user_id = ?", userID)
	return s.listOrders(query, req)
}

// GetOrders retrieves all orders with optional status filter (admin)
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	query := s.db.Model(&Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	return s.listOrders(query, req)
}

func (s *Service) listOrders(query *gorm.DB, req *OrderListRequest) (*OrderListResponse, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: product.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// UpdateOrderStatus moves an order through its lifecycle (admin).
// Only the transitions the lifecycle allows are accepted.
func (s *Service) UpdateOrderStatus(orderID uint, adminID uint, req *UpdateStatusRequest) (*Order, error) {
	var o Order
	if err := s.db.Preload("Items").Where("id = ?", orderID).First(&o).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !o.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, req.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Update("status", req.Status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		history := StatusHistory{
			OrderID:   o.ID,
			Status:    req.Status,
			Comment:   req.Comment,
			CreatedBy: adminID,
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	o.Status = req.Status
	return &o, nil
}

// sendConfirmation emails the order confirmation. Delivery failures
// are logged, never surfaced to the buyer; the order already exists.
func (s *Service) sendConfirmation(o *Order) {
	items := make([]email.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, email.OrderLine{
			Name:           item.Name,
			VariationLabel: item.VariationLabel,
			Quantity:       item.Quantity,
			TotalFormatted: pricing.FormatCents(item.TotalCents),
		})
	}

	data := email.OrderConfirmationData{
		OrderNumber:       o.OrderNumber,
		FirstName:         o.ShippingAddress.FirstName,
		Items:             items,
		SubtotalFormatted: pricing.FormatCents(o.SubtotalCents),
		DiscountFormatted: pricing.FormatCents(o.DiscountCents),
		ShippingFormatted: pricing.FormatCents(o.ShippingCents),
		TotalFormatted:    pricing.FormatCents(o.TotalCents),
	}

	if err := s.emailService.SendOrderConfirmation(o.Email, data); err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to send order confirmation email")
	}
}
