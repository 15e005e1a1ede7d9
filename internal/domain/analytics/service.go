// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/velvety/storefront/internal/domain/order"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/domain/user"
	"gorm.io/gorm"
)

// Service computes admin dashboard aggregates
type Service struct {
	db *gorm.DB
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DashboardStats summarizes store activity for the admin dashboard
type DashboardStats struct {
	TotalOrders       int64          `json:"total_orders"`
	PendingOrders     int64          `json:"pending_orders"`
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	TotalCustomers    int64          `json:"total_customers"`
	TotalProducts     int64          `json:"total_products"`
	LowStockProducts  int64          `json:"low_stock_products"`
	CouponRedemptions int64          `json:"coupon_redemptions"`
	RecentOrders      []order.Order  `json:"recent_orders"`
	TopProducts       []ProductSales `json:"top_products"`
}

// ProductSales aggregates units sold per product
type ProductSales struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int64  `json:"units_sold"`
}

// GetDashboardStats computes the dashboard aggregates. Revenue counts
// non-cancelled orders only.
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&order.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&order.Order{}).Where("status = ?", order.StatusPending).Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	var revenue *int64
	if err := s.db.Model(&order.Order{}).
		Where("status <> ?", order.StatusCancelled).
		Select("SUM(total_cents)").Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if revenue != nil {
		stats.TotalRevenueCents = *revenue
	}

	if err := s.db.Model(&user.User{}).Where("is_admin = ?", false).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if err := s.db.Model(&product.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&product.Product{}).
		Where("track_inventory = ? AND stock <= ?", true, 5).
		Count(&stats.LowStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	if err := s.db.Model(&order.Order{}).
		Where("coupon_code <> '' AND status <> ?", order.StatusCancelled).
		Count(&stats.CouponRedemptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count coupon redemptions: %w", err)
	}

	if err := s.db.Model(&order.Order{}).
		Preload("Items").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	if err := s.db.Model(&order.OrderItem{}).
		Select("order_items.product_id, order_items.name, SUM(order_items.quantity) AS units_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ?", order.StatusCancelled).
		Group("order_items.product_id, order_items.name").
		Order("units_sold DESC").
		Limit(5).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	return stats, nil
}

// RevenuePoint is daily revenue for the sales chart
type RevenuePoint struct {
	Day          time.Time `json:"day"`
	RevenueCents int64     `json:"revenue_cents"`
	OrderCount   int64     `json:"order_count"`
}

// GetRevenueSeries returns daily revenue for the trailing period
func (s *Service) GetRevenueSeries(days int) ([]RevenuePoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var points []RevenuePoint
	if err := s.db.Model(&order.Order{}).
		Select("DATE_TRUNC('day', created_at) AS day, SUM(total_cents) AS revenue_cents, COUNT(*) AS order_count").
		Where("created_at >= ? AND status <> ?", since, order.StatusCancelled).
		Group("day").
		Order("day ASC").
		Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to load revenue series: %w", err)
	}
	return points, nil
}
