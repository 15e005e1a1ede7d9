// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/velvety/storefront/internal/domain/cart"
	"github.com/velvety/storefront/internal/domain/coupon"
	"github.com/velvety/storefront/internal/domain/marketing"
	"github.com/velvety/storefront/internal/domain/order"
	"github.com/velvety/storefront/internal/domain/product"
	"github.com/velvety/storefront/internal/domain/user"
	"github.com/velvety/storefront/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},
		&user.Address{},

		&product.Category{},
		&product.Product{},
		&product.ProductImage{},
		&product.ProductAttribute{},
		&product.ProductVariation{},
		&product.Review{},

		&coupon.Coupon{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.StatusHistory{},

		&wishlist.WishlistItem{},

		&marketing.NewsletterSubscriber{},
		&marketing.ContactMessage{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for common query paths
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		"CREATE INDEX IF NOT EXISTS idx_product_attributes_product ON product_attributes(product_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_product_variations_product ON product_variations(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_primary ON product_images(product_id, is_primary)",

		"CREATE INDEX IF NOT EXISTS idx_coupons_expires_at ON coupons(expires_at)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_reviews_product_approved ON reviews(product_id, is_approved)",

		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",

		"CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}
	return nil
}

// SeedInitialData inserts development seed data. Safe to run more
// than once; every seed checks for existing rows first.
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := m.seedCoupons(); err != nil {
		return fmt.Errorf("failed to seed coupons: %w", err)
	}

	log.Println("✅ Seed data inserted")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var count int64
	if err := m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Email:     "admin@velvety.example",
		Password:  string(hash),
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
		IsAdmin:   true,
	}
	return m.db.Create(&admin).Error
}

func (m *Migration) seedCategories() error {
	var count int64
	if err := m.db.Model(&product.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []product.Category{
		{Name: "Apparel", Slug: "apparel", SortOrder: 1, IsActive: true},
		{Name: "Accessories", Slug: "accessories", SortOrder: 2, IsActive: true},
		{Name: "Home", Slug: "home", SortOrder: 3, IsActive: true},
	}
	return m.db.Create(&categories).Error
}

func (m *Migration) seedCoupons() error {
	var count int64
	if err := m.db.Model(&coupon.Coupon{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	minOrder := int64(3000)
	expires := time.Now().AddDate(1, 0, 0)
	coupons := []coupon.Coupon{
		{Code: "WELCOME10", Kind: coupon.KindPercent, Value: 10, ExpiresAt: &expires},
		{Code: "SAVE5", Kind: coupon.KindFixed, Value: 500, MinOrderCents: &minOrder, ExpiresAt: &expires},
	}
	return m.db.Create(&coupons).Error
}
