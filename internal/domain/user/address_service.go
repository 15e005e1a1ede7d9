// internal/domain/user/address_service.go
package user

import (
	"fmt"

	"gorm.io/gorm"
)

// AddressService handles user address book logic
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddressRequest represents address create/update data
type AddressRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required,len=2"`
	Phone        string `json:"phone"`
	IsDefault    bool   `json:"is_default"`
}

// GetAddresses lists a user's addresses, default first
func (s *AddressService) GetAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress adds an address. Marking it default clears the
// previous default.
func (s *AddressService) CreateAddress(userID uint, req *AddressRequest) (*Address, error) {
	address := Address{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &address, nil
}

// UpdateAddress updates one of the user's addresses
func (s *AddressService) UpdateAddress(userID, addressID uint, req *AddressRequest) (*Address, error) {
	var address Address
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("address not found")
		}
		return nil, fmt.Errorf("failed to find address: %w", result.Error)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"first_name":    req.FirstName,
			"last_name":     req.LastName,
			"address_line1": req.AddressLine1,
			"address_line2": req.AddressLine2,
			"city":          req.City,
			"state":         req.State,
			"postal_code":   req.PostalCode,
			"country":       req.Country,
			"phone":         req.Phone,
			"is_default":    req.IsDefault,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	s.db.First(&address, address.ID)
	return &address, nil
}

// DeleteAddress removes one of the user's addresses
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}
