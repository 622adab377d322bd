package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateAddress(ctx context.Context, address *Address) error
	GetAddress(ctx context.Context, addressID string) (*Address, error)
	ListAddresses(ctx context.Context, email string) ([]Address, error)
	UpdateAddress(ctx context.Context, addressID string, fields map[string]interface{}) error
	DeleteAddress(ctx context.Context, addressID string) error
}

type AddressStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &AddressStorage{
		db: db,
	}
}

func (s *AddressStorage) CreateAddress(ctx context.Context, address *Address) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(address)
	if result.Error != nil {
		return fmt.Errorf("failed to create address - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errAddressExists)
	}
	return nil
}

func (s *AddressStorage) GetAddress(ctx context.Context, addressID string) (*Address, error) {
	var address Address
	err := s.db.WithContext(ctx).Where("address_id = ?", addressID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errAddressNotFound)
		}
		return nil, err
	}
	return &address, nil
}

// ListAddresses returns every address when email is empty.
func (s *AddressStorage) ListAddresses(ctx context.Context, email string) ([]Address, error) {
	query := s.db.WithContext(ctx).Order("address_id")
	if email != "" {
		query = query.Where("email = ?", email)
	}

	var addresses []Address
	if err := query.Find(&addresses).Error; err != nil {
		return []Address{}, err
	}
	return addresses, nil
}

func (s *AddressStorage) UpdateAddress(ctx context.Context, addressID string, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&Address{}).Where("address_id = ?", addressID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errAddressNotFound)
	}
	return nil
}

func (s *AddressStorage) DeleteAddress(ctx context.Context, addressID string) error {
	result := s.db.WithContext(ctx).Where("address_id = ?", addressID).Delete(&Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errAddressNotFound)
	}
	return nil
}
