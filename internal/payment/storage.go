package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreatePaymentMethod(ctx context.Context, method *PaymentMethod) error
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, paymentMethodID, name string) error
	NameTaken(ctx context.Context, name, exceptID string) (bool, error)
	DeletePaymentMethod(ctx context.Context, paymentMethodID string) error
}

type PaymentStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &PaymentStorage{
		db: db,
	}
}

// CreatePaymentMethod rejects both a taken id and a taken name.
func (s *PaymentStorage) CreatePaymentMethod(ctx context.Context, method *PaymentMethod) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(method)
	if result.Error != nil {
		return fmt.Errorf("failed to create payment method - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errPaymentMethodExists)
	}
	return nil
}

func (s *PaymentStorage) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethod, error) {
	var method PaymentMethod
	err := s.db.WithContext(ctx).Where("payment_method_id = ?", paymentMethodID).First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errPaymentMethodNotFound)
		}
		return nil, err
	}
	return &method, nil
}

func (s *PaymentStorage) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	if err := s.db.WithContext(ctx).Order("method_name").Find(&methods).Error; err != nil {
		return []PaymentMethod{}, err
	}
	return methods, nil
}

func (s *PaymentStorage) UpdatePaymentMethod(ctx context.Context, paymentMethodID, name string) error {
	result := s.db.WithContext(ctx).Model(&PaymentMethod{}).Where("payment_method_id = ?", paymentMethodID).Update("method_name", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(errPaymentMethodExists)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errPaymentMethodNotFound)
	}
	return nil
}

func (s *PaymentStorage) NameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&PaymentMethod{}).
		Where("method_name = ? AND payment_method_id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (s *PaymentStorage) DeletePaymentMethod(ctx context.Context, paymentMethodID string) error {
	result := s.db.WithContext(ctx).Where("payment_method_id = ?", paymentMethodID).Delete(&PaymentMethod{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errPaymentMethodNotFound)
	}
	return nil
}
