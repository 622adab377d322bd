package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, email string) (*Account, error)
	CurrentRole(ctx context.Context, email string) (string, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	UpdateAccount(ctx context.Context, email string, fields map[string]interface{}) error
	DeleteAccount(ctx context.Context, email string) error
}

type AccountStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &AccountStorage{
		db: db,
	}
}

// CreateAccount inserts only when the email is free. An existing row is left untouched.
func (s *AccountStorage) CreateAccount(ctx context.Context, account *Account) error {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(errAccountExists)
		}
		return fmt.Errorf("failed to create account - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errAccountExists)
	}
	return nil
}

func (s *AccountStorage) GetAccount(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errAccountNotFound)
		}
		return nil, err
	}
	return &account, nil
}

func (s *AccountStorage) CurrentRole(ctx context.Context, email string) (string, error) {
	account, err := s.GetAccount(ctx, email)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

func (s *AccountStorage) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := s.db.WithContext(ctx).Order("email").Find(&accounts).Error; err != nil {
		return []Account{}, err
	}
	return accounts, nil
}

func (s *AccountStorage) UpdateAccount(ctx context.Context, email string, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&Account{}).Where("email = ?", email).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errAccountNotFound)
	}
	return nil
}

func (s *AccountStorage) DeleteAccount(ctx context.Context, email string) error {
	result := s.db.WithContext(ctx).Where("email = ?", email).Delete(&Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errAccountNotFound)
	}
	return nil
}
