package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/cart"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateOrder(ctx context.Context, order *Order, items []OrderItem, consumed []cart.CartItem) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrders(ctx context.Context, email string) ([]Order, error)
	ListItems(ctx context.Context, orderID string) ([]OrderItem, error)
	UpdateStatus(ctx context.Context, orderID string, from, to Status) error
	DeleteOrder(ctx context.Context, orderID string) error
	DeleteOrphans(ctx context.Context) (int64, error)
}

type OrderStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &OrderStorage{
		db: db,
	}
}

// CreateOrder writes the order, its items and the removal of the consumed cart lines as one
// transaction. A consumed line is only removed if it still holds the quantity that was priced;
// otherwise the whole checkout rolls back with a Conflict.
func (s *OrderStorage) CreateOrder(ctx context.Context, order *Order, items []OrderItem, consumed []cart.CartItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(order)
		if result.Error != nil {
			return fmt.Errorf("failed to create order - %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.Conflict(errOrderExists)
		}

		if err := tx.Create(&items).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ConflictCause(errOrderItemExists, err)
			}
			return fmt.Errorf("failed to create order items - %w", err)
		}

		for _, line := range consumed {
			result := tx.Where("cart_id = ? AND product_id = ? AND quantity = ?", line.CartID, line.ProductID, line.Quantity).
				Delete(&cart.CartItem{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperror.Conflict(errCartChanged)
			}
		}
		return nil
	})
}

func (s *OrderStorage) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errOrderNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order when email is empty, newest first.
func (s *OrderStorage) ListOrders(ctx context.Context, email string) ([]Order, error) {
	query := s.db.WithContext(ctx).Order("order_date DESC")
	if email != "" {
		query = query.Where("email = ?", email)
	}

	var orders []Order
	if err := query.Find(&orders).Error; err != nil {
		return []Order{}, err
	}
	return orders, nil
}

func (s *OrderStorage) ListItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	var items []OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("product_id").Find(&items).Error; err != nil {
		return []OrderItem{}, err
	}
	return items, nil
}

// UpdateStatus only applies when the order still holds the status the transition was checked against.
func (s *OrderStorage) UpdateStatus(ctx context.Context, orderID string, from, to Status) error {
	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.Conflict(errStatusChanged)
	}
	return nil
}

func (s *OrderStorage) DeleteOrder(ctx context.Context, orderID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&OrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("order_id = ?", orderID).Delete(&Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(errOrderNotFound)
		}
		return nil
	})
}

// DeleteOrphans removes orders that have no items at all.
func (s *OrderStorage) DeleteOrphans(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(
		"DELETE FROM orders WHERE NOT EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.order_id)",
	)
	return result.RowsAffected, result.Error
}
