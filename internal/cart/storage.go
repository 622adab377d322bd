package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/idgen"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	GetOrCreateCart(ctx context.Context, email string) (*Cart, error)
	GetCart(ctx context.Context, cartID string) (*Cart, error)
	GetCartByEmail(ctx context.Context, email string) (*Cart, error)
	ListCarts(ctx context.Context) ([]Cart, error)
	DeleteCart(ctx context.Context, cartID string) error

	AddItem(ctx context.Context, cartID, productID string, quantity int) (*CartItem, error)
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	GetItem(ctx context.Context, cartID, productID string) (*CartItem, error)
	ListItems(ctx context.Context, cartID string) ([]CartItem, error)
}

type CartStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &CartStorage{
		db: db,
	}
}

// GetOrCreateCart inserts a cart unless the email already owns one, then reads
// whichever row won. Concurrent callers always end up with the same cart.
func (s *CartStorage) GetOrCreateCart(ctx context.Context, email string) (*Cart, error) {
	candidate := Cart{CartID: idgen.New(idgen.Cart), Email: email}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create cart - %w", err)
	}
	return s.GetCartByEmail(ctx, email)
}

func (s *CartStorage) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	var cart Cart
	err := s.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errCartNotFound)
		}
		return nil, err
	}
	return &cart, nil
}

func (s *CartStorage) GetCartByEmail(ctx context.Context, email string) (*Cart, error) {
	var cart Cart
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errCartNotFound)
		}
		return nil, err
	}
	return &cart, nil
}

func (s *CartStorage) ListCarts(ctx context.Context) ([]Cart, error) {
	var carts []Cart
	if err := s.db.WithContext(ctx).Order("email").Find(&carts).Error; err != nil {
		return []Cart{}, err
	}
	return carts, nil
}

func (s *CartStorage) DeleteCart(ctx context.Context, cartID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&CartItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("cart_id = ?", cartID).Delete(&Cart{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(errCartNotFound)
		}
		return nil
	})
}

// AddItem increments the line in a single upsert statement. The update is skipped when the
// sum would pass catalog.MaxQuantity.
func (s *CartStorage) AddItem(ctx context.Context, cartID, productID string, quantity int) (*CartItem, error) {
	item := CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("cart_items.quantity + ? <= ?", quantity, catalog.MaxQuantity),
		}},
	}).Create(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to add cart item - %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.Validationf("quantity of %s can not exceed %d", productID, catalog.MaxQuantity)
	}
	return s.GetItem(ctx, cartID, productID)
}

func (s *CartStorage) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	result := s.db.WithContext(ctx).Model(&CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errCartItemNotFound)
	}
	return nil
}

func (s *CartStorage) RemoveItem(ctx context.Context, cartID, productID string) error {
	result := s.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(errCartItemNotFound)
	}
	return nil
}

func (s *CartStorage) GetItem(ctx context.Context, cartID, productID string) (*CartItem, error) {
	var item CartItem
	err := s.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(errCartItemNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (s *CartStorage) ListItems(ctx context.Context, cartID string) ([]CartItem, error) {
	var items []CartItem
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("product_id").Find(&items).Error; err != nil {
		return []CartItem{}, err
	}
	return items, nil
}
