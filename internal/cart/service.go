package cart

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
)

// ProductFinder resolves catalog products by id. Missing ids are absent from the map.
type ProductFinder interface {
	FindProducts(ctx context.Context, productIDs []string) (map[string]catalog.Product, error)
}

// AccountFinder resolves the registered account behind an owner email.
type AccountFinder interface {
	GetAccount(ctx context.Context, email string) (*account.Account, error)
}

type CartService interface {
	GetOrCreateCart(ctx context.Context, caller access.Caller, email string) (*Cart, error)
	GetCart(ctx context.Context, caller access.Caller, cartID string) (*Cart, error)
	GetCartByEmail(ctx context.Context, caller access.Caller, email string) (*Cart, error)
	ListCarts(ctx context.Context, caller access.Caller) ([]Cart, error)
	DeleteCart(ctx context.Context, caller access.Caller, cartID string) error

	ListItems(ctx context.Context, caller access.Caller, cartID string) ([]CartLine, error)
	AddItem(ctx context.Context, caller access.Caller, input AddItemInput) (*CartItem, error)
	SetItemQuantity(ctx context.Context, caller access.Caller, cartID, productID string, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, caller access.Caller, cartID, productID string) error
}

type cartService struct {
	storage  Storage
	products ProductFinder
	accounts AccountFinder
	logger   *logrus.Entry
}

func NewService(storage Storage, products ProductFinder, accounts AccountFinder, log *logrus.Entry) CartService {
	return &cartService{
		storage:  storage,
		products: products,
		accounts: accounts,
		logger:   log,
	}
}

func ownerEmail(caller access.Caller, email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return caller.Email
	}
	return email
}

func (s *cartService) GetOrCreateCart(ctx context.Context, caller access.Caller, email string) (*Cart, error) {
	owner := ownerEmail(caller, email)
	if err := access.Authorize(caller, owner); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetAccount(ctx, owner); err != nil {
		return nil, err
	}
	return s.storage.GetOrCreateCart(ctx, owner)
}

func (s *cartService) GetCart(ctx context.Context, caller access.Caller, cartID string) (*Cart, error) {
	cart, err := s.storage.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, cart.Email); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCartByEmail(ctx context.Context, caller access.Caller, email string) (*Cart, error) {
	owner := ownerEmail(caller, email)
	if err := access.Authorize(caller, owner); err != nil {
		return nil, err
	}
	return s.storage.GetCartByEmail(ctx, owner)
}

func (s *cartService) ListCarts(ctx context.Context, caller access.Caller) ([]Cart, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.storage.ListCarts(ctx)
}

func (s *cartService) DeleteCart(ctx context.Context, caller access.Caller, cartID string) error {
	if _, err := s.GetCart(ctx, caller, cartID); err != nil {
		return err
	}
	if err := s.storage.DeleteCart(ctx, cartID); err != nil {
		return err
	}

	s.logger.Infof("deleted cart %s", cartID)
	return nil
}

func (s *cartService) ListItems(ctx context.Context, caller access.Caller, cartID string) ([]CartLine, error) {
	if _, err := s.GetCart(ctx, caller, cartID); err != nil {
		return nil, err
	}

	items, err := s.storage.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		line := CartLine{CartItem: item}
		if p, ok := products[item.ProductID]; ok {
			line.Product = &p
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddItem adds to the caller's own cart when no CartID is given, creating it on first use.
func (s *cartService) AddItem(ctx context.Context, caller access.Caller, input AddItemInput) (*CartItem, error) {
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if err := catalog.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, apperror.Validation("product id is required")
	}

	var (
		cart *Cart
		err  error
	)
	if strings.TrimSpace(input.CartID) == "" {
		cart, err = s.GetOrCreateCart(ctx, caller, "")
	} else {
		cart, err = s.GetCart(ctx, caller, input.CartID)
	}
	if err != nil {
		return nil, err
	}

	found, err := s.products.FindProducts(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	if _, ok := found[productID]; !ok {
		return nil, apperror.NotFound(errProductNotFound)
	}

	return s.storage.AddItem(ctx, cart.CartID, productID, quantity)
}

// SetItemQuantity overwrites the line. A non-positive quantity removes it and returns a nil item.
// Quantities above catalog.MaxQuantity are rejected.
func (s *cartService) SetItemQuantity(ctx context.Context, caller access.Caller, cartID, productID string, quantity int) (*CartItem, error) {
	if _, err := s.GetCart(ctx, caller, cartID); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, s.storage.RemoveItem(ctx, cartID, productID)
	}
	if err := catalog.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.storage.SetItemQuantity(ctx, cartID, productID, quantity); err != nil {
		return nil, err
	}
	return s.storage.GetItem(ctx, cartID, productID)
}

func (s *cartService) RemoveItem(ctx context.Context, caller access.Caller, cartID, productID string) error {
	if _, err := s.GetCart(ctx, caller, cartID); err != nil {
		return err
	}
	return s.storage.RemoveItem(ctx, cartID, productID)
}
