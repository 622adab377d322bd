package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/address"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/cart"
	"github.com/voduybaokhanh/shop-service/internal/catalog"
	"github.com/voduybaokhanh/shop-service/internal/idgen"
	"github.com/voduybaokhanh/shop-service/internal/payment"
)

type AccountFinder interface {
	GetAccount(ctx context.Context, email string) (*account.Account, error)
}

type ProductFinder interface {
	FindProducts(ctx context.Context, productIDs []string) (map[string]catalog.Product, error)
}

type AddressGetter interface {
	GetAddress(ctx context.Context, caller access.Caller, addressID string) (*address.Address, error)
}

type PaymentMethodGetter interface {
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*payment.PaymentMethod, error)
}

type CartReader interface {
	GetCart(ctx context.Context, caller access.Caller, cartID string) (*cart.Cart, error)
	GetCartByEmail(ctx context.Context, caller access.Caller, email string) (*cart.Cart, error)
	ListItems(ctx context.Context, caller access.Caller, cartID string) ([]cart.CartLine, error)
}

// References are the aggregates an order points at. They are only read during checkout.
type References struct {
	Accounts       AccountFinder
	Products       ProductFinder
	Addresses      AddressGetter
	PaymentMethods PaymentMethodGetter
	Carts          CartReader
}

type OrderService interface {
	Checkout(ctx context.Context, caller access.Caller, input CheckoutInput) (*Order, error)
	GetOrder(ctx context.Context, caller access.Caller, orderID string) (*Order, error)
	ListItems(ctx context.Context, caller access.Caller, orderID string) ([]OrderItem, error)
	ListOrders(ctx context.Context, caller access.Caller) ([]Order, error)
	ListOrdersByEmail(ctx context.Context, caller access.Caller, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, caller access.Caller, orderID string, status Status) (*Order, error)
	DeleteOrder(ctx context.Context, caller access.Caller, orderID string) error
	ReconcileOrphans(ctx context.Context) (int64, error)
}

type orderService struct {
	storage   Storage
	refs      References
	checkouts *prometheus.CounterVec
	logger    *logrus.Entry
	now       func() time.Time
}

// NewService registers the checkout counter on reg when it is not nil.
func NewService(storage Storage, refs References, reg prometheus.Registerer, log *logrus.Entry) OrderService {
	checkouts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_checkouts_total",
			Help: "Checkout attempts by result",
		},
		[]string{"result"},
	)
	if reg != nil {
		reg.MustRegister(checkouts)
	}

	return &orderService{
		storage:   storage,
		refs:      refs,
		checkouts: checkouts,
		logger:    log,
		now:       time.Now,
	}
}

type line struct {
	productID string
	quantity  int
	price     *decimal.Decimal
}

func (s *orderService) Checkout(ctx context.Context, caller access.Caller, input CheckoutInput) (*Order, error) {
	order, err := s.checkout(ctx, caller, input)
	if err != nil {
		kind := apperror.As(err).Kind
		s.checkouts.WithLabelValues(string(kind)).Inc()
		if kind == apperror.ConflictKind || kind == apperror.InternalKind {
			s.logger.Warnf("checkout by %s failed: %v", caller.Email, err)
		}
		return nil, err
	}
	s.checkouts.WithLabelValues("success").Inc()
	return order, nil
}

func (s *orderService) checkout(ctx context.Context, caller access.Caller, input CheckoutInput) (*Order, error) {
	owner := strings.ToLower(strings.TrimSpace(input.Email))
	if owner == "" {
		owner = caller.Email
	}
	if err := access.Authorize(caller, owner); err != nil {
		return nil, err
	}
	if _, err := s.refs.Accounts.GetAccount(ctx, owner); err != nil {
		return nil, err
	}

	orderID, err := idgen.Resolve(idgen.Order, input.OrderID)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	addr, err := s.refs.Addresses.GetAddress(ctx, caller, input.AddressID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(addr.Email, owner) {
		return nil, apperror.Validation("address does not belong to the order owner")
	}
	if _, err := s.refs.PaymentMethods.GetPaymentMethod(ctx, input.PaymentMethodID); err != nil {
		return nil, err
	}

	var (
		lines    []line
		consumed []cart.CartItem
	)
	if len(input.Items) > 0 {
		lines, err = mergeLines(input.Items)
	} else {
		lines, consumed, err = s.cartLines(ctx, caller, owner, input.CartID)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.productID)
	}
	products, err := s.refs.Products.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.NotFound(fmt.Errorf("%w: %s", errProductNotFound, strings.Join(missing, ", ")))
	}

	order := &Order{
		OrderID:         orderID,
		Email:           owner,
		AddressID:       addr.AddressID,
		PaymentMethodID: input.PaymentMethodID,
		OrderDate:       s.now().UTC(),
		Status:          StatusPending,
		Total:           decimal.Zero,
	}
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		price := products[l.productID].Price
		if l.price != nil {
			price = *l.price
		}
		items = append(items, OrderItem{
			OrderID:   orderID,
			ProductID: l.productID,
			Quantity:  l.quantity,
			Price:     price,
		})
		order.Total = order.Total.Add(price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	if !catalog.AmountFits(order.Total) {
		return nil, apperror.Validationf("order total %s is too large", order.Total.String())
	}

	if err := s.storage.CreateOrder(ctx, order, items, consumed); err != nil {
		return nil, err
	}

	s.logger.Infof("order %s placed by %s with %d items, total %s", order.OrderID, owner, len(items), order.Total.StringFixed(2))
	order.Items = items
	return order, nil
}

// mergeLines validates an explicit line list and folds repeated products into one line.
// A supplied price replaces the catalog price for that line.
func mergeLines(inputs []LineInput) ([]line, error) {
	lines := make([]line, 0, len(inputs))
	index := make(map[string]int, len(inputs))

	for _, in := range inputs {
		productID := strings.TrimSpace(in.ProductID)
		if productID == "" {
			return nil, apperror.Validation("product id is required")
		}
		quantity := 1
		if in.Quantity != nil {
			quantity = *in.Quantity
		}
		if err := catalog.ValidateQuantity(quantity); err != nil {
			return nil, apperror.Validationf("%s: %s", productID, apperror.As(err).Message)
		}
		if in.Price != nil {
			if err := catalog.ValidatePrice(*in.Price); err != nil {
				return nil, apperror.Validationf("%s: %s", productID, apperror.As(err).Message)
			}
		}

		i, seen := index[productID]
		if !seen {
			index[productID] = len(lines)
			lines = append(lines, line{productID: productID, quantity: quantity, price: in.Price})
			continue
		}
		existing := &lines[i]
		if in.Price != nil {
			if existing.price != nil && !existing.price.Equal(*in.Price) {
				return nil, apperror.Validationf("conflicting prices for %s", productID)
			}
			existing.price = in.Price
		}
		if existing.quantity > catalog.MaxQuantity-quantity {
			return nil, apperror.Validationf("%s: quantity must be between 1 and %d", productID, catalog.MaxQuantity)
		}
		existing.quantity += quantity
	}
	return lines, nil
}

func (s *orderService) cartLines(ctx context.Context, caller access.Caller, owner, cartID string) ([]line, []cart.CartItem, error) {
	var (
		c   *cart.Cart
		err error
	)
	if strings.TrimSpace(cartID) == "" {
		c, err = s.refs.Carts.GetCartByEmail(ctx, caller, owner)
	} else {
		c, err = s.refs.Carts.GetCart(ctx, caller, cartID)
	}
	if err != nil {
		return nil, nil, err
	}
	if !strings.EqualFold(c.Email, owner) {
		return nil, nil, apperror.Validation("cart does not belong to the order owner")
	}

	cartLines, err := s.refs.Carts.ListItems(ctx, caller, c.CartID)
	if err != nil {
		return nil, nil, err
	}
	if len(cartLines) == 0 {
		return nil, nil, apperror.Validation("cart is empty")
	}

	lines := make([]line, 0, len(cartLines))
	consumed := make([]cart.CartItem, 0, len(cartLines))
	for _, cl := range cartLines {
		lines = append(lines, line{productID: cl.ProductID, quantity: cl.Quantity})
		consumed = append(consumed, cl.CartItem)
	}
	return lines, consumed, nil
}

func (s *orderService) GetOrder(ctx context.Context, caller access.Caller, orderID string) (*Order, error) {
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, order.Email); err != nil {
		return nil, err
	}

	order.Items, err = s.storage.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListItems(ctx context.Context, caller access.Caller, orderID string) ([]OrderItem, error) {
	order, err := s.GetOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

func (s *orderService) ListOrders(ctx context.Context, caller access.Caller) ([]Order, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.storage.ListOrders(ctx, "")
}

func (s *orderService) ListOrdersByEmail(ctx context.Context, caller access.Caller, email string) ([]Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = caller.Email
	}
	if err := access.Authorize(caller, email); err != nil {
		return nil, err
	}
	return s.storage.ListOrders(ctx, email)
}

// UpdateStatus moves an order forward. Customers may only cancel their own orders.
func (s *orderService) UpdateStatus(ctx context.Context, caller access.Caller, orderID string, status Status) (*Order, error) {
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, order.Email); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, apperror.Validationf("unknown order status %q", status)
	}
	if !caller.IsAdmin() && status != StatusCancelled {
		return nil, apperror.Forbidden("only admins can advance an order")
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperror.Validationf("order can not move from %s to %s", order.Status, status)
	}

	if err := s.storage.UpdateStatus(ctx, orderID, order.Status, status); err != nil {
		return nil, err
	}

	s.logger.Infof("order %s moved from %s to %s by %s", orderID, order.Status, status, caller.Email)
	return s.GetOrder(ctx, caller, orderID)
}

func (s *orderService) DeleteOrder(ctx context.Context, caller access.Caller, orderID string) error {
	order, err := s.storage.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := access.Authorize(caller, order.Email); err != nil {
		return err
	}
	return s.storage.DeleteOrder(ctx, orderID)
}

// ReconcileOrphans deletes orders left without items by writes that predate transactional checkout.
func (s *orderService) ReconcileOrphans(ctx context.Context) (int64, error) {
	removed, err := s.storage.DeleteOrphans(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Warnf("removed %d orders without items", removed)
	}
	return removed, nil
}
