package payment

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/idgen"
)

type PaymentService interface {
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, caller access.Caller, input PaymentMethodInput) (*PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, caller access.Caller, paymentMethodID string, input PaymentMethodInput) (*PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, caller access.Caller, paymentMethodID string) error
}

type paymentService struct {
	storage Storage
	logger  *logrus.Entry
}

func NewService(storage Storage, log *logrus.Entry) PaymentService {
	return &paymentService{
		storage: storage,
		logger:  log,
	}
}

func (s *paymentService) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return s.storage.ListPaymentMethods(ctx)
}

func (s *paymentService) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethod, error) {
	return s.storage.GetPaymentMethod(ctx, paymentMethodID)
}

func (s *paymentService) CreatePaymentMethod(ctx context.Context, caller access.Caller, input PaymentMethodInput) (*PaymentMethod, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.MethodName)
	if name == "" {
		return nil, apperror.Validation("method name is required")
	}
	id, err := idgen.Resolve(idgen.PaymentMethod, input.PaymentMethodID)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	method := &PaymentMethod{PaymentMethodID: id, MethodName: name}
	if err := s.storage.CreatePaymentMethod(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *paymentService) UpdatePaymentMethod(ctx context.Context, caller access.Caller, paymentMethodID string, input PaymentMethodInput) (*PaymentMethod, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.MethodName)
	if name == "" {
		return nil, apperror.Validation("method name is required")
	}
	taken, err := s.storage.NameTaken(ctx, name, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict(errPaymentMethodExists)
	}
	if err := s.storage.UpdatePaymentMethod(ctx, paymentMethodID, name); err != nil {
		return nil, err
	}
	return s.storage.GetPaymentMethod(ctx, paymentMethodID)
}

func (s *paymentService) DeletePaymentMethod(ctx context.Context, caller access.Caller, paymentMethodID string) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	return s.storage.DeletePaymentMethod(ctx, paymentMethodID)
}
