package address

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/account"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/idgen"
)

type AddressService interface {
	CreateAddress(ctx context.Context, caller access.Caller, input AddressInput) (*Address, error)
	GetAddress(ctx context.Context, caller access.Caller, addressID string) (*Address, error)
	ListAddresses(ctx context.Context, caller access.Caller) ([]Address, error)
	ListAddressesByEmail(ctx context.Context, caller access.Caller, email string) ([]Address, error)
	UpdateAddress(ctx context.Context, caller access.Caller, addressID string, input AddressUpdate) (*Address, error)
	DeleteAddress(ctx context.Context, caller access.Caller, addressID string) error
}

// AccountFinder resolves the registered account behind an owner email.
type AccountFinder interface {
	GetAccount(ctx context.Context, email string) (*account.Account, error)
}

type addressService struct {
	storage  Storage
	accounts AccountFinder
	validate *validator.Validate
	logger   *logrus.Entry
}

func NewService(storage Storage, accounts AccountFinder, log *logrus.Entry) AddressService {
	return &addressService{
		storage:  storage,
		accounts: accounts,
		validate: validator.New(),
		logger:   log,
	}
}

func (s *addressService) check(address *Address) error {
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.Country = strings.TrimSpace(address.Country)

	err := s.validate.Struct(address)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		field := strings.ToLower(fieldErrs[0].Field())
		if fieldErrs[0].Tag() == "required" {
			return apperror.Validationf("%s is required", field)
		}
		return apperror.Validationf("%s must be at most %s characters", field, fieldErrs[0].Param())
	}
	return err
}

func (s *addressService) CreateAddress(ctx context.Context, caller access.Caller, input AddressInput) (*Address, error) {
	owner := strings.ToLower(strings.TrimSpace(input.Email))
	if owner == "" {
		owner = caller.Email
	}
	if err := access.Authorize(caller, owner); err != nil {
		return nil, err
	}

	id, err := idgen.Resolve(idgen.Address, input.AddressID)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	address := &Address{
		AddressID: id,
		Email:     owner,
		Street:    input.Street,
		City:      input.City,
		Country:   input.Country,
	}
	if err := s.check(address); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetAccount(ctx, owner); err != nil {
		return nil, err
	}

	if err := s.storage.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) GetAddress(ctx context.Context, caller access.Caller, addressID string) (*Address, error) {
	address, err := s.storage.GetAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, address.Email); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) ListAddresses(ctx context.Context, caller access.Caller) ([]Address, error) {
	if caller.Anonymous() {
		return nil, apperror.Unauthorized("authentication required")
	}
	if caller.IsAdmin() {
		return s.storage.ListAddresses(ctx, "")
	}
	return s.storage.ListAddresses(ctx, caller.Email)
}

func (s *addressService) ListAddressesByEmail(ctx context.Context, caller access.Caller, email string) ([]Address, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := access.Authorize(caller, email); err != nil {
		return nil, err
	}
	return s.storage.ListAddresses(ctx, email)
}

func (s *addressService) UpdateAddress(ctx context.Context, caller access.Caller, addressID string, input AddressUpdate) (*Address, error) {
	address, err := s.GetAddress(ctx, caller, addressID)
	if err != nil {
		return nil, err
	}

	if input.Street != nil {
		address.Street = *input.Street
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.Country != nil {
		address.Country = *input.Country
	}
	if err := s.check(address); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"street":  address.Street,
		"city":    address.City,
		"country": address.Country,
	}
	if err := s.storage.UpdateAddress(ctx, addressID, fields); err != nil {
		return nil, err
	}
	return s.storage.GetAddress(ctx, addressID)
}

func (s *addressService) DeleteAddress(ctx context.Context, caller access.Caller, addressID string) error {
	if _, err := s.GetAddress(ctx, caller, addressID); err != nil {
		return err
	}
	return s.storage.DeleteAddress(ctx, addressID)
}
