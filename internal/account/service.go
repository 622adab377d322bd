package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/access"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type TokenIssuer interface {
	GenerateToken(email, role string) (string, time.Time, error)
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*Account, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Me(ctx context.Context, caller access.Caller) (*Account, error)
	ChangePassword(ctx context.Context, caller access.Caller, input ChangePasswordInput) error
	GetAccount(ctx context.Context, caller access.Caller, email string) (*Account, error)
	ListAccounts(ctx context.Context, caller access.Caller) ([]Account, error)
	UpdateAccount(ctx context.Context, caller access.Caller, email string, input UpdateInput) (*Account, error)
	DeleteAccount(ctx context.Context, caller access.Caller, email string) error
	EnsureAdmin(ctx context.Context, email, fullName, password string) error
}

type accountService struct {
	storage  Storage
	tokens   TokenIssuer
	validate *validator.Validate
	logger   *logrus.Entry
	hashCost int
}

func NewService(storage Storage, tokens TokenIssuer, log *logrus.Entry) AccountService {
	return &accountService{
		storage:  storage,
		tokens:   tokens,
		validate: validator.New(),
		logger:   log,
		hashCost: bcrypt.DefaultCost,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperror.Internal("failed to hash password", err)
	}
	return string(hash), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperror.Validationf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func (s *accountService) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	email := NormalizeEmail(input.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperror.Validation("invalid email")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, apperror.Validation("full name is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &Account{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         access.RoleCustomer,
	}
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Infof("registered account %s", email)
	return account, nil
}

func (s *accountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	account, err := s.storage.GetAccount(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if apperror.IsKind(err, apperror.NotFoundKind) {
			return nil, apperror.Unauthorized(errInvalidCredentials.Error())
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Debugf("login: password mismatch for %s", account.Email)
		return nil, apperror.Unauthorized(errInvalidCredentials.Error())
	}

	token, expiresAt, err := s.tokens.GenerateToken(account.Email, account.Role)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func (s *accountService) Me(ctx context.Context, caller access.Caller) (*Account, error) {
	if caller.Anonymous() {
		return nil, apperror.Unauthorized("authentication required")
	}
	return s.storage.GetAccount(ctx, caller.Email)
}

func (s *accountService) ChangePassword(ctx context.Context, caller access.Caller, input ChangePasswordInput) error {
	account, err := s.Me(ctx, caller)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperror.Validation(errWrongPassword.Error())
	}
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	hash, err := s.hashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.storage.UpdateAccount(ctx, account.Email, map[string]interface{}{"password_hash": hash})
}

func (s *accountService) GetAccount(ctx context.Context, caller access.Caller, email string) (*Account, error) {
	email = NormalizeEmail(email)
	if err := access.Authorize(caller, email); err != nil {
		return nil, err
	}
	return s.storage.GetAccount(ctx, email)
}

func (s *accountService) ListAccounts(ctx context.Context, caller access.Caller) ([]Account, error) {
	if err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.storage.ListAccounts(ctx)
}

func (s *accountService) UpdateAccount(ctx context.Context, caller access.Caller, email string, input UpdateInput) (*Account, error) {
	email = NormalizeEmail(email)
	if err := access.Authorize(caller, email); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, apperror.Validation("full name can not be empty")
		}
		fields["full_name"] = name
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if input.Role != nil {
		if err := access.RequireAdmin(caller); err != nil {
			return nil, err
		}
		if !access.ValidRole(*input.Role) {
			return nil, apperror.Validationf("unknown role %q", *input.Role)
		}
		fields["role"] = *input.Role
	}

	if len(fields) == 0 {
		return s.storage.GetAccount(ctx, email)
	}
	if err := s.storage.UpdateAccount(ctx, email, fields); err != nil {
		return nil, err
	}
	return s.storage.GetAccount(ctx, email)
}

func (s *accountService) DeleteAccount(ctx context.Context, caller access.Caller, email string) error {
	email = NormalizeEmail(email)
	if err := access.Authorize(caller, email); err != nil {
		return err
	}
	return s.storage.DeleteAccount(ctx, email)
}

// EnsureAdmin creates the account with the admin role, or promotes it when it already exists.
func (s *accountService) EnsureAdmin(ctx context.Context, email, fullName, password string) error {
	email = NormalizeEmail(email)
	_, err := s.Register(ctx, RegisterInput{Email: email, FullName: fullName, Password: password})
	if err != nil && !apperror.IsKind(err, apperror.ConflictKind) {
		return err
	}
	if err := s.storage.UpdateAccount(ctx, email, map[string]interface{}{"role": access.RoleAdmin}); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	return nil
}
