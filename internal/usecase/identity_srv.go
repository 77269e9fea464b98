package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/dto/response"
	"carwash-marketplace/pkg/cache"
	"carwash-marketplace/pkg/mailer"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityService covers customer and provider accounts
type IdentityService interface {
	// Customers
	RegisterCustomer(ctx context.Context, req *request.RegisterRequest) error
	VerifyCustomer(ctx context.Context, req *request.VerifyEmailRequest) error
	CreateCustomer(ctx context.Context, req *request.RegisterRequest) (*response.CustomerResponse, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID uuid.UUID, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)

	// Providers
	RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) error
	VerifyProvider(ctx context.Context, req *request.VerifyEmailRequest) error
	CheckProviderEmail(ctx context.Context, req *request.CheckEmailRequest) (*response.CheckEmailResponse, error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*response.ProviderResponse, error)
	UpdateProvider(ctx context.Context, providerID uuid.UUID, req *request.UpdateProviderRequest) (*response.ProviderResponse, error)
	ListProviderLocations(ctx context.Context) ([]entity.ProviderLocation, error)

	// Login looks up the email among accounts of req.Role only
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type identityService struct {
	repo   *repository.Repository
	tokens TokenIssuer
	mailer mailer.Mailer
	cache  cache.LocationCache
	config *utils.Config
	log    *zap.Logger
}

func NewIdentityService(
	repo *repository.Repository,
	tokens TokenIssuer,
	mail mailer.Mailer,
	locations cache.LocationCache,
	config *utils.Config,
	log *zap.Logger,
) IdentityService {
	return &identityService{
		repo:   repo,
		tokens: tokens,
		mailer: mail,
		cache:  locations,
		config: config,
		log:    log.With(zap.String("service", "identity")),
	}
}

func (s *identityService) RegisterCustomer(ctx context.Context, req *request.RegisterRequest) error {
	if err := s.validate(req, "register customer"); err != nil {
		return err
	}

	email := utils.NormalizeEmail(req.Email)
	if err := s.ensureCustomerEmailFree(ctx, email); err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	unverified := &entity.UnverifiedCustomer{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		PasswordHash:     hash,
		VerificationCode: utils.GenerateVerificationCode(s.config.OTP.Length),
	}

	if err := s.repo.Customer.CreateUnverified(ctx, unverified); err != nil {
		if repository.IsUniqueViolation(err) {
			return newError(ErrDuplicateEmail, "Email already registered")
		}
		return fmt.Errorf("register customer: %w", err)
	}

	s.sendCode(ctx, unverified.Email, unverified.Name, unverified.VerificationCode)

	s.log.Info("Customer registered, awaiting verification", zap.String("email", email))
	return nil
}

func (s *identityService) VerifyCustomer(ctx context.Context, req *request.VerifyEmailRequest) error {
	if err := s.validate(req, "verify customer"); err != nil {
		return err
	}

	unverified, err := s.repo.Customer.FindUnverifiedByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return fmt.Errorf("verify customer: %w", err)
	}
	if unverified == nil {
		return newError(ErrNotFound, "No pending registration for this email")
	}

	if !codesMatch(unverified.VerificationCode, req.VerificationCode) {
		s.log.Warn("Invalid verification code", zap.String("email", unverified.Email))
		return newError(ErrInvalidCode, "Invalid verification code")
	}

	now := time.Now()
	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         unverified.Name,
		Email:        unverified.Email,
		PasswordHash: unverified.PasswordHash,
		IsVerified:   true,
	}

	if err := s.repo.Customer.Promote(ctx, unverified.ID, customer); err != nil {
		if repository.IsUniqueViolation(err) {
			return newError(ErrDuplicateEmail, "Email already registered")
		}
		return fmt.Errorf("verify customer: %w", err)
	}

	s.log.Info("Customer verified", zap.String("customer_id", customer.ID.String()))
	return nil
}

// CreateCustomer creates a verified customer directly, skipping the email code
func (s *identityService) CreateCustomer(ctx context.Context, req *request.RegisterRequest) (*response.CustomerResponse, error) {
	if err := s.validate(req, "create customer"); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(req.Email)
	if err := s.ensureCustomerEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		IsVerified:   true,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newError(ErrDuplicateEmail, "Email already registered")
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *identityService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, newError(ErrNotFound, "Customer not found")
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *identityService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if err := s.validate(req, "update customer"); err != nil {
		return nil, err
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	if customer == nil {
		return nil, newError(ErrNotFound, "Customer not found")
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if !strings.EqualFold(email, customer.Email) {
			if err := s.ensureCustomerEmailFree(ctx, email); err != nil {
				return nil, err
			}
			customer.Email = email
		}
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newError(ErrDuplicateEmail, "Email already registered")
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *identityService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := s.validate(req, "login"); err != nil {
		return nil, err
	}

	var (
		account entity.Account
		hash    string
	)

	switch entity.Role(req.Role) {
	case entity.RoleProvider:
		provider, err := s.repo.Provider.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
		if err != nil {
			return nil, fmt.Errorf("login provider: %w", err)
		}
		if provider == nil {
			return nil, newError(ErrNotFound, "Provider not found")
		}
		account, hash = provider, provider.PasswordHash

	case entity.RoleCustomer, "":
		customer, err := s.repo.Customer.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
		if err != nil {
			return nil, fmt.Errorf("login customer: %w", err)
		}
		if customer == nil {
			return nil, newError(ErrNotFound, "Customer not found")
		}
		account, hash = customer, customer.PasswordHash

	default:
		return nil, newError(ErrValidation, "Unsupported role %q", req.Role)
	}

	if !utils.CheckPasswordHash(req.Password, hash) {
		s.log.Warn("Invalid password", zap.String("account_id", account.AccountID().String()))
		return nil, newError(ErrInvalidCredential, "Invalid email or password")
	}

	return s.issue(account)
}

func (s *identityService) issue(account entity.Account) (*response.AuthResponse, error) {
	return issueToken(s.tokens, s.config.JWT.TTL(), account, s.log)
}

func (s *identityService) ensureCustomerEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check customer email: %w", err)
	}
	if existing != nil {
		return newError(ErrDuplicateEmail, "Email already registered")
	}

	pending, err := s.repo.Customer.FindUnverifiedByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check customer email: %w", err)
	}
	if pending != nil {
		return newError(ErrDuplicateEmail, "Email already registered")
	}

	return nil
}

// sendCode logs mail failures without failing the caller
func (s *identityService) sendCode(ctx context.Context, email, name, code string) {
	if err := s.mailer.SendVerificationCode(ctx, email, name, code); err != nil {
		s.log.Error("Failed to send verification code",
			zap.Error(err),
			zap.String("email", email),
		)
	}
}

func (s *identityService) validate(req any, op string) error {
	return validateRequest(req, op, s.log)
}

func codesMatch(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(given))) == 1
}
