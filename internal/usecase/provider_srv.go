package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/dto/response"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referralCodeAttempts = 5

func (s *identityService) RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) error {
	if err := s.validate(req, "register provider"); err != nil {
		return err
	}

	email := utils.NormalizeEmail(req.Email)
	exists, err := s.providerEmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return newError(ErrDuplicateEmail, "Email already registered")
	}

	referralCode, err := s.pickReferralCode(ctx, strings.TrimSpace(req.ReferralCode))
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	unverified := &entity.UnverifiedProvider{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		City:          strings.TrimSpace(req.City),
		Address:       strings.TrimSpace(req.Address),
		Location: entity.GeoPoint{
			Longitude: req.Location.Longitude,
			Latitude:  req.Location.Latitude,
		},
		ReferralCode:     referralCode,
		VerificationCode: utils.GenerateVerificationCode(s.config.OTP.Length),
	}

	if err := s.repo.Provider.CreateUnverified(ctx, unverified); err != nil {
		if repository.IsUniqueViolation(err) {
			return newError(ErrDuplicateEmail, "Email already registered")
		}
		return fmt.Errorf("register provider: %w", err)
	}

	s.sendCode(ctx, unverified.Email, unverified.Name, unverified.VerificationCode)

	s.log.Info("Provider registered, awaiting verification", zap.String("email", email))
	return nil
}

func (s *identityService) VerifyProvider(ctx context.Context, req *request.VerifyEmailRequest) error {
	if err := s.validate(req, "verify provider"); err != nil {
		return err
	}

	unverified, err := s.repo.Provider.FindUnverifiedByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return fmt.Errorf("verify provider: %w", err)
	}
	if unverified == nil {
		return newError(ErrNotFound, "No pending registration for this email")
	}

	if !codesMatch(unverified.VerificationCode, req.VerificationCode) {
		s.log.Warn("Invalid verification code", zap.String("email", unverified.Email))
		return newError(ErrInvalidCode, "Invalid verification code")
	}

	now := time.Now()
	provider := &entity.Provider{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          unverified.Name,
		Email:         unverified.Email,
		PasswordHash:  unverified.PasswordHash,
		ContactNumber: unverified.ContactNumber,
		City:          unverified.City,
		Address:       unverified.Address,
		Location:      unverified.Location,
		ReferralCode:  unverified.ReferralCode,
		IsVerified:    true,
	}

	if err := s.repo.Provider.Promote(ctx, unverified.ID, provider); err != nil {
		if repository.IsUniqueViolation(err) {
			return newError(ErrDuplicateEmail, "Email or referral code already registered")
		}
		return fmt.Errorf("verify provider: %w", err)
	}

	s.invalidateLocations(ctx)

	s.log.Info("Provider verified", zap.String("provider_id", provider.ID.String()))
	return nil
}

func (s *identityService) CheckProviderEmail(ctx context.Context, req *request.CheckEmailRequest) (*response.CheckEmailResponse, error) {
	if err := s.validate(req, "check provider email"); err != nil {
		return nil, err
	}

	exists, err := s.providerEmailExists(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	return &response.CheckEmailResponse{Exists: exists}, nil
}

func (s *identityService) GetProvider(ctx context.Context, providerID uuid.UUID) (*response.ProviderResponse, error) {
	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	if provider == nil {
		return nil, newError(ErrNotFound, "Provider not found")
	}

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *identityService) UpdateProvider(ctx context.Context, providerID uuid.UUID, req *request.UpdateProviderRequest) (*response.ProviderResponse, error) {
	if err := s.validate(req, "update provider"); err != nil {
		return nil, err
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("update provider: %w", err)
	}
	if provider == nil {
		return nil, newError(ErrNotFound, "Provider not found")
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		provider.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactNumber != nil && strings.TrimSpace(*req.ContactNumber) != "" {
		provider.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.City != nil && strings.TrimSpace(*req.City) != "" {
		provider.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		provider.Address = strings.TrimSpace(*req.Address)
	}
	if req.ReferralCode != nil {
		code := strings.TrimSpace(*req.ReferralCode)
		if code != "" && code != provider.ReferralCode {
			taken, err := s.repo.Provider.ReferralCodeTaken(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("update provider: %w", err)
			}
			if taken {
				return nil, newError(ErrValidation, "Referral code already in use")
			}
			provider.ReferralCode = code
		}
	}
	provider.UpdatedAt = time.Now()

	if err := s.repo.Provider.Update(ctx, provider); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, newError(ErrValidation, "Referral code already in use")
		}
		return nil, fmt.Errorf("update provider: %w", err)
	}

	s.invalidateLocations(ctx)

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

// ListProviderLocations serves from cache when possible, cache errors fall through to the database
func (s *identityService) ListProviderLocations(ctx context.Context) ([]entity.ProviderLocation, error) {
	cached, err := s.cache.GetLocations(ctx)
	if err != nil {
		s.log.Warn("Failed to read provider locations from cache", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	locations, err := s.repo.Provider.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provider locations: %w", err)
	}

	if err := s.cache.SetLocations(ctx, locations); err != nil {
		s.log.Warn("Failed to cache provider locations", zap.Error(err))
	}

	return locations, nil
}

func (s *identityService) providerEmailExists(ctx context.Context, email string) (bool, error) {
	existing, err := s.repo.Provider.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check provider email: %w", err)
	}
	if existing != nil {
		return true, nil
	}

	pending, err := s.repo.Provider.FindUnverifiedByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check provider email: %w", err)
	}

	return pending != nil, nil
}

// pickReferralCode keeps a requested code when free, otherwise generates one
func (s *identityService) pickReferralCode(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		taken, err := s.repo.Provider.ReferralCodeTaken(ctx, requested)
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if taken {
			return "", newError(ErrValidation, "Referral code already in use")
		}
		return requested, nil
	}

	for i := 0; i < referralCodeAttempts; i++ {
		code := utils.GenerateReferralCode()
		taken, err := s.repo.Provider.ReferralCodeTaken(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not generate a free referral code after %d attempts", referralCodeAttempts)
}

func (s *identityService) invalidateLocations(ctx context.Context) {
	if err := s.cache.InvalidateLocations(ctx); err != nil {
		s.log.Warn("Failed to invalidate provider locations cache", zap.Error(err))
	}
}
