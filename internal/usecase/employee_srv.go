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
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type EmployeeService interface {
	Apply(ctx context.Context, req *request.EmployeeApplyRequest) (*response.ApplicationResponse, error)
	ListApplications(ctx context.Context, providerID uuid.UUID) ([]response.ApplicationResponse, error)
	Decide(ctx context.Context, providerID uuid.UUID, req *request.DecideApplicationRequest) error
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]response.EmployeeResponse, error)

	// Login matches the normalized name, then the referral code
	Login(ctx context.Context, req *request.EmployeeLoginRequest) (*response.AuthResponse, error)
	GetProfile(ctx context.Context, employeeID uuid.UUID) (*response.EmployeeResponse, error)
	UpdateProfile(ctx context.Context, employeeID uuid.UUID, req *request.UpdateEmployeeRequest) (*response.EmployeeResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	tokens TokenIssuer
	config *utils.Config
	log    *zap.Logger
}

func NewEmployeeService(repo *repository.Repository, tokens TokenIssuer, config *utils.Config, log *zap.Logger) EmployeeService {
	return &employeeService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log.With(zap.String("service", "employee")),
	}
}

func (s *employeeService) Apply(ctx context.Context, req *request.EmployeeApplyRequest) (*response.ApplicationResponse, error) {
	if err := validateRequest(req, "employee apply", s.log); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.ReferralCode)
	provider, err := s.repo.Provider.FindByReferralCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("employee apply: %w", err)
	}
	if provider == nil {
		return nil, newError(ErrNotFound, "Invalid referral code")
	}

	app := &entity.EmployeeApplication{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:         strings.TrimSpace(req.Name),
		CNIC:         req.CNIC,
		ReferralCode: code,
		ProviderID:   provider.ID,
		Status:       entity.ApplicationStatusPending,
	}

	if err := s.repo.Employee.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("employee apply: %w", err)
	}

	s.log.Info("Employee application created",
		zap.String("application_id", app.ID.String()),
		zap.String("provider_id", provider.ID.String()),
	)

	resp := response.ApplicationToResponse(app)
	return &resp, nil
}

func (s *employeeService) ListApplications(ctx context.Context, providerID uuid.UUID) ([]response.ApplicationResponse, error) {
	apps, err := s.repo.Employee.ListApplicationsByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	result := make([]response.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		result = append(result, response.ApplicationToResponse(app))
	}
	return result, nil
}

func (s *employeeService) Decide(ctx context.Context, providerID uuid.UUID, req *request.DecideApplicationRequest) error {
	if err := validateRequest(req, "decide application", s.log); err != nil {
		return err
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != ActionAccept && action != ActionReject {
		return newError(ErrValidation, "Invalid action %q", req.Action)
	}

	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return newError(ErrValidation, "Invalid application ID")
	}

	app, err := s.repo.Employee.FindApplicationByID(ctx, appID)
	if err != nil {
		return fmt.Errorf("decide application: %w", err)
	}
	if app == nil {
		return newError(ErrNotFound, "Employee application not found")
	}
	if app.ProviderID != providerID {
		s.log.Warn("Provider tried to decide a foreign application",
			zap.String("application_id", app.ID.String()),
			zap.String("provider_id", providerID.String()),
		)
		return newError(ErrForbidden, "Application belongs to another provider")
	}

	if action == ActionReject {
		if err := s.repo.Employee.DeleteApplication(ctx, app.ID); err != nil {
			return fmt.Errorf("reject application: %w", err)
		}
		s.log.Info("Employee application rejected", zap.String("application_id", app.ID.String()))
		return nil
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("accept application: %w", err)
	}
	if provider == nil {
		return newError(ErrNotFound, "Provider not found")
	}

	employee := &entity.Employee{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:           app.Name,
		NormalizedName: utils.NormalizeName(app.Name),
		CNIC:           app.CNIC,
		ProviderID:     provider.ID,
		ReferralCode:   provider.ReferralCode,
	}

	if err := s.repo.Employee.ApproveApplication(ctx, app.ID, employee); err != nil {
		return fmt.Errorf("accept application: %w", err)
	}

	s.log.Info("Employee application accepted",
		zap.String("application_id", app.ID.String()),
		zap.String("employee_id", employee.ID.String()),
	)
	return nil
}

func (s *employeeService) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]response.EmployeeResponse, error) {
	employees, err := s.repo.Employee.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	result := make([]response.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, response.EmployeeToResponse(e))
	}
	return result, nil
}

func (s *employeeService) Login(ctx context.Context, req *request.EmployeeLoginRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req, "employee login", s.log); err != nil {
		return nil, err
	}

	candidates, err := s.repo.Employee.FindByNormalizedName(ctx, utils.NormalizeName(req.Name))
	if err != nil {
		return nil, fmt.Errorf("employee login: %w", err)
	}
	if len(candidates) == 0 {
		return nil, newError(ErrNotFound, "Employee not found")
	}

	code := []byte(strings.TrimSpace(req.ReferralCode))
	for _, employee := range candidates {
		if subtle.ConstantTimeCompare([]byte(employee.ReferralCode), code) == 1 {
			return issueToken(s.tokens, s.config.JWT.TTL(), employee, s.log)
		}
	}

	s.log.Warn("Referral code mismatch on employee login", zap.Int("candidates", len(candidates)))
	return nil, newError(ErrInvalidCredential, "Invalid referral code")
}

func (s *employeeService) GetProfile(ctx context.Context, employeeID uuid.UUID) (*response.EmployeeResponse, error) {
	employee, err := s.repo.Employee.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if employee == nil {
		return nil, newError(ErrNotFound, "Employee not found")
	}

	resp := response.EmployeeToResponse(employee)
	return &resp, nil
}

func (s *employeeService) UpdateProfile(ctx context.Context, employeeID uuid.UUID, req *request.UpdateEmployeeRequest) (*response.EmployeeResponse, error) {
	if err := validateRequest(req, "update employee", s.log); err != nil {
		return nil, err
	}

	employee, err := s.repo.Employee.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if employee == nil {
		return nil, newError(ErrNotFound, "Employee not found")
	}

	employee.Name = strings.TrimSpace(req.Name)
	employee.NormalizedName = utils.NormalizeName(req.Name)
	employee.CNIC = req.CNIC

	if err := s.repo.Employee.UpdateProfile(ctx, employee); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	resp := response.EmployeeToResponse(employee)
	return &resp, nil
}
