package usecase

import (
	"context"
	"testing"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type identityFixture struct {
	customers *mockCustomerRepo
	providers *mockProviderRepo
	mailer    *mockMailer
	service   IdentityService
}

func newIdentityFixture() *identityFixture {
	f := &identityFixture{
		customers: new(mockCustomerRepo),
		providers: new(mockProviderRepo),
		mailer:    new(mockMailer),
	}
	repo := &repository.Repository{Customer: f.customers, Provider: f.providers}
	f.service = NewIdentityService(repo, staticTokens{}, f.mailer, noCache{}, testConfig(), testLogger())
	return f
}

func TestRegisterCustomer_SendsCode(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()

	f.customers.On("FindByEmail", ctx, "ali@example.com").Return(nil, nil)
	f.customers.On("FindUnverifiedByEmail", ctx, "ali@example.com").Return(nil, nil)
	f.customers.On("CreateUnverified", ctx, mock.MatchedBy(func(u *entity.UnverifiedCustomer) bool {
		return u.Email == "ali@example.com" && len(u.VerificationCode) == 6 && u.PasswordHash != "secret1"
	})).Return(nil)
	f.mailer.On("SendVerificationCode", ctx, "ali@example.com", "Ali", mock.AnythingOfType("string")).Return(nil)

	err := f.service.RegisterCustomer(ctx, &request.RegisterRequest{Name: "Ali", Email: " Ali@Example.com ", Password: "secret1"})

	require.NoError(t, err)
	f.customers.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestRegisterCustomer_DuplicateEmailAnyCase(t *testing.T) {
	ctx := context.Background()

	t.Run("verified account", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindByEmail", ctx, "ali@example.com").Return(&entity.Customer{Email: "ali@example.com"}, nil)

		err := f.service.RegisterCustomer(ctx, &request.RegisterRequest{Name: "Ali", Email: "ALI@example.com", Password: "secret1"})

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		f.customers.AssertNotCalled(t, "CreateUnverified", mock.Anything, mock.Anything)
	})

	t.Run("pending registration", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindByEmail", ctx, "ali@example.com").Return(nil, nil)
		f.customers.On("FindUnverifiedByEmail", ctx, "ali@example.com").Return(&entity.UnverifiedCustomer{Email: "ali@example.com"}, nil)

		err := f.service.RegisterCustomer(ctx, &request.RegisterRequest{Name: "Ali", Email: "Ali@Example.COM", Password: "secret1"})

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		f.customers.AssertNotCalled(t, "CreateUnverified", mock.Anything, mock.Anything)
	})
}

func TestRegisterCustomer_MailFailureIsNotFatal(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()

	f.customers.On("FindByEmail", ctx, "ali@example.com").Return(nil, nil)
	f.customers.On("FindUnverifiedByEmail", ctx, "ali@example.com").Return(nil, nil)
	f.customers.On("CreateUnverified", ctx, mock.Anything).Return(nil)
	f.mailer.On("SendVerificationCode", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errBoom)

	err := f.service.RegisterCustomer(ctx, &request.RegisterRequest{Name: "Ali", Email: "ali@example.com", Password: "secret1"})

	assert.NoError(t, err)
}

func TestVerifyCustomer(t *testing.T) {
	ctx := context.Background()
	pending := &entity.UnverifiedCustomer{
		BaseSimple:       entity.BaseSimple{ID: uuid.New()},
		Name:             "Ali",
		Email:            "ali@example.com",
		PasswordHash:     "hash",
		VerificationCode: "123456",
	}

	t.Run("wrong code keeps the staging record", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindUnverifiedByEmail", ctx, "ali@example.com").Return(pending, nil)

		err := f.service.VerifyCustomer(ctx, &request.VerifyEmailRequest{Email: "ali@example.com", VerificationCode: "654321"})

		assert.ErrorIs(t, err, ErrInvalidCode)
		f.customers.AssertNotCalled(t, "Promote", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("correct code promotes", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindUnverifiedByEmail", ctx, "ali@example.com").Return(pending, nil)
		f.customers.On("Promote", ctx, pending.ID, mock.MatchedBy(func(c *entity.Customer) bool {
			return c.Email == pending.Email && c.PasswordHash == pending.PasswordHash && c.IsVerified
		})).Return(nil)

		err := f.service.VerifyCustomer(ctx, &request.VerifyEmailRequest{Email: " ALI@example.com ", VerificationCode: " 123456 "})

		require.NoError(t, err)
		f.customers.AssertExpectations(t)
	})

	t.Run("no pending registration", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindUnverifiedByEmail", ctx, "ghost@example.com").Return(nil, nil)

		err := f.service.VerifyCustomer(ctx, &request.VerifyEmailRequest{Email: "ghost@example.com", VerificationCode: "123456"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	customer := &entity.Customer{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Name: "Ali", Email: "ali@example.com", PasswordHash: hash}
	provider := &entity.Provider{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Name: "Shine", Email: "shine@example.com", PasswordHash: hash}

	t.Run("customer", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindByEmail", ctx, "ali@example.com").Return(customer, nil)

		resp, err := f.service.Login(ctx, &request.LoginRequest{Email: "Ali@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleCustomer, resp.Role)
		assert.Equal(t, "customer:"+customer.ID.String(), resp.Token)
		assert.Equal(t, customer.ID.String(), resp.Account.ID)
	})

	t.Run("provider", func(t *testing.T) {
		f := newIdentityFixture()
		f.providers.On("FindByEmail", ctx, "shine@example.com").Return(provider, nil)

		resp, err := f.service.Login(ctx, &request.LoginRequest{Email: "shine@example.com", Password: "secret1", Role: "provider"})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleProvider, resp.Role)
	})

	t.Run("customer email on provider login", func(t *testing.T) {
		f := newIdentityFixture()
		f.providers.On("FindByEmail", ctx, "ali@example.com").Return(nil, nil)

		_, err := f.service.Login(ctx, &request.LoginRequest{Email: "ali@example.com", Password: "secret1", Role: "provider"})

		assert.ErrorIs(t, err, ErrNotFound)
		f.customers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newIdentityFixture()
		f.customers.On("FindByEmail", ctx, "ali@example.com").Return(customer, nil)

		_, err := f.service.Login(ctx, &request.LoginRequest{Email: "ali@example.com", Password: "nope123"})

		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}

func TestRegisterProvider_GeneratesReferralCode(t *testing.T) {
	f := newIdentityFixture()
	ctx := context.Background()

	f.providers.On("FindByEmail", ctx, "shine@example.com").Return(nil, nil)
	f.providers.On("FindUnverifiedByEmail", ctx, "shine@example.com").Return(nil, nil)
	f.providers.On("ReferralCodeTaken", ctx, mock.AnythingOfType("string")).Return(false, nil)
	f.providers.On("CreateUnverified", ctx, mock.MatchedBy(func(p *entity.UnverifiedProvider) bool {
		return p.ReferralCode != "" && p.Location.Longitude == 74.3 && p.Location.Latitude == 31.5
	})).Return(nil)
	f.mailer.On("SendVerificationCode", ctx, "shine@example.com", "Shine", mock.Anything).Return(nil)

	err := f.service.RegisterProvider(ctx, &request.RegisterProviderRequest{
		Name:          "Shine",
		Email:         "shine@example.com",
		Password:      "secret1",
		ContactNumber: "03001234567",
		City:          "Lahore",
		Address:       "Main Boulevard",
		Location:      request.LocationRequest{Longitude: 74.3, Latitude: 31.5},
	})

	require.NoError(t, err)
	f.providers.AssertExpectations(t)
}
