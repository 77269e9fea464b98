package usecase

import (
	"context"
	"testing"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeFixture(employees ...*entity.Employee) (EmployeeService, *memEmployees, *mockProviderRepo) {
	mem := newMemEmployees(employees...)
	providers := new(mockProviderRepo)
	repo := &repository.Repository{Employee: mem, Provider: providers}
	return NewEmployeeService(repo, staticTokens{}, testConfig(), testLogger()), mem, providers
}

func TestEmployeeLogin(t *testing.T) {
	ctx := context.Background()
	first := &entity.Employee{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Ali Khan", NormalizedName: "ali khan", ReferralCode: "AAA111"}
	namesake := &entity.Employee{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Ali Khan", NormalizedName: "ali khan", ReferralCode: "BBB222"}
	svc, _, _ := newEmployeeFixture(first, namesake)

	t.Run("picks the namesake whose code matches", func(t *testing.T) {
		resp, err := svc.Login(ctx, &request.EmployeeLoginRequest{Name: "  ALI KHAN ", ReferralCode: "BBB222"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleEmployee, resp.Role)
		assert.Equal(t, namesake.ID.String(), resp.Account.ID)
	})

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.EmployeeLoginRequest{Name: "Ali Khan", ReferralCode: "ZZZ999"})
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.EmployeeLoginRequest{Name: "Nobody", ReferralCode: "AAA111"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEmployeeApplyAndDecide(t *testing.T) {
	ctx := context.Background()
	owner := &entity.Provider{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, ReferralCode: "SHINE1"}
	svc, mem, providers := newEmployeeFixture()

	providers.On("FindByReferralCode", ctx, "SHINE1").Return(owner, nil)
	providers.On("FindByReferralCode", ctx, "NOPE").Return(nil, nil)
	providers.On("FindByID", ctx, owner.ID).Return(owner, nil)

	_, err := svc.Apply(ctx, &request.EmployeeApplyRequest{Name: "Ali", CNIC: "3520212345671", ReferralCode: "NOPE"})
	assert.ErrorIs(t, err, ErrNotFound)

	app, err := svc.Apply(ctx, &request.EmployeeApplyRequest{Name: "Ali", CNIC: "3520212345671", ReferralCode: "SHINE1"})
	require.NoError(t, err)

	pending, err := svc.ListApplications(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	err = svc.Decide(ctx, uuid.New(), &request.DecideApplicationRequest{ApplicationID: app.ID, Action: ActionAccept})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, mem.applications, 1)

	err = svc.Decide(ctx, owner.ID, &request.DecideApplicationRequest{ApplicationID: app.ID, Action: "maybe"})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Decide(ctx, owner.ID, &request.DecideApplicationRequest{ApplicationID: app.ID, Action: "Accept"})
	require.NoError(t, err)
	assert.Empty(t, mem.applications)

	staff, err := svc.ListByProvider(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, staff, 1)

	// the hired employee logs in with the provider's code
	resp, err := svc.Login(ctx, &request.EmployeeLoginRequest{Name: "ali", ReferralCode: "SHINE1"})
	require.NoError(t, err)
	assert.Equal(t, staff[0].ID, resp.Account.ID)
}

func TestEmployeeDecide_Reject(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()
	svc, mem, _ := newEmployeeFixture()

	app := &entity.EmployeeApplication{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Ali", ProviderID: providerID}
	mem.applications[app.ID] = app

	err := svc.Decide(ctx, providerID, &request.DecideApplicationRequest{ApplicationID: app.ID.String(), Action: ActionReject})

	require.NoError(t, err)
	assert.Empty(t, mem.applications)
	assert.Empty(t, mem.employees)
}
