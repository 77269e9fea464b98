package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryMinutes: 60},
		OTP: utils.OTPConfig{Length: 6},
	}
}

// memBookings keeps bookings in memory with the same versioning as Postgres
type memBookings struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking

	// beforeUpdate runs inside UpdateIfVersion, used to simulate a racing writer
	beforeUpdate func()
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: map[uuid.UUID]entity.Booking{}}
}

func (m *memBookings) Create(_ context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBookings) List(_ context.Context, f entity.BookingFilter) ([]*entity.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.BookingDetail
	for _, b := range m.bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
			continue
		}
		if f.ProviderID != nil && !b.AcceptedBy(*f.ProviderID) {
			continue
		}
		if f.EmployeeID != nil && !b.AssignedTo(*f.EmployeeID) {
			continue
		}
		out = append(out, &entity.BookingDetail{Booking: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memBookings) UpdateIfVersion(_ context.Context, b *entity.Booking, expected int) (bool, error) {
	if m.beforeUpdate != nil {
		hook := m.beforeUpdate
		m.beforeUpdate = nil
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.bookings[b.ID]
	if !ok || stored.Version != expected {
		return false, nil
	}
	b.Version = expected + 1
	m.bookings[b.ID] = *b
	return true, nil
}

// memEmployees holds employees and applications
type memEmployees struct {
	employees    map[uuid.UUID]*entity.Employee
	applications map[uuid.UUID]*entity.EmployeeApplication
}

func newMemEmployees(employees ...*entity.Employee) *memEmployees {
	m := &memEmployees{
		employees:    map[uuid.UUID]*entity.Employee{},
		applications: map[uuid.UUID]*entity.EmployeeApplication{},
	}
	for _, e := range employees {
		m.employees[e.ID] = e
	}
	return m
}

func (m *memEmployees) FindByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (m *memEmployees) FindByNormalizedName(_ context.Context, name string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range m.employees {
		if e.NormalizedName == name {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmployees) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range m.employees {
		if e.ProviderID == providerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmployees) UpdateProfile(_ context.Context, e *entity.Employee) error {
	m.employees[e.ID] = e
	return nil
}

func (m *memEmployees) CreateApplication(_ context.Context, app *entity.EmployeeApplication) error {
	m.applications[app.ID] = app
	return nil
}

func (m *memEmployees) FindApplicationByID(_ context.Context, id uuid.UUID) (*entity.EmployeeApplication, error) {
	return m.applications[id], nil
}

func (m *memEmployees) ListApplicationsByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.EmployeeApplication, error) {
	var out []*entity.EmployeeApplication
	for _, app := range m.applications {
		if app.ProviderID == providerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *memEmployees) ApproveApplication(_ context.Context, applicationID uuid.UUID, e *entity.Employee) error {
	delete(m.applications, applicationID)
	m.employees[e.ID] = e
	return nil
}

func (m *memEmployees) DeleteApplication(_ context.Context, id uuid.UUID) error {
	delete(m.applications, id)
	return nil
}

// memNotifications fails the writes listed in failOn by type
type memNotifications struct {
	items  []*entity.Notification
	failOn map[entity.NotificationType]bool
}

func newMemNotifications() *memNotifications {
	return &memNotifications{failOn: map[entity.NotificationType]bool{}}
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	if m.failOn[n.Type] {
		return errBoom
	}
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for _, n := range m.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNotifications) ListByRecipient(_ context.Context, recipientID uuid.UUID) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].RecipientID == recipientID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id uuid.UUID) error {
	for _, n := range m.items {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) CreateUnverified(ctx context.Context, c *entity.UnverifiedCustomer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedCustomer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*entity.UnverifiedCustomer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) Promote(ctx context.Context, unverifiedID uuid.UUID, c *entity.Customer) error {
	return m.Called(ctx, unverifiedID, c).Error(0)
}

func (m *mockCustomerRepo) DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*entity.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) FindByReferralCode(ctx context.Context, code string) (*entity.Provider, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*entity.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) ListLocations(ctx context.Context) ([]entity.ProviderLocation, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]entity.ProviderLocation)
	return l, args.Error(1)
}

func (m *mockProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProviderRepo) CreateUnverified(ctx context.Context, p *entity.UnverifiedProvider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProviderRepo) FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedProvider, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*entity.UnverifiedProvider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) ReferralCodeTaken(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockProviderRepo) Promote(ctx context.Context, unverifiedID uuid.UUID, p *entity.Provider) error {
	return m.Called(ctx, unverifiedID, p).Error(0)
}

func (m *mockProviderRepo) DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockComplaintRepo struct {
	mock.Mock
}

func (m *mockComplaintRepo) Create(ctx context.Context, c *entity.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockComplaintRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintRepo) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*entity.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ComplaintStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	return m.Called(ctx, to, name, code).Error(0)
}

// staticTokens issues a token naming the subject, enough to assert on
type staticTokens struct{}

func (staticTokens) Issue(id uuid.UUID, role entity.Role) (string, error) {
	return string(role) + ":" + id.String(), nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []entity.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBooking(_ context.Context, evt entity.BookingEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// noCache always misses
type noCache struct{}

func (noCache) GetLocations(context.Context) ([]entity.ProviderLocation, error) { return nil, nil }
func (noCache) SetLocations(context.Context, []entity.ProviderLocation) error   { return nil }
func (noCache) InvalidateLocations(context.Context) error                       { return nil }
func (noCache) Close() error                                                    { return nil }

type lifecycleFixture struct {
	bookings      *memBookings
	employees     *memEmployees
	notifications *memNotifications
	publisher     *recordingPublisher
	repo          *repository.Repository
	lifecycle     LifecycleService
	booking       BookingService
	notify        NotificationService

	customer entity.Principal
	p1, p2   entity.Principal
	e1, e2   *entity.Employee
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		bookings:      newMemBookings(),
		notifications: newMemNotifications(),
		publisher:     &recordingPublisher{},
		customer:      entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer},
		p1:            entity.Principal{ID: uuid.New(), Role: entity.RoleProvider},
		p2:            entity.Principal{ID: uuid.New(), Role: entity.RoleProvider},
	}

	f.e1 = &entity.Employee{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Ali", NormalizedName: "ali", ProviderID: f.p1.ID, ReferralCode: "P1CODE"}
	f.e2 = &entity.Employee{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Sara", NormalizedName: "sara", ProviderID: f.p2.ID, ReferralCode: "P2CODE"}
	f.employees = newMemEmployees(f.e1, f.e2)

	f.repo = &repository.Repository{
		Booking:      f.bookings,
		Employee:     f.employees,
		Notification: f.notifications,
	}

	log := testLogger()
	f.notify = NewNotificationService(f.repo, log)
	f.lifecycle = NewLifecycleService(f.repo, f.notify, f.publisher, nil, log)
	f.booking = NewBookingService(f.repo, f.lifecycle, log)
	return f
}

func (f *lifecycleFixture) seedPending() entity.Booking {
	now := time.Now()
	b := entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CustomerID:   f.customer.ID,
		Service:      "Full Wash",
		Price:        "1500",
		Address:      "Street 1",
		Vehicle:      "Car",
		VehicleModel: "Civic",
		Status:       entity.BookingStatusPending,
		Version:      1,
	}
	f.bookings.bookings[b.ID] = b
	return b
}

func (f *lifecycleFixture) stored(id uuid.UUID) entity.Booking {
	return f.bookings.bookings[id]
}

func (f *lifecycleFixture) employeePrincipal(e *entity.Employee) entity.Principal {
	return entity.Principal{ID: e.ID, Role: entity.RoleEmployee}
}
