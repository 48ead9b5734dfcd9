package commands_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/fulfillment"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared mocks for the command handler tests. All handler tests live in this
// package, so the repository mocks are defined once instead of per file.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) OutstandingEventDemand(ctx context.Context, eventID kernel.UUID) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetCourse(ctx context.Context, id kernel.UUID) (*catalog.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Course), args.Error(1)
}

func (m *MockCatalogRepository) GetEvent(ctx context.Context, id kernel.UUID) (*catalog.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Event), args.Error(1)
}

func (m *MockCatalogRepository) GetEventForUpdate(ctx context.Context, id kernel.UUID) (*catalog.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Event), args.Error(1)
}

func (m *MockCatalogRepository) GetDigitalGood(ctx context.Context, id kernel.UUID) (*catalog.DigitalGood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DigitalGood), args.Error(1)
}

func (m *MockCatalogRepository) IncrementCourseEnrollment(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) DecrementCourseEnrollment(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) ReserveEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCatalogRepository) ReleaseEventCapacity(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCatalogRepository) IncrementDownloadCount(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) DecrementDownloadCount(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFulfillmentRepository struct{ mock.Mock }

func (m *MockFulfillmentRepository) AddEnrollment(ctx context.Context, record *fulfillment.Enrollment) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockFulfillmentRepository) GetEnrollmentByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Enrollment, error) {
	args := m.Called(ctx, orderLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Enrollment), args.Error(1)
}

func (m *MockFulfillmentRepository) UpdateEnrollment(ctx context.Context, record *fulfillment.Enrollment) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFulfillmentRepository) AddBooking(ctx context.Context, record *fulfillment.Booking) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockFulfillmentRepository) GetBookingByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.Booking, error) {
	args := m.Called(ctx, orderLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Booking), args.Error(1)
}

func (m *MockFulfillmentRepository) UpdateBooking(ctx context.Context, record *fulfillment.Booking) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFulfillmentRepository) AddDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockFulfillmentRepository) GetDownloadGrantByLine(ctx context.Context, orderLineID kernel.UUID) (*fulfillment.DownloadGrant, error) {
	args := m.Called(ctx, orderLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.DownloadGrant), args.Error(1)
}

func (m *MockFulfillmentRepository) UpdateDownloadGrant(ctx context.Context, record *fulfillment.DownloadGrant) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockUoW satisfies every unit of work subset the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) FulfillmentRepository() ports.FulfillmentRepository {
	args := m.Called()
	return args.Get(0).(ports.FulfillmentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockBuyerProvider struct{ mock.Mock }

func (m *MockBuyerProvider) BuyerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderChanged(ctx context.Context, notification ports.OrderNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// Test data helpers shared across the handler tests.

func testLine(t *testing.T, lineType order.LineType, quantity int, price string) *order.Line {
	t.Helper()
	line, err := order.NewLine(
		kernel.NewUUID(),
		kernel.NewUUID(),
		lineType,
		quantity,
		decimal.RequireFromString(price),
		"Test Product",
	)
	require.NoError(t, err)
	return line
}

func testOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"buyer@example.com",
		lines,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return ord
}

// testOrderInStatus walks a fresh order along legal transitions to the wanted
// status.
func testOrderInStatus(t *testing.T, status order.Status, lines ...*order.Line) *order.Order {
	t.Helper()
	ord := testOrder(t, lines...)
	now := time.Now().UTC()

	path := map[order.Status][]order.Status{
		order.Pending:        {},
		order.PaymentPending: {order.PaymentPending},
		order.Paid:           {order.PaymentPending, order.Paid},
		order.Processing:     {order.PaymentPending, order.Paid, order.Processing},
		order.Completed:      {order.PaymentPending, order.Paid, order.Processing, order.Completed},
	}

	steps, ok := path[status]
	require.True(t, ok, "unsupported status for testOrderInStatus: %s", status)
	for _, step := range steps {
		require.NoError(t, ord.TransitionTo(step, now))
	}
	return ord
}
