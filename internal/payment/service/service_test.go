package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/events"
	"github.com/railzwaylabs/frontdesk/internal/payment/domain"
	"github.com/railzwaylabs/frontdesk/internal/payment/service"
	quickrentdomain "github.com/railzwaylabs/frontdesk/internal/quickrent/domain"
	roomdomain "github.com/railzwaylabs/frontdesk/internal/room/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == eventType })
}

func newService(t *testing.T, app *harness.App, pub events.Publisher) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	return service.New(service.Params{
		DB:              app.DB,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           app.Clock,
		Repo:            app.PaymentRepo,
		ReservationRepo: app.ReservationRepo,
		Ledger:          app.Ledger,
		Stays:           app.Stays,
		AuditSvc:        app.Audit,
		Events:          pub,
	})
}

func bookRoom(t *testing.T, app *harness.App) *quickrentdomain.Result {
	t.Helper()
	ctx := context.Background()
	room, err := app.Rooms.Create(ctx, roomdomain.CreateRequest{
		Code:        "201",
		Name:        "Double",
		Beds:        2,
		MaxCapacity: 2,
		BasePrice:   decimal.NewFromInt(80000),
	})
	require.NoError(t, err)

	result, err := app.QuickRent.Create(ctx, quickrentdomain.Request{
		RoomID:       room.ID,
		CheckInDate:  testsupport.Date(2026, time.March, 10),
		CheckOutDate: testsupport.Date(2026, time.March, 11),
	})
	require.NoError(t, err)
	return result
}

func TestRegisterPaymentPublishesEvent(t *testing.T) {
	app := harness.New(t)
	result := bookRoom(t, app)

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, eventOfType(events.EventPaymentRegistered)).Return(nil).Once()
	svc := newService(t, app, pub)

	p, err := svc.RegisterPayment(context.Background(), domain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        decimal.NewFromInt(30000),
		Method:        "cash",
		Note:          " front desk ",
	})
	require.NoError(t, err)
	assert.Equal(t, "front desk", p.Note)
	pub.AssertExpectations(t)
}

func TestPublishFailureDoesNotFailPayment(t *testing.T) {
	app := harness.New(t)
	result := bookRoom(t, app)

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	svc := newService(t, app, pub)

	_, err := svc.RegisterPayment(context.Background(), domain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        decimal.NewFromInt(80000),
		Method:        "card",
	})
	require.NoError(t, err)

	payments, err := svc.List(context.Background(), result.Reservation.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestRejectedRefundPublishesNothing(t *testing.T) {
	app := harness.New(t)
	result := bookRoom(t, app)

	pub := new(MockPublisher)
	svc := newService(t, app, pub)

	_, err := svc.RegisterRefund(context.Background(), domain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        decimal.NewFromInt(100),
		Method:        "cash",
	})
	require.ErrorIs(t, err, domain.ErrRefundWithOpenStay)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRefundAfterCheckoutPublishesRefundEvent(t *testing.T) {
	app := harness.New(t)
	result := bookRoom(t, app)
	ctx := clock.WithAsOf(context.Background(), time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC))

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, eventOfType(events.EventPaymentRegistered)).Return(nil)
	pub.On("Publish", mock.Anything, eventOfType(events.EventRefundRegistered)).Return(nil).Once()
	svc := newService(t, app, pub)

	_, err := svc.RegisterPayment(ctx, domain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        decimal.NewFromInt(100000),
		Method:        "card",
	})
	require.NoError(t, err)

	_, err = app.Stays.Close(ctx, nil, result.Stay.ID, time.Time{})
	require.NoError(t, err)

	refund, err := svc.RegisterRefund(ctx, domain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        decimal.NewFromInt(20000),
		Method:        "card",
	})
	require.NoError(t, err)
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(-20000)))
	pub.AssertExpectations(t)
}
