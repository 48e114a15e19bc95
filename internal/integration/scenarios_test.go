package integration

import (
	"testing"

	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	releasedomain "github.com/railzwaylabs/frontdesk/internal/release/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioA_RatedTotalFromBasePrice(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)

	result := walkIn(t, app, room, 12, nil, 0)

	requireMoney(t, 200000, result.Reservation.TotalAmount)
	requireMoney(t, 100000, result.ReservationRoom.PricePerNight)
	assert.Equal(t, 2, result.ReservationRoom.Nights)
	assert.Equal(t, 1, result.Reservation.GuestCount)
}

func TestScenarioB_ManualTotalWins(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)

	result := walkIn(t, app, room, 12, moneyPtr(150000), 0)

	requireMoney(t, 150000, result.Reservation.TotalAmount)
	l, err := app.Ledger.GetLedger(at(10, 11), result.Reservation.ID)
	require.NoError(t, err)
	requireMoney(t, 150000, l.Balance)
}

func TestScenarioC_PaidReservationReleasesWithoutSettlement(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, moneyPtr(100000), 0)

	_, err := app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{
		ReservationID: result.Reservation.ID,
		Amount:        money(100000),
		Method:        "card",
	})
	require.NoError(t, err)

	l, err := app.Ledger.GetLedger(at(10, 12), result.Reservation.ID)
	require.NoError(t, err)
	requireMoney(t, 0, l.Balance)

	released, err := app.Release.Release(at(11, 9), releasedomain.Request{RoomID: room.ID})
	require.NoError(t, err)
	assert.True(t, released.Released)
	assert.Nil(t, released.Settlement)
	assert.Equal(t, reservationdomain.StatusReleased, released.Reservation.Status)
	assert.Equal(t, reservationdomain.PaymentStatusPaid, released.Reservation.PaymentStatus)
}

func TestScenarioD_ReleaseSettlesOutstandingBalance(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, moneyPtr(100000), 40000)
	resID := result.Reservation.ID

	_, err := app.Sales.Register(at(10, 20), saledomain.RegisterRequest{
		ReservationID: resID,
		Description:   "Minibar",
		Quantity:      2,
		UnitPrice:     money(10000),
	})
	require.NoError(t, err)

	l, err := app.Ledger.GetLedger(at(10, 21), resID)
	require.NoError(t, err)
	requireMoney(t, 80000, l.Balance)
	requireMoney(t, 20000, l.SalesDebt)

	_, err = app.Release.Release(at(11, 9), releasedomain.Request{RoomID: room.ID})
	require.ErrorIs(t, err, releasedomain.ErrPaymentMethodRequired)

	stay, err := app.Stays.FindOpenByRoom(at(11, 9), nil, room.ID)
	require.NoError(t, err)
	require.NotNil(t, stay, "a rejected release leaves the stay open")

	released, err := app.Release.Release(at(11, 9), releasedomain.Request{RoomID: room.ID, PaymentMethod: "cash"})
	require.NoError(t, err)
	require.True(t, released.Released)
	require.NotNil(t, released.Settlement)
	requireMoney(t, 80000, released.Settlement.Amount)
	assert.Equal(t, paymentdomain.KindSettlement, released.Settlement.Kind)
	requireMoney(t, 0, released.Ledger.Balance)

	require.NotNil(t, released.History)
	requireMoney(t, 80000, released.History.SettlementAmount)
	assert.Equal(t, "cash", released.History.SettlementMethod)
}

func TestScenarioE_RefundRejectedWhileStayOpen(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, moneyPtr(100000), 100000)
	resID := result.Reservation.ID

	_, err := app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{
		ReservationID: resID,
		Amount:        money(30000),
		Method:        "cash",
	})
	require.NoError(t, err)

	l, err := app.Ledger.GetLedger(at(10, 12), resID)
	require.NoError(t, err)
	requireMoney(t, -30000, l.Balance)

	_, err = app.Payments.RegisterRefund(at(10, 13), paymentdomain.RegisterRequest{
		ReservationID: resID,
		Amount:        money(10000),
		Method:        "cash",
	})
	require.ErrorIs(t, err, paymentdomain.ErrRefundWithOpenStay)
}

func TestScenarioF_RefundUpToCreditAfterRelease(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, moneyPtr(100000), 100000)
	resID := result.Reservation.ID

	_, err := app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{
		ReservationID: resID,
		Amount:        money(30000),
		Method:        "cash",
	})
	require.NoError(t, err)

	released, err := app.Release.Release(at(11, 9), releasedomain.Request{RoomID: room.ID})
	require.NoError(t, err)
	require.True(t, released.Released)
	assert.Nil(t, released.Settlement)
	requireMoney(t, 30000, released.Ledger.Refundable)

	_, err = app.Payments.RegisterRefund(at(11, 10), paymentdomain.RegisterRequest{
		ReservationID: resID,
		Amount:        money(31000),
		Method:        "cash",
	})
	require.ErrorIs(t, err, paymentdomain.ErrRefundExceedsCredit)

	refund, err := app.Payments.RegisterRefund(at(11, 10), paymentdomain.RegisterRequest{
		ReservationID: resID,
		Amount:        money(30000),
		Method:        "cash",
	})
	require.NoError(t, err)
	requireMoney(t, -30000, refund.Amount)
	assert.Equal(t, paymentdomain.KindRefund, refund.Kind)

	l, err := app.Ledger.GetLedger(at(11, 11), resID)
	require.NoError(t, err)
	requireMoney(t, 0, l.Balance)
	requireMoney(t, 30000, l.Refunded)

	payments, err := app.Payments.List(at(11, 11), resID)
	require.NoError(t, err)
	assert.Len(t, payments, 3, "deposit, extra payment and refund stay as separate entries")
}
