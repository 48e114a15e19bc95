package integration

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/railzwaylabs/frontdesk/internal/audit/domain"
	paymentdomain "github.com/railzwaylabs/frontdesk/internal/payment/domain"
	reservationdomain "github.com/railzwaylabs/frontdesk/internal/reservation/domain"
	saledomain "github.com/railzwaylabs/frontdesk/internal/sale/domain"
	"github.com/railzwaylabs/frontdesk/internal/testsupport/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideTotal(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 12, nil, 60000)
	resID := result.Reservation.ID

	_, err := app.Reservations.OverrideTotal(at(10, 12), reservationdomain.OverrideTotalRequest{
		ReservationID: resID,
		TotalAmount:   money(150000),
	})
	require.ErrorIs(t, err, reservationdomain.ErrMissingReason)

	_, err = app.Reservations.OverrideTotal(at(10, 12), reservationdomain.OverrideTotalRequest{
		ReservationID: resID,
		TotalAmount:   money(50000),
		Reason:        "corporate rate",
	})
	require.ErrorIs(t, err, reservationdomain.ErrTotalBelowPaid)

	_, err = app.Reservations.OverrideTotal(at(10, 12), reservationdomain.OverrideTotalRequest{
		ReservationID: resID,
		TotalAmount:   money(0),
		Reason:        "corporate rate",
	})
	require.ErrorIs(t, err, reservationdomain.ErrInvalidTotal)

	_, err = app.Reservations.OverrideTotal(at(10, 12), reservationdomain.OverrideTotalRequest{
		ReservationID: snowflake.ID(5),
		TotalAmount:   money(150000),
		Reason:        "corporate rate",
	})
	require.ErrorIs(t, err, reservationdomain.ErrNotFound)

	updated, err := app.Reservations.OverrideTotal(at(10, 12), reservationdomain.OverrideTotalRequest{
		ReservationID: resID,
		TotalAmount:   money(150000),
		Reason:        " corporate rate ",
	})
	require.NoError(t, err)
	requireMoney(t, 150000, updated.TotalAmount)
	requireMoney(t, 90000, updated.BalanceDue)
	assert.Equal(t, reservationdomain.PaymentStatusPartial, updated.PaymentStatus)

	logs, err := app.AuditRepo.List(at(10, 13), app.DB, auditdomain.ListFilter{
		StartDate: march(1),
		EndDate:   march(31),
		Actions:   []string{"reservation.total_override"},
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].TargetID)
	assert.Equal(t, resID.String(), *logs[0].TargetID)
	assert.Equal(t, "corporate rate", logs[0].Metadata["reason"])
}

func TestPaymentValidation(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, nil, 0)
	resID := result.Reservation.ID

	_, err := app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{ReservationID: resID, Amount: money(0), Method: "cash"})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	_, err = app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{ReservationID: resID, Amount: money(10), Method: "cheque"})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidMethod)

	_, err = app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{ReservationID: snowflake.ID(3), Amount: money(10), Method: "cash"})
	require.ErrorIs(t, err, paymentdomain.ErrReservationNotFound)

	p, err := app.Payments.RegisterPayment(at(10, 12), paymentdomain.RegisterRequest{ReservationID: resID, Amount: money(40000), Method: " CARD "})
	require.NoError(t, err)
	assert.Equal(t, "card", p.Method)
	assert.Equal(t, paymentdomain.KindPayment, p.Kind)

	res, err := app.Reservations.Get(at(10, 12), resID)
	require.NoError(t, err)
	requireMoney(t, 60000, res.BalanceDue)
	assert.Equal(t, reservationdomain.PaymentStatusPartial, res.PaymentStatus)
}

func TestSalesFeedTheLedger(t *testing.T) {
	app := harness.New(t)
	room := newRoom(t, app, 2, 100000)
	result := walkIn(t, app, room, 11, nil, 100000)
	resID := result.Reservation.ID

	cases := []struct {
		name string
		req  saledomain.RegisterRequest
		want error
	}{
		{"missing description", saledomain.RegisterRequest{ReservationID: resID, Quantity: 1, UnitPrice: money(10)}, saledomain.ErrInvalidDescription},
		{"zero quantity", saledomain.RegisterRequest{ReservationID: resID, Description: "Water", UnitPrice: money(10)}, saledomain.ErrInvalidQuantity},
		{"zero price", saledomain.RegisterRequest{ReservationID: resID, Description: "Water", Quantity: 1}, saledomain.ErrInvalidUnitPrice},
		{"unknown reservation", saledomain.RegisterRequest{ReservationID: snowflake.ID(8), Description: "Water", Quantity: 1, UnitPrice: money(10)}, saledomain.ErrReservationNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.Sales.Register(at(10, 12), tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	sale, err := app.Sales.Register(at(10, 20), saledomain.RegisterRequest{
		ReservationID: resID,
		Description:   "Breakfast",
		Quantity:      3,
		UnitPrice:     money(12500),
	})
	require.NoError(t, err)
	requireMoney(t, 37500, sale.Total)

	l, err := app.Ledger.GetLedger(at(10, 20), resID)
	require.NoError(t, err)
	requireMoney(t, 37500, l.Balance)
	requireMoney(t, 37500, l.SalesDebt)

	res, err := app.Reservations.Get(at(10, 20), resID)
	require.NoError(t, err)
	requireMoney(t, 37500, res.BalanceDue)
	assert.Equal(t, reservationdomain.PaymentStatusPartial, res.PaymentStatus)

	_, err = app.Sales.MarkPaid(at(10, 21), sale.ID)
	require.NoError(t, err)
	_, err = app.Sales.MarkPaid(at(10, 21), snowflake.ID(77))
	require.ErrorIs(t, err, saledomain.ErrNotFound)

	l, err = app.Ledger.GetLedger(at(10, 21), resID)
	require.NoError(t, err)
	requireMoney(t, 0, l.Balance)
	assert.True(t, l.IsSettled())

	sales, err := app.Sales.List(at(10, 21), resID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.True(t, sales[0].IsPaid)
}
