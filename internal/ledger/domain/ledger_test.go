package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeFullyPaid(t *testing.T) {
	l := Compute(d("100000"), []decimal.Decimal{d("100000")}, nil)

	assert.True(t, l.Balance.IsZero())
	assert.True(t, l.IsSettled())
	assert.False(t, l.Owes())
	assert.True(t, l.Overpaid.IsZero())
}

func TestComputeWithUnpaidSale(t *testing.T) {
	l := Compute(d("100000"), []decimal.Decimal{d("40000")}, []SaleLine{
		{Total: d("20000")},
		{Total: d("5000"), IsPaid: true},
	})

	assert.True(t, l.SalesDebt.Equal(d("20000")))
	assert.True(t, l.Balance.Equal(d("80000")), l.Balance.String())
	assert.True(t, l.Owes())
}

func TestComputeRefundsAndCredit(t *testing.T) {
	l := Compute(d("100000"), []decimal.Decimal{d("100000"), d("30000")}, nil)
	assert.True(t, l.Balance.Equal(d("-30000")))
	assert.True(t, l.Overpaid.Equal(d("30000")))
	assert.True(t, l.Refundable.Equal(d("30000")))

	l = Compute(d("100000"), []decimal.Decimal{d("100000"), d("30000"), d("-10000")}, nil)
	assert.True(t, l.Refunded.Equal(d("10000")))
	assert.True(t, l.Balance.Equal(d("-20000")))
	assert.True(t, l.Overpaid.Equal(d("30000")), "overpaid ignores refunds")
	assert.True(t, l.Refundable.Equal(d("20000")))
}

func TestIsSettledTolerance(t *testing.T) {
	assert.True(t, Compute(d("100"), []decimal.Decimal{d("99.99")}, nil).IsSettled())
	assert.True(t, Compute(d("100"), []decimal.Decimal{d("100.01")}, nil).IsSettled())
	assert.False(t, Compute(d("100"), []decimal.Decimal{d("99.98")}, nil).IsSettled())
	assert.False(t, Compute(d("100"), []decimal.Decimal{d("99.99")}, nil).Owes())
}
