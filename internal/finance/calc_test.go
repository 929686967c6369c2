package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAmounts(t *testing.T) {
	amounts := ComputeAmounts(
		PassengerCharges{GrossFare: 300, Discount: 50},
		[]TourCharge{{Name: "Cristo Redentor", Amount: 100}},
	)

	assert.Equal(t, 250.0, amounts.NetTripFare)
	assert.Equal(t, 100.0, amounts.TourAddonTotal)
	assert.Equal(t, 350.0, amounts.TotalOwed)
}

func TestComputeAmountsClampsNegativeNetFare(t *testing.T) {
	// desconto maior que o valor bruto: tarifa líquida vira zero
	amounts := ComputeAmounts(PassengerCharges{GrossFare: 100, Discount: 150}, nil)

	assert.Equal(t, 0.0, amounts.NetTripFare)
	assert.Equal(t, 0.0, amounts.TotalOwed)
}

func TestComputeAmountsGratuitousForcesZero(t *testing.T) {
	amounts := ComputeAmounts(
		PassengerCharges{GrossFare: 300, Discount: 50, Gratuitous: true},
		[]TourCharge{{Name: "Museu", Amount: 80}},
	)

	assert.Equal(t, Amounts{}, amounts)
}

func TestAggregatePayments(t *testing.T) {
	ag := AggregatePayments([]PaymentEntry{
		{Category: CategoryTrip, Amount: 150},
		{Category: CategoryTours, Amount: 40},
		{Category: CategoryTrip, Amount: 100},
	})

	assert.Equal(t, 250.0, ag.PaidTrip)
	assert.Equal(t, 40.0, ag.PaidTours)
	assert.Equal(t, 290.0, ag.CashTotal)
}

func TestAggregatePaymentsBothCountsOnEachSide(t *testing.T) {
	ag := AggregatePayments([]PaymentEntry{
		{Category: CategoryBoth, Amount: 100},
	})

	// "ambos" entra inteiro nos dois lados, mas o caixa conta uma vez só
	assert.Equal(t, 100.0, ag.PaidTrip)
	assert.Equal(t, 100.0, ag.PaidTours)
	assert.Equal(t, 100.0, ag.CashTotal)
}

func TestAggregatePaymentsMonotonic(t *testing.T) {
	entries := []PaymentEntry{{Category: CategoryTrip, Amount: 50}}
	before := AggregatePayments(entries)

	for _, cat := range []string{CategoryTrip, CategoryTours, CategoryBoth} {
		after := AggregatePayments(append(entries, PaymentEntry{Category: cat, Amount: 10}))
		assert.GreaterOrEqual(t, after.PaidTrip, before.PaidTrip, "category %s", cat)
		assert.GreaterOrEqual(t, after.PaidTours, before.PaidTours, "category %s", cat)
		assert.Greater(t, after.CashTotal, before.CashTotal, "category %s", cat)
	}
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryTrip))
	assert.True(t, ValidCategory(CategoryTours))
	assert.True(t, ValidCategory(CategoryBoth))
	assert.False(t, ValidCategory("pix"))
	assert.False(t, ValidCategory(""))
}
