package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name       string
		amounts    Amounts
		aggregates Aggregates
		want       Classification
	}{
		{
			name:       "fully paid",
			amounts:    Amounts{NetTripFare: 250, TourAddonTotal: 100},
			aggregates: Aggregates{PaidTrip: 250, PaidTours: 100},
			want:       Classification{Status: StatusFullyPaid, TripPaid: true, ToursPaid: true},
		},
		{
			name:       "trip paid only",
			amounts:    Amounts{NetTripFare: 250, TourAddonTotal: 100},
			aggregates: Aggregates{PaidTrip: 250},
			want:       Classification{Status: StatusTripPaid, TripPaid: true},
		},
		{
			name:       "tours paid only",
			amounts:    Amounts{NetTripFare: 250, TourAddonTotal: 100},
			aggregates: Aggregates{PaidTours: 100},
			want:       Classification{Status: StatusToursPaid, ToursPaid: true},
		},
		{
			name:    "nothing paid",
			amounts: Amounts{NetTripFare: 250, TourAddonTotal: 100},
			want:    Classification{Status: StatusPending},
		},
		{
			name:    "no tours means tours side satisfied",
			amounts: Amounts{NetTripFare: 250},
			want:    Classification{Status: StatusToursPaid, ToursPaid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.amounts, tt.aggregates, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyThresholdBoundary(t *testing.T) {
	amounts := Amounts{NetTripFare: 250}

	// pagamento exato satisfaz (limite inclusivo)
	exact := Classify(amounts, Aggregates{PaidTrip: 250}, false)
	assert.True(t, exact.TripPaid)

	// dentro da tolerância de um centavo ainda satisfaz
	within := Classify(amounts, Aggregates{PaidTrip: 249.99}, false)
	assert.True(t, within.TripPaid)

	// dois centavos abaixo já não satisfaz
	outside := Classify(amounts, Aggregates{PaidTrip: 249.98}, false)
	assert.False(t, outside.TripPaid)
	assert.Equal(t, StatusToursPaid, outside.Status)
}

func TestClassifyGratuitousOverridesEverything(t *testing.T) {
	got := Classify(Amounts{NetTripFare: 500, TourAddonTotal: 200}, Aggregates{}, true)

	assert.Equal(t, StatusFullyPaid, got.Status)
	assert.True(t, got.TripPaid)
	assert.True(t, got.ToursPaid)
}

func TestClassifyIdempotent(t *testing.T) {
	amounts := ComputeAmounts(PassengerCharges{GrossFare: 300, Discount: 50}, []TourCharge{{Amount: 100}})
	ag := AggregatePayments([]PaymentEntry{{Category: CategoryTrip, Amount: 250}})

	first := Classify(amounts, ag, false)
	second := Classify(amounts, ag, false)
	assert.Equal(t, first, second)
}

// Cenários de ponta a ponta do passageiro de 300−50 com um passeio de 100.
func TestClassifyScenarios(t *testing.T) {
	amounts := ComputeAmounts(
		PassengerCharges{GrossFare: 300, Discount: 50},
		[]TourCharge{{Name: "Passeio", Amount: 100}},
	)
	assert.Equal(t, 350.0, amounts.TotalOwed)

	// A: sem pagamentos
	payments := []PaymentEntry{}
	ag := AggregatePayments(payments)
	assert.Equal(t, StatusPending, Classify(amounts, ag, false).Status)
	assert.Equal(t, 350.0, Outstanding(amounts, ag))

	// B: paga a viagem (250, categoria viagem)
	payments = append(payments, PaymentEntry{Category: CategoryTrip, Amount: 250})
	ag = AggregatePayments(payments)
	assert.Equal(t, StatusTripPaid, Classify(amounts, ag, false).Status)
	assert.Equal(t, 100.0, Outstanding(amounts, ag))

	// C: paga 100 em "ambos" e quita os dois lados
	payments = append(payments, PaymentEntry{Category: CategoryBoth, Amount: 100})
	ag = AggregatePayments(payments)
	assert.Equal(t, 350.0, ag.PaidTrip)
	assert.Equal(t, 100.0, ag.PaidTours)
	assert.Equal(t, StatusFullyPaid, Classify(amounts, ag, false).Status)
	assert.Equal(t, 0.0, Outstanding(amounts, ag))

	// D: remover o "ambos" volta para Viagem Paga, sem estado residual
	ag = AggregatePayments(payments[:1])
	assert.Equal(t, StatusTripPaid, Classify(amounts, ag, false).Status)
	assert.Equal(t, 100.0, Outstanding(amounts, ag))
}

// Pagamentos adicionais nunca pioram o status nem aumentam o saldo devedor.
func TestMorePaymentsNeverRegress(t *testing.T) {
	amounts := ComputeAmounts(
		PassengerCharges{GrossFare: 300, Discount: 50},
		[]TourCharge{{Name: "Passeio", Amount: 100}},
	)

	rank := map[string]int{
		StatusPending:   0,
		StatusToursPaid: 1,
		StatusTripPaid:  1,
		StatusFullyPaid: 2,
	}

	steps := []PaymentEntry{
		{Category: CategoryTrip, Amount: 100},
		{Category: CategoryTours, Amount: 60},
		{Category: CategoryTrip, Amount: 150},
		{Category: CategoryBoth, Amount: 40},
	}

	var payments []PaymentEntry
	prevRank := -1
	prevOutstanding := Outstanding(amounts, AggregatePayments(nil))
	for _, step := range steps {
		payments = append(payments, step)
		ag := AggregatePayments(payments)
		cls := Classify(amounts, ag, false)
		out := Outstanding(amounts, ag)

		assert.GreaterOrEqual(t, rank[cls.Status], prevRank)
		assert.LessOrEqual(t, out, prevOutstanding)
		prevRank = rank[cls.Status]
		prevOutstanding = out
	}
}

func TestOutstandingClampsOverpayment(t *testing.T) {
	amounts := Amounts{NetTripFare: 100, TotalOwed: 100}
	assert.Equal(t, 0.0, Outstanding(amounts, Aggregates{CashTotal: 150}))
}
