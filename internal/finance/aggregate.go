package finance

// PaymentEntry is the slice of a payment record the aggregator cares about.
type PaymentEntry struct {
	Category string
	Amount   float64
}

// Aggregates carries the two summation paths over a passenger's payments.
//
// PaidTrip/PaidTours are the weighted sums used for status classification: an
// "ambos" payment counts in full on BOTH sides, so their sum can exceed the
// cash actually received. CashTotal is the unweighted sum and is the only
// number valid for pending-balance and cash-received math. Não misturar.
type Aggregates struct {
	PaidTrip  float64 `json:"paid_trip"`
	PaidTours float64 `json:"paid_tours"`
	CashTotal float64 `json:"cash_total"`
}

// AggregatePayments sums categorized payments into the trip and tours sides.
func AggregatePayments(entries []PaymentEntry) Aggregates {
	var ag Aggregates
	for _, e := range entries {
		switch e.Category {
		case CategoryTrip:
			ag.PaidTrip += e.Amount
		case CategoryTours:
			ag.PaidTours += e.Amount
		case CategoryBoth:
			ag.PaidTrip += e.Amount
			ag.PaidTours += e.Amount
		default:
			// unknown category: count as cash but satisfy nothing
		}
		ag.CashTotal += e.Amount
	}
	return ag
}
