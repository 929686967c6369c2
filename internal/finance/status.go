package finance

// Classification is what gets persisted back onto the passenger row.
type Classification struct {
	Status    string `json:"status"`
	TripPaid  bool   `json:"trip_paid"`
	ToursPaid bool   `json:"tours_paid"`
}

// Classify combines calculated amounts and aggregated payments into a status
// label plus the two paid flags. Comparisons are inclusive within Epsilon.
// Gratuitous overrides everything.
func Classify(a Amounts, ag Aggregates, gratuitous bool) Classification {
	if gratuitous {
		return Classification{Status: StatusFullyPaid, TripPaid: true, ToursPaid: true}
	}

	tripSatisfied := ag.PaidTrip >= a.NetTripFare-Epsilon
	toursSatisfied := a.TourAddonTotal == 0 || ag.PaidTours >= a.TourAddonTotal-Epsilon

	switch {
	case tripSatisfied && toursSatisfied:
		return Classification{Status: StatusFullyPaid, TripPaid: true, ToursPaid: true}
	case tripSatisfied:
		return Classification{Status: StatusTripPaid, TripPaid: true}
	case toursSatisfied:
		return Classification{Status: StatusToursPaid, ToursPaid: true}
	default:
		return Classification{Status: StatusPending}
	}
}

// Outstanding returns the pending cash balance, clamped at zero. Uses the
// unweighted cash total, never the weighted aggregates.
func Outstanding(a Amounts, ag Aggregates) float64 {
	out := a.TotalOwed - ag.CashTotal
	if out < 0 {
		return 0
	}
	return out
}
