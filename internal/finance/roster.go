package finance

import "time"

// Bucketing thresholds for the collections dashboard, in days since the
// passenger registered.
const (
	urgentAfterDays    = 7
	attentionAfterDays = 3
)

// RosterPassenger is everything the roster aggregator needs about one
// passenger, already fetched from the store.
type RosterPassenger struct {
	ID           int64
	Name         string
	Phone        string
	Charges      PassengerCharges
	Tours        []TourCharge
	Payments     []PaymentEntry
	RegisteredAt time.Time
	// Earliest open installment due date, empty when none.
	NextInstallmentDue string
}

// PendingEntry is one row of the computed (never persisted) pending-passenger
// view. PendingTrip/PendingTours break the balance down per category using
// the weighted aggregates; PendingTotal is the real cash balance and is the
// inclusion criterion.
type PendingEntry struct {
	PassengerID           int64   `json:"passenger_id"`
	Name                  string  `json:"name"`
	Phone                 string  `json:"phone"`
	PendingTrip           float64 `json:"pending_trip"`
	PendingTours          float64 `json:"pending_tours"`
	PendingTotal          float64 `json:"pending_total"`
	DaysSinceRegistration int     `json:"days_since_registration"`
	NextInstallmentDue    string  `json:"next_installment_due,omitempty"`
}

// PendingBuckets partitions the pending view for the collections UI.
// urgent > 7 dias, attention 3–7, onTrack < 3.
type PendingBuckets struct {
	Urgent    []PendingEntry `json:"urgent"`
	Attention []PendingEntry `json:"attention"`
	OnTrack   []PendingEntry `json:"on_track"`
}

// RosterSummary is the trip-wide financial picture.
type RosterSummary struct {
	TotalRevenue    float64        `json:"total_revenue"`
	TotalCollected  float64        `json:"total_collected"`
	TotalPending    float64        `json:"total_pending"`
	PassengerCount  int            `json:"passenger_count"`
	PendingCount    int            `json:"pending_count"`
	DelinquencyRate float64        `json:"delinquency_rate"`
	Pending         []PendingEntry `json:"pending"`
	Buckets         PendingBuckets `json:"buckets"`
}

// AggregateRoster runs the per-passenger pipeline over a whole trip roster.
// Gratuitous passengers are excluded from every total and from the counts.
// Totals use unweighted cash sums, so TotalRevenue == TotalCollected +
// TotalPending by construction.
func AggregateRoster(passengers []RosterPassenger, now time.Time) RosterSummary {
	var sum RosterSummary

	for _, p := range passengers {
		if p.Charges.Gratuitous {
			continue
		}

		amounts := ComputeAmounts(p.Charges, p.Tours)
		ag := AggregatePayments(p.Payments)

		sum.PassengerCount++
		sum.TotalRevenue += amounts.TotalOwed
		sum.TotalCollected += ag.CashTotal

		outstanding := Outstanding(amounts, ag)
		if outstanding <= Epsilon {
			continue
		}

		entry := PendingEntry{
			PassengerID:           p.ID,
			Name:                  p.Name,
			Phone:                 p.Phone,
			PendingTrip:           clampZero(amounts.NetTripFare - ag.PaidTrip),
			PendingTours:          clampZero(amounts.TourAddonTotal - ag.PaidTours),
			PendingTotal:          outstanding,
			DaysSinceRegistration: wholeDaysSince(p.RegisteredAt, now),
			NextInstallmentDue:    p.NextInstallmentDue,
		}
		sum.Pending = append(sum.Pending, entry)
		sum.PendingCount++

		switch {
		case entry.DaysSinceRegistration > urgentAfterDays:
			sum.Buckets.Urgent = append(sum.Buckets.Urgent, entry)
		case entry.DaysSinceRegistration >= attentionAfterDays:
			sum.Buckets.Attention = append(sum.Buckets.Attention, entry)
		default:
			sum.Buckets.OnTrack = append(sum.Buckets.OnTrack, entry)
		}
	}

	sum.TotalPending = sum.TotalRevenue - sum.TotalCollected
	if sum.PassengerCount > 0 {
		sum.DelinquencyRate = float64(sum.PendingCount) / float64(sum.PassengerCount)
	}
	return sum
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func wholeDaysSince(t time.Time, now time.Time) int {
	if t.IsZero() || now.Before(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
