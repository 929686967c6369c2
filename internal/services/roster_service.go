package services

import (
	"fmt"
	"strings"
	"time"

	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
	"caravanas/internal/finance"
	"caravanas/internal/repositories"
	"caravanas/internal/utils"
)

// RosterService runs the per-passenger pipeline over a whole trip and feeds
// the collections dashboard. Leitura apenas; a única escrita é o registro de
// cobrança, que é append-only.
type RosterService struct {
	TripRepo        repositories.TripRepository
	PassengerRepo   repositories.PassengerRepository
	TourRepo        repositories.TourSelectionRepository
	PaymentRepo     repositories.PaymentRepository
	InstallmentRepo repositories.InstallmentRepository
	ContactRepo     repositories.ContactRepository
	RequestID       string
	// Now is swappable in tests; defaults to wall clock.
	Now func() time.Time
}

func (s RosterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AggregateRoster produces the trip-wide totals and the pending-passenger
// view, fetching the whole roster in four queries.
func (s RosterService) AggregateRoster(tripID int64) (finance.RosterSummary, error) {
	if _, err := s.TripRepo.GetByID(tripID); err != nil {
		return finance.RosterSummary{}, storeErr("load trip", err)
	}

	passengers, err := s.PassengerRepo.ListByTrip(tripID)
	if err != nil {
		return finance.RosterSummary{}, storeErr("list passengers", err)
	}
	toursByPassenger, err := s.TourRepo.ListByTrip(tripID)
	if err != nil {
		return finance.RosterSummary{}, storeErr("list tours", err)
	}
	paymentsByPassenger, err := s.PaymentRepo.ListByTrip(tripID)
	if err != nil {
		return finance.RosterSummary{}, storeErr("list payments", err)
	}
	nextDueByPassenger, err := s.InstallmentRepo.NextDueByTrip(tripID)
	if err != nil {
		return finance.RosterSummary{}, storeErr("list installment due dates", err)
	}

	roster := make([]finance.RosterPassenger, 0, len(passengers))
	for _, p := range passengers {
		registeredAt, parseErr := utils.ParseDateTime(p.CreatedAt)
		if parseErr != nil {
			// zero time cai no bucket errado; deixar rastro para corrigir o dado
			utils.LogEvent(s.RequestID, "roster", "bad_registration_date",
				fmt.Sprintf("passenger_id=%d created_at=%q", p.ID, p.CreatedAt))
		}
		roster = append(roster, finance.RosterPassenger{
			ID:                 p.ID,
			Name:               p.ClientName,
			Phone:              p.ClientPhone,
			Charges:            chargesOf(p),
			Tours:              tourChargesOf(toursByPassenger[p.ID]),
			Payments:           paymentEntriesOf(paymentsByPassenger[p.ID]),
			RegisteredAt:       registeredAt,
			NextInstallmentDue: nextDueByPassenger[p.ID],
		})
	}

	summary := finance.AggregateRoster(roster, s.now())
	utils.LogEvent(s.RequestID, "roster", "aggregate",
		fmt.Sprintf("trip_id=%d passengers=%d pending=%d", tripID, summary.PassengerCount, summary.PendingCount))
	return summary, nil
}

// RegisterOutreach appends one contact-history record (ligação, WhatsApp ou
// e-mail de cobrança).
func (s RosterService) RegisterOutreach(passengerID int64, channel, notes string) (models.ContactLog, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return models.ContactLog{}, domain.ValidationError{Field: "channel", Msg: "obrigatório"}
	}

	if _, err := s.PassengerRepo.GetByID(passengerID); err != nil {
		return models.ContactLog{}, storeErr("load passenger", err)
	}

	entry := models.ContactLog{
		PassengerID: passengerID,
		Channel:     channel,
		Notes:       strings.TrimSpace(notes),
	}
	id, err := s.ContactRepo.Append(entry)
	if err != nil {
		return models.ContactLog{}, storeErr("append contact", err)
	}
	entry.ID = id

	utils.LogEvent(s.RequestID, "roster", "outreach",
		fmt.Sprintf("passenger_id=%d channel=%s", passengerID, channel))
	return entry, nil
}
