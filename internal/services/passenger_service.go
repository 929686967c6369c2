package services

import (
	"fmt"
	"strings"

	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
	"caravanas/internal/finance"
	"caravanas/internal/repositories"
	"caravanas/internal/utils"

	"github.com/google/uuid"
)

// PassengerService handles registration (the public form posts here) and the
// presence-confirmation workflow.
type PassengerService struct {
	TripRepo      repositories.TripRepository
	PassengerRepo repositories.PassengerRepository
	TourRepo      repositories.TourSelectionRepository
	RequestID     string
}

// RegisterInput is what the public registration form submits.
type RegisterInput struct {
	ClientName  string                 `json:"client_name"`
	ClientPhone string                 `json:"client_phone"`
	GrossFare   float64                `json:"gross_fare"`
	Discount    float64                `json:"discount"`
	Gratuitous  bool                   `json:"gratuitous"`
	Tours       []models.TourSelection `json:"tours"`
}

// Register creates the passenger-on-trip record with its confirmation token
// and initial status, then stores the tour selection.
func (s PassengerService) Register(tripID int64, in RegisterInput) (models.Passenger, error) {
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return models.Passenger{}, domain.ValidationError{Field: "client_name", Msg: "obrigatório"}
	}
	if in.GrossFare < 0 {
		return models.Passenger{}, domain.ValidationError{Field: "gross_fare", Msg: "não pode ser negativo"}
	}
	if in.Discount < 0 {
		return models.Passenger{}, domain.ValidationError{Field: "discount", Msg: "não pode ser negativo"}
	}

	if _, err := s.TripRepo.GetByID(tripID); err != nil {
		return models.Passenger{}, storeErr("load trip", err)
	}

	selections := in.Tours
	if in.Gratuitous {
		for i := range selections {
			selections[i].AmountCharged = 0
		}
	}

	// status inicial já sai do classificador, sem pagamento nenhum
	amounts := finance.ComputeAmounts(
		finance.PassengerCharges{GrossFare: in.GrossFare, Discount: in.Discount, Gratuitous: in.Gratuitous},
		tourChargesOf(selections),
	)
	cls := finance.Classify(amounts, finance.Aggregates{}, in.Gratuitous)

	p := models.Passenger{
		TripID:            tripID,
		ClientName:        name,
		ClientPhone:       strings.TrimSpace(in.ClientPhone),
		GrossFare:         in.GrossFare,
		Discount:          in.Discount,
		Gratuitous:        in.Gratuitous,
		PaymentStatus:     cls.Status,
		TripPaid:          cls.TripPaid,
		ToursPaid:         cls.ToursPaid,
		ConfirmationToken: uuid.NewString(),
	}

	id, err := s.PassengerRepo.Create(p)
	if err != nil {
		return models.Passenger{}, storeErr("create passenger", err)
	}
	p.ID = id

	if err := s.TourRepo.ReplaceForPassenger(id, selections); err != nil {
		return p, storeErr("store tours", err)
	}

	utils.LogEvent(s.RequestID, "passenger", "register",
		fmt.Sprintf("trip_id=%d passenger_id=%d tours=%d", tripID, id, len(selections)))
	return p, nil
}

// LookupByToken resolves a confirmation token into its passenger. Used by the
// attendance page before confirming.
func (s PassengerService) LookupByToken(token string) (models.Passenger, error) {
	p, err := s.PassengerRepo.GetByToken(token)
	if err != nil {
		return models.Passenger{}, storeErr("lookup token", err)
	}
	return p, nil
}

// ConfirmPresence marks the token's passenger as present. Idempotent.
func (s PassengerService) ConfirmPresence(token string) (models.Passenger, error) {
	p, err := s.PassengerRepo.GetByToken(token)
	if err != nil {
		return models.Passenger{}, storeErr("lookup token", err)
	}
	if err := s.PassengerRepo.ConfirmPresence(p.ID); err != nil {
		return models.Passenger{}, storeErr("confirm presence", err)
	}

	utils.LogEvent(s.RequestID, "passenger", "confirm_presence",
		fmt.Sprintf("passenger_id=%d", p.ID))

	return s.PassengerRepo.GetByID(p.ID)
}
