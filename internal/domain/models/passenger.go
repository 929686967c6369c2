package models

// Passenger is one person on one trip (passageiro da viagem).
// GrossFare/Discount come back as 0 when NULL in the store; the net fare is
// derived by the finance package, never stored.
type Passenger struct {
	ID            int64   `json:"id"`
	TripID        int64   `json:"trip_id"`
	ClientName    string  `json:"client_name"`
	ClientPhone   string  `json:"client_phone"`
	GrossFare     float64 `json:"gross_fare"`
	Discount      float64 `json:"discount"`
	Gratuitous    bool    `json:"gratuitous"`
	PaymentStatus string  `json:"payment_status"`
	TripPaid      bool    `json:"trip_paid"`
	ToursPaid     bool    `json:"tours_paid"`

	ConfirmationToken   string `json:"confirmation_token,omitempty"`
	PresenceConfirmed   bool   `json:"presence_confirmed"`
	PresenceConfirmedAt string `json:"presence_confirmed_at,omitempty"`

	CreatedAt string `json:"created_at"`
}
