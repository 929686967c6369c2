package models

// ContactLog is an append-only outreach record (cobrança por telefone,
// WhatsApp ou e-mail).
type ContactLog struct {
	ID          int64  `json:"id"`
	PassengerID int64  `json:"passenger_id"`
	Channel     string `json:"channel"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}
