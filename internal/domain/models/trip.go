package models

// Trip is one caravan departure (ônibus para o jogo).
type Trip struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	CreatedAt     string `json:"created_at"`
}
