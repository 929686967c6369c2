package models

// Tour is a catalog entry for an optional excursion (passeio).
type Tour struct {
	ID     int64   `json:"id"`
	TripID int64   `json:"trip_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

// TourSelection is one tour picked by one passenger. AmountCharged may differ
// from the catalog price (promotions, or forced to 0 for gratuitous
// passengers). Selections are replaced wholesale whenever edited.
type TourSelection struct {
	ID            int64   `json:"id"`
	PassengerID   int64   `json:"passenger_id"`
	TourID        int64   `json:"tour_id"`
	TourName      string  `json:"tour_name"`
	AmountCharged float64 `json:"amount_charged"`
}
