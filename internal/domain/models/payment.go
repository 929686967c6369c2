package models

// Payment is a categorized payment record. Immutable once created except for
// deletion; amount is always positive.
type Payment struct {
	ID          int64   `json:"id"`
	PassengerID int64   `json:"passenger_id"`
	Category    string  `json:"category"` // viagem / passeios / ambos
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PaidAt      string  `json:"paid_at"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// Installment is the legacy category-agnostic payment record (parcelamento).
// It coexists with Payment; the two ledgers are not cross-reconciled.
type Installment struct {
	ID          int64   `json:"id"`
	PassengerID int64   `json:"passenger_id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	DueDate     string  `json:"due_date"`
	PaidAt      string  `json:"paid_at"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}
