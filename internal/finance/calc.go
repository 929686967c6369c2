package finance

// Epsilon is the currency-unit rounding tolerance used by every comparison
// against an owed amount.
const Epsilon = 0.01

// Payment categories as stored in the payments table.
const (
	CategoryTrip  = "viagem"
	CategoryTours = "passeios"
	CategoryBoth  = "ambos"
)

// Closed set of payment status labels persisted on the passenger row.
const (
	StatusPending   = "Pendente"
	StatusTripPaid  = "Viagem Paga"
	StatusToursPaid = "Passeios Pagos"
	StatusFullyPaid = "Pago Completo"
)

// ValidCategory reports whether c is one of the three payment categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTrip, CategoryTours, CategoryBoth:
		return true
	}
	return false
}

// PassengerCharges holds the raw fare fields of one passenger-on-trip row.
type PassengerCharges struct {
	GrossFare  float64
	Discount   float64
	Gratuitous bool
}

// TourCharge is the amount actually charged for one selected tour.
type TourCharge struct {
	Name   string
	Amount float64
}

// Amounts is the calculated side of the reconciliation: what is owed.
type Amounts struct {
	NetTripFare    float64 `json:"net_trip_fare"`
	TourAddonTotal float64 `json:"tour_addon_total"`
	TotalOwed      float64 `json:"total_owed"`
}

// ComputeAmounts derives net trip fare, tour addon total and total owed.
// O desconto pode passar do valor bruto no banco; aqui a tarifa líquida é
// travada em zero. Gratuitous zera tudo.
func ComputeAmounts(p PassengerCharges, tours []TourCharge) Amounts {
	if p.Gratuitous {
		return Amounts{}
	}

	net := p.GrossFare - p.Discount
	if net < 0 {
		net = 0
	}

	var addons float64
	for _, t := range tours {
		addons += t.Amount
	}

	return Amounts{
		NetTripFare:    net,
		TourAddonTotal: addons,
		TotalOwed:      net + addons,
	}
}
