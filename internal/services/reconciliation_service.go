package services

import (
	"fmt"

	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
	"caravanas/internal/finance"
	"caravanas/internal/repositories"
	"caravanas/internal/utils"
)

// Defaults used by the manual settlement top-up.
const (
	defaultMethod     = "dinheiro"
	manualSettleNotes = "Quitação manual"
	forcedPaidStatus  = "Pago"
)

// ReconciliationService orchestra o fluxo lê-calcula-grava: toda mutação de
// pagamento recalcula valores, reagrupa pagamentos, reclassifica e persiste o
// status no passageiro. Insert e persist de status NÃO são atômicos entre si;
// o status é eventualmente consistente e sempre re-derivável do ledger.
type ReconciliationService struct {
	PassengerRepo   repositories.PassengerRepository
	PaymentRepo     repositories.PaymentRepository
	TourRepo        repositories.TourSelectionRepository
	InstallmentRepo repositories.InstallmentRepository
	RequestID       string
}

// PaymentInput is the caller-facing shape of a new categorized payment.
type PaymentInput struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
	PaidAt   string  `json:"paid_at"`
	Notes    string  `json:"notes"`
}

// InstallmentInput is the legacy ledger's input shape.
type InstallmentInput struct {
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	DueDate string  `json:"due_date"`
	PaidAt  string  `json:"paid_at"`
	Notes   string  `json:"notes"`
}

// Breakdown is the read-only financial picture of one passenger.
type Breakdown struct {
	Passenger      models.Passenger       `json:"passenger"`
	Amounts        finance.Amounts        `json:"amounts"`
	Aggregates     finance.Aggregates     `json:"aggregates"`
	Classification finance.Classification `json:"classification"`
	Outstanding    float64                `json:"outstanding"`
	Payments       []models.Payment       `json:"payments"`
	Tours          []models.TourSelection `json:"tours"`
}

// FareUpdate carries an edit of the passenger's fare fields plus the wholesale
// replacement of its tour selection.
type FareUpdate struct {
	GrossFare  float64 `json:"gross_fare"`
	Discount   float64 `json:"discount"`
	Gratuitous bool    `json:"gratuitous"`
	// Status forçado pelo chamador; "Pago" dispara a quitação automática.
	ForceStatus string                 `json:"force_status"`
	Tours       []models.TourSelection `json:"tours"`
}

// RegisterPayment validates and inserts one categorized payment, then
// recomputes and persists the passenger's status.
func (s ReconciliationService) RegisterPayment(passengerID int64, in PaymentInput) (models.Payment, error) {
	if in.Amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "deve ser maior que zero"}
	}
	if !finance.ValidCategory(in.Category) {
		return models.Payment{}, domain.ValidationError{Field: "category", Msg: "use viagem, passeios ou ambos"}
	}

	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return models.Payment{}, storeErr("load passenger", err)
	}

	pay := models.Payment{
		PassengerID: p.ID,
		Category:    in.Category,
		Amount:      in.Amount,
		Method:      in.Method,
		PaidAt:      in.PaidAt,
		Notes:       in.Notes,
	}
	id, err := s.PaymentRepo.Insert(pay)
	if err != nil {
		return models.Payment{}, storeErr("insert payment", err)
	}
	pay.ID = id

	utils.LogEvent(s.RequestID, "reconcile", "register_payment",
		fmt.Sprintf("passenger_id=%d category=%s amount=%s", p.ID, in.Category, utils.FormatMoney(in.Amount)))

	if _, err := s.recomputeAndPersist(p); err != nil {
		return pay, err
	}
	return pay, nil
}

// DeletePayment removes one payment record and reclassifies its passenger.
func (s ReconciliationService) DeletePayment(paymentID int64) error {
	pay, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return storeErr("load payment", err)
	}
	if err := s.PaymentRepo.Delete(paymentID); err != nil {
		return storeErr("delete payment", err)
	}

	utils.LogEvent(s.RequestID, "reconcile", "delete_payment",
		fmt.Sprintf("payment_id=%d passenger_id=%d", paymentID, pay.PassengerID))

	p, err := s.PassengerRepo.GetByID(pay.PassengerID)
	if err != nil {
		return storeErr("load passenger", err)
	}
	_, err = s.recomputeAndPersist(p)
	return err
}

// MarkAsFullyPaid settles whatever cash balance remains with one synthetic
// "ambos" payment, then reclassifies. Saldo já quitado vira no-op idempotente
// (reclassifica mesmo assim). Returns the inserted payment when one was made.
func (s ReconciliationService) MarkAsFullyPaid(passengerID int64) (models.Payment, bool, error) {
	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return models.Payment{}, false, storeErr("load passenger", err)
	}

	amounts, aggregates, _, err := s.reconcile(p)
	if err != nil {
		return models.Payment{}, false, err
	}

	outstanding := finance.Outstanding(amounts, aggregates)
	if outstanding <= finance.Epsilon {
		_, err := s.recomputeAndPersist(p)
		return models.Payment{}, false, err
	}

	pay := models.Payment{
		PassengerID: p.ID,
		Category:    finance.CategoryBoth,
		Amount:      outstanding,
		Method:      defaultMethod,
		Notes:       manualSettleNotes,
	}
	id, err := s.PaymentRepo.Insert(pay)
	if err != nil {
		return models.Payment{}, false, storeErr("insert settlement payment", err)
	}
	pay.ID = id

	utils.LogEvent(s.RequestID, "reconcile", "mark_fully_paid",
		fmt.Sprintf("passenger_id=%d amount=%s", p.ID, utils.FormatMoney(outstanding)))

	if _, err := s.recomputeAndPersist(p); err != nil {
		return pay, true, err
	}
	return pay, true, nil
}

// UpdateFareAndTours replaces the fare fields and the whole tour selection.
// When the caller forces the status to "Pago", any shortfall is auto-settled
// with the same top-up used by MarkAsFullyPaid.
func (s ReconciliationService) UpdateFareAndTours(passengerID int64, in FareUpdate) error {
	if in.GrossFare < 0 {
		return domain.ValidationError{Field: "gross_fare", Msg: "não pode ser negativo"}
	}
	if in.Discount < 0 {
		return domain.ValidationError{Field: "discount", Msg: "não pode ser negativo"}
	}

	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return storeErr("load passenger", err)
	}

	if err := s.PassengerRepo.UpdateFare(p.ID, in.GrossFare, in.Discount, in.Gratuitous); err != nil {
		return storeErr("update fare", err)
	}

	selections := in.Tours
	if in.Gratuitous {
		// passageiro brinde não paga passeio; cópia para não mexer no input
		selections = make([]models.TourSelection, len(in.Tours))
		copy(selections, in.Tours)
		for i := range selections {
			selections[i].AmountCharged = 0
		}
	}
	if err := s.TourRepo.ReplaceForPassenger(p.ID, selections); err != nil {
		return storeErr("replace tours", err)
	}

	utils.LogEvent(s.RequestID, "reconcile", "update_fare",
		fmt.Sprintf("passenger_id=%d tours=%d force_status=%s", p.ID, len(selections), in.ForceStatus))

	if in.ForceStatus == forcedPaidStatus {
		_, _, err := s.MarkAsFullyPaid(p.ID)
		return err
	}

	p, err = s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return storeErr("reload passenger", err)
	}
	_, err = s.recomputeAndPersist(p)
	return err
}

// ComputeBreakdown returns the full amounts/paid/pending view for display.
// Read-only; nothing is persisted.
func (s ReconciliationService) ComputeBreakdown(passengerID int64) (Breakdown, error) {
	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return Breakdown{}, storeErr("load passenger", err)
	}

	tours, err := s.TourRepo.ListByPassenger(p.ID)
	if err != nil {
		return Breakdown{}, storeErr("list tours", err)
	}
	payments, err := s.PaymentRepo.ListByPassenger(p.ID)
	if err != nil {
		return Breakdown{}, storeErr("list payments", err)
	}

	amounts := finance.ComputeAmounts(chargesOf(p), tourChargesOf(tours))
	aggregates := finance.AggregatePayments(paymentEntriesOf(payments))

	return Breakdown{
		Passenger:      p,
		Amounts:        amounts,
		Aggregates:     aggregates,
		Classification: finance.Classify(amounts, aggregates, p.Gratuitous),
		Outstanding:    finance.Outstanding(amounts, aggregates),
		Payments:       payments,
		Tours:          tours,
	}, nil
}

// RecomputeStatus re-runs the pipeline and overwrites whatever status is
// stored. É a operação de reparo: o ledger manda, o status segue.
func (s ReconciliationService) RecomputeStatus(passengerID int64) (finance.Classification, error) {
	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return finance.Classification{}, storeErr("load passenger", err)
	}
	return s.recomputeAndPersist(p)
}

// AddInstallment appends to the legacy ledger. Unlike RegisterPayment, this
// path enforces the overpayment guard: the installment total may never pass
// the total owed.
func (s ReconciliationService) AddInstallment(passengerID int64, in InstallmentInput) (models.Installment, error) {
	if in.Amount <= 0 {
		return models.Installment{}, domain.ValidationError{Field: "amount", Msg: "deve ser maior que zero"}
	}

	p, err := s.PassengerRepo.GetByID(passengerID)
	if err != nil {
		return models.Installment{}, storeErr("load passenger", err)
	}

	tours, err := s.TourRepo.ListByPassenger(p.ID)
	if err != nil {
		return models.Installment{}, storeErr("list tours", err)
	}
	amounts := finance.ComputeAmounts(chargesOf(p), tourChargesOf(tours))

	paid, err := s.InstallmentRepo.SumByPassenger(p.ID)
	if err != nil {
		return models.Installment{}, storeErr("sum installments", err)
	}
	if paid+in.Amount > amounts.TotalOwed+finance.Epsilon {
		return models.Installment{}, domain.ConflictError{
			Resource: "installment",
			Msg:      "valor ultrapassa o total devido",
		}
	}

	inst := models.Installment{
		PassengerID: p.ID,
		Amount:      in.Amount,
		Method:      in.Method,
		DueDate:     in.DueDate,
		PaidAt:      in.PaidAt,
		Notes:       in.Notes,
	}
	id, err := s.InstallmentRepo.Insert(inst)
	if err != nil {
		return models.Installment{}, storeErr("insert installment", err)
	}
	inst.ID = id

	utils.LogEvent(s.RequestID, "reconcile", "add_installment",
		fmt.Sprintf("passenger_id=%d amount=%s", p.ID, utils.FormatMoney(in.Amount)))
	return inst, nil
}

// DeleteInstallment removes a legacy installment record.
func (s ReconciliationService) DeleteInstallment(installmentID int64) error {
	if _, err := s.InstallmentRepo.GetByID(installmentID); err != nil {
		return storeErr("load installment", err)
	}
	if err := s.InstallmentRepo.Delete(installmentID); err != nil {
		return storeErr("delete installment", err)
	}
	utils.LogEvent(s.RequestID, "reconcile", "delete_installment",
		fmt.Sprintf("installment_id=%d", installmentID))
	return nil
}

// reconcile loads the passenger's tours and payments and runs the pure
// pipeline, without persisting anything.
func (s ReconciliationService) reconcile(p models.Passenger) (finance.Amounts, finance.Aggregates, finance.Classification, error) {
	tours, err := s.TourRepo.ListByPassenger(p.ID)
	if err != nil {
		return finance.Amounts{}, finance.Aggregates{}, finance.Classification{}, storeErr("list tours", err)
	}
	payments, err := s.PaymentRepo.ListByPassenger(p.ID)
	if err != nil {
		return finance.Amounts{}, finance.Aggregates{}, finance.Classification{}, storeErr("list payments", err)
	}

	amounts := finance.ComputeAmounts(chargesOf(p), tourChargesOf(tours))
	aggregates := finance.AggregatePayments(paymentEntriesOf(payments))
	return amounts, aggregates, finance.Classify(amounts, aggregates, p.Gratuitous), nil
}

func (s ReconciliationService) recomputeAndPersist(p models.Passenger) (finance.Classification, error) {
	_, _, cls, err := s.reconcile(p)
	if err != nil {
		return finance.Classification{}, err
	}
	if err := s.PassengerRepo.UpdateStatus(p.ID, cls.Status, cls.TripPaid, cls.ToursPaid); err != nil {
		return cls, storeErr("persist status", err)
	}
	return cls, nil
}

func chargesOf(p models.Passenger) finance.PassengerCharges {
	return finance.PassengerCharges{
		GrossFare:  p.GrossFare,
		Discount:   p.Discount,
		Gratuitous: p.Gratuitous,
	}
}

func tourChargesOf(selections []models.TourSelection) []finance.TourCharge {
	out := make([]finance.TourCharge, 0, len(selections))
	for _, sel := range selections {
		out = append(out, finance.TourCharge{Name: sel.TourName, Amount: sel.AmountCharged})
	}
	return out
}

func paymentEntriesOf(payments []models.Payment) []finance.PaymentEntry {
	out := make([]finance.PaymentEntry, 0, len(payments))
	for _, pay := range payments {
		out = append(out, finance.PaymentEntry{Category: pay.Category, Amount: pay.Amount})
	}
	return out
}

// storeErr keeps typed domain errors as-is and wraps anything else as a
// store-unavailable failure. No retries happen at this layer.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsConflict(err) {
		return err
	}
	return domain.UnavailableError{Op: op, Err: err}
}
