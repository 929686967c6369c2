package services

import (
	"testing"

	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
	"caravanas/internal/finance"
	"caravanas/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var passengerCols = []string{
	"id", "trip_id", "client_name", "client_phone", "gross_fare", "discount",
	"gratuitous", "payment_status", "trip_paid", "tours_paid",
	"confirmation_token", "presence_confirmed", "presence_confirmed_at", "created_at",
}

func passengerRow(id int64, gross, discount float64, gratuitous bool) *sqlmock.Rows {
	return sqlmock.NewRows(passengerCols).AddRow(
		id, 10, "Maria Silva", "21999990000", gross, discount, gratuitous,
		"Pendente", false, false, "tok-123", false, "", "2026-01-01 10:00:00",
	)
}

var paymentCols = []string{
	"id", "passenger_id", "category", "amount", "method", "paid_at", "notes", "created_at",
}

var tourCols = []string{"id", "passenger_id", "tour_id", "tour_name", "amount_charged"}

func serviceWithDB(t *testing.T) (ReconciliationService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ReconciliationService{
		PassengerRepo:   repositories.PassengerRepository{DB: db},
		PaymentRepo:     repositories.PaymentRepository{DB: db},
		TourRepo:        repositories.TourSelectionRepository{DB: db},
		InstallmentRepo: repositories.InstallmentRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestRegisterPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	_, err := svc.RegisterPayment(1, PaymentInput{Category: finance.CategoryTrip, Amount: 0})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no store call should happen before validation: %v", err)
	}
}

func TestRegisterPaymentRejectsUnknownCategory(t *testing.T) {
	svc, _, closeDB := serviceWithDB(t)
	defer closeDB()

	_, err := svc.RegisterPayment(1, PaymentInput{Category: "pix", Amount: 50})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterPaymentInsertsAndPersistsStatus(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 300, 50, false))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(77, 1))

	// recomputation reads tours and the ledger back
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(77, 1, "viagem", 250.0, "pix", "2026-01-10", "", "2026-01-10 09:00:00"))
	mock.ExpectExec("UPDATE passengers SET payment_status=").
		WithArgs(finance.StatusTripPaid, true, false, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pay, err := svc.RegisterPayment(1, PaymentInput{Category: finance.CategoryTrip, Amount: 250, Method: "pix"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pay.ID != 77 {
		t.Fatalf("expected inserted id 77, got %d", pay.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkAsFullyPaidInsertsTopUp(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 300, 50, false))

	// first reconcile: one tour of 100, no payments -> outstanding 350
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(5, 1, 2, "Passeio", 100.0))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentCols))

	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(88, 1))

	// second reconcile sees the settlement and persists Pago Completo
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(5, 1, 2, "Passeio", 100.0))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(88, 1, "ambos", 350.0, "dinheiro", "2026-01-10", "Quitação manual", "2026-01-10 09:00:00"))
	mock.ExpectExec("UPDATE passengers SET payment_status=").
		WithArgs(finance.StatusFullyPaid, true, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pay, inserted, err := svc.MarkAsFullyPaid(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Fatalf("expected a settlement payment to be inserted")
	}
	if pay.Amount != 350 || pay.Category != finance.CategoryBoth {
		t.Fatalf("unexpected settlement payment: %+v", pay)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkAsFullyPaidNoOpWhenSettled(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 200, 0, false))

	settled := func() *sqlmock.Rows {
		return sqlmock.NewRows(paymentCols).
			AddRow(1, 1, "viagem", 200.0, "pix", "2026-01-05", "", "2026-01-05 09:00:00")
	}

	// reconcile + recompute, nada de INSERT
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(settled())
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(settled())
	mock.ExpectExec("UPDATE passengers SET payment_status=").
		WithArgs(finance.StatusFullyPaid, true, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, inserted, err := svc.MarkAsFullyPaid(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Fatalf("expected idempotent no-op, got an insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddInstallmentOverpaymentGuard(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 300, 50, false))
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(5, 1, 2, "Passeio", 100.0))
	// 300 já pagos de um total de 350: mais 100 estoura
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\),0\\) FROM installments").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(300.0))

	_, err := svc.AddInstallment(1, InstallmentInput{Amount: 100, Method: "pix"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeletePaymentRecomputes(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM payments WHERE id=").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(4, 1, "viagem", 250.0, "pix", "2026-01-10", "", "2026-01-10 09:00:00"))
	mock.ExpectExec("DELETE FROM payments WHERE id=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 300, 50, false))
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(5, 1, 2, "Passeio", 100.0))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentCols))
	mock.ExpectExec("UPDATE passengers SET payment_status=").
		WithArgs(finance.StatusPending, false, false, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.DeletePayment(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateFareGratuitousKeepsCallerToursIntact(t *testing.T) {
	svc, mock, closeDB := serviceWithDB(t)
	defer closeDB()

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 0, 0, true))
	mock.ExpectExec("UPDATE passengers SET gross_fare=").
		WithArgs(0.0, 0.0, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// a gravação zera o valor cobrado, mas o slice do chamador fica como veio
	mock.ExpectExec("DELETE FROM passenger_tours").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passenger_tours").
		WithArgs(int64(1), int64(2), "Passeio", 0.0).
		WillReturnResult(sqlmock.NewResult(6, 1))

	mock.ExpectQuery("FROM passengers WHERE id=").
		WillReturnRows(passengerRow(1, 0, 0, true))
	mock.ExpectQuery("FROM passenger_tours WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(6, 1, 2, "Passeio", 0.0))
	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentCols))
	mock.ExpectExec("UPDATE passengers SET payment_status=").
		WithArgs(finance.StatusFullyPaid, true, true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := FareUpdate{
		Gratuitous: true,
		Tours:      []models.TourSelection{{TourID: 2, TourName: "Passeio", AmountCharged: 100}},
	}
	if err := svc.UpdateFareAndTours(1, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Tours[0].AmountCharged != 100 {
		t.Fatalf("caller slice was mutated: %+v", in.Tours)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
