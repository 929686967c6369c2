package repositories

import (
	"testing"

	"caravanas/internal/domain"
	"caravanas/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var paymentTestCols = []string{
	"id", "passenger_id", "category", "amount", "method", "paid_at", "notes", "created_at",
}

func TestPaymentInsertTrimsAndReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(1), "viagem", 250.0, "pix", "2026-01-10", "sinal").
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := PaymentRepository{DB: db}
	id, err := repo.Insert(models.Payment{
		PassengerID: 1,
		Category:    "viagem",
		Amount:      250,
		Method:      " pix ",
		PaidAt:      "2026-01-10",
		Notes:       "sinal",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentListByPassengerScans(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments WHERE passenger_id=").
		WillReturnRows(sqlmock.NewRows(paymentTestCols).
			AddRow(1, 1, "viagem", 100.0, "pix", "2026-01-05", "", "2026-01-05 09:00:00").
			AddRow(2, 1, "passeios", 50.0, "dinheiro", "2026-01-06", "", "2026-01-06 09:00:00"))

	repo := PaymentRepository{DB: db}
	payments, err := repo.ListByPassenger(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
	if payments[1].Category != "passeios" || payments[1].Amount != 50 {
		t.Fatalf("unexpected second payment: %+v", payments[1])
	}
}

func TestPaymentDeleteMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM payments WHERE id=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PaymentRepository{DB: db}
	if err := repo.Delete(999); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
