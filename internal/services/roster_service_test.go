package services

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"caravanas/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAggregateRosterFromStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	svc := RosterService{
		TripRepo:        repositories.TripRepository{DB: db},
		PassengerRepo:   repositories.PassengerRepository{DB: db},
		TourRepo:        repositories.TourSelectionRepository{DB: db},
		PaymentRepo:     repositories.PaymentRepository{DB: db},
		InstallmentRepo: repositories.InstallmentRepository{DB: db},
		Now:             func() time.Time { return now },
	}

	mock.ExpectQuery("FROM trips WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "destination", "departure_date", "created_at"}).
			AddRow(10, "Caravana Maracanã", "Rio de Janeiro", "2026-04-01", "2026-02-01 09:00:00"))

	registered := now.AddDate(0, 0, -10).Format("2006-01-02 15:04:05")
	mock.ExpectQuery("FROM passengers WHERE trip_id=").
		WillReturnRows(sqlmock.NewRows(passengerCols).
			AddRow(1, 10, "Maria Silva", "21999990000", 300.0, 50.0, false,
				"Pendente", false, false, "tok-1", false, "", registered).
			AddRow(2, 10, "João Souza", "21988880000", 200.0, 0.0, false,
				"Pago Completo", true, true, "tok-2", false, "", registered).
			AddRow(3, 10, "Equipe", "", 0.0, 0.0, true,
				"Pago Completo", true, true, "tok-3", false, "", registered))

	mock.ExpectQuery("FROM passenger_tours s").
		WillReturnRows(sqlmock.NewRows(tourCols).AddRow(5, 1, 2, "Passeio", 100.0))

	mock.ExpectQuery("FROM payments p").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(7, 2, "viagem", 200.0, "pix", "2026-03-01", "", "2026-03-01 10:00:00"))

	mock.ExpectQuery("FROM installments i").
		WillReturnRows(sqlmock.NewRows([]string{"passenger_id", "due_date"}).
			AddRow(1, "2026-03-20"))

	sum, err := svc.AggregateRoster(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.PassengerCount != 2 {
		t.Fatalf("gratuitous should be excluded, got count %d", sum.PassengerCount)
	}
	if sum.TotalRevenue != 550 || sum.TotalCollected != 200 || sum.TotalPending != 350 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if len(sum.Pending) != 1 || sum.Pending[0].PassengerID != 1 {
		t.Fatalf("unexpected pending view: %+v", sum.Pending)
	}
	if sum.Pending[0].DaysSinceRegistration != 10 {
		t.Fatalf("expected 10 days since registration, got %d", sum.Pending[0].DaysSinceRegistration)
	}
	if len(sum.Buckets.Urgent) != 1 {
		t.Fatalf("10 days pending should be urgent: %+v", sum.Buckets)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAggregateRosterLogsMalformedRegistration(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	svc := RosterService{
		TripRepo:        repositories.TripRepository{DB: db},
		PassengerRepo:   repositories.PassengerRepository{DB: db},
		TourRepo:        repositories.TourSelectionRepository{DB: db},
		PaymentRepo:     repositories.PaymentRepository{DB: db},
		InstallmentRepo: repositories.InstallmentRepository{DB: db},
		Now:             func() time.Time { return now },
	}

	mock.ExpectQuery("FROM trips WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "destination", "departure_date", "created_at"}).
			AddRow(10, "Caravana Maracanã", "Rio de Janeiro", "2026-04-01", "2026-02-01 09:00:00"))

	mock.ExpectQuery("FROM passengers WHERE trip_id=").
		WillReturnRows(sqlmock.NewRows(passengerCols).
			AddRow(1, 10, "Maria Silva", "21999990000", 100.0, 0.0, false,
				"Pendente", false, false, "tok-1", false, "", "ontem"))

	mock.ExpectQuery("FROM passenger_tours s").
		WillReturnRows(sqlmock.NewRows(tourCols))
	mock.ExpectQuery("FROM payments p").
		WillReturnRows(sqlmock.NewRows(paymentCols))
	mock.ExpectQuery("FROM installments i").
		WillReturnRows(sqlmock.NewRows([]string{"passenger_id", "due_date"}))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	sum, err := svc.AggregateRoster(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "action=bad_registration_date") {
		t.Fatalf("expected a log line about the unparseable created_at, got: %s", buf.String())
	}
	// a data ilegível vira zero time: 0 dias, bucket onTrack
	if len(sum.Pending) != 1 || sum.Pending[0].DaysSinceRegistration != 0 {
		t.Fatalf("unexpected pending view: %+v", sum.Pending)
	}
	if len(sum.Buckets.OnTrack) != 1 {
		t.Fatalf("expected onTrack bucket, got %+v", sum.Buckets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
