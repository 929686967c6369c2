package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const passengerColumns = `id,
	       COALESCE(trip_id,0),
	       COALESCE(client_name,''),
	       COALESCE(client_phone,''),
	       COALESCE(gross_fare,0),
	       COALESCE(discount,0),
	       COALESCE(gratuitous,0),
	       COALESCE(payment_status,''),
	       COALESCE(trip_paid,0),
	       COALESCE(tours_paid,0),
	       COALESCE(confirmation_token,''),
	       COALESCE(presence_confirmed,0),
	       COALESCE(DATE_FORMAT(presence_confirmed_at,'%Y-%m-%d %H:%i:%s'),''),
	       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanPassenger(row interface{ Scan(dest ...any) error }) (models.Passenger, error) {
	var p models.Passenger
	err := row.Scan(
		&p.ID,
		&p.TripID,
		&p.ClientName,
		&p.ClientPhone,
		&p.GrossFare,
		&p.Discount,
		&p.Gratuitous,
		&p.PaymentStatus,
		&p.TripPaid,
		&p.ToursPaid,
		&p.ConfirmationToken,
		&p.PresenceConfirmed,
		&p.PresenceConfirmedAt,
		&p.CreatedAt,
	)
	if err != nil {
		return models.Passenger{}, err
	}
	p.ClientName = strings.TrimSpace(p.ClientName)
	p.ClientPhone = strings.TrimSpace(p.ClientPhone)
	return p, nil
}

func (r PassengerRepository) GetByID(id int64) (models.Passenger, error) {
	row := r.db().QueryRow(`SELECT `+passengerColumns+` FROM passengers WHERE id=? LIMIT 1`, id)
	p, err := scanPassenger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Passenger{}, domain.NotFoundError{Resource: "passenger"}
	}
	return p, err
}

// GetByToken resolves a passenger from its presence-confirmation token.
func (r PassengerRepository) GetByToken(token string) (models.Passenger, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Passenger{}, domain.NotFoundError{Resource: "passenger"}
	}
	row := r.db().QueryRow(`SELECT `+passengerColumns+` FROM passengers WHERE confirmation_token=? LIMIT 1`, token)
	p, err := scanPassenger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Passenger{}, domain.NotFoundError{Resource: "passenger"}
	}
	return p, err
}

func (r PassengerRepository) ListByTrip(tripID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`SELECT `+passengerColumns+` FROM passengers WHERE trip_id=? ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts the passenger with its initial status fields already set.
func (r PassengerRepository) Create(p models.Passenger) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO passengers
			(trip_id, client_name, client_phone, gross_fare, discount, gratuitous,
			 payment_status, trip_paid, tours_paid, confirmation_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.TripID,
		strings.TrimSpace(p.ClientName),
		strings.TrimSpace(p.ClientPhone),
		p.GrossFare,
		p.Discount,
		p.Gratuitous,
		p.PaymentStatus,
		p.TripPaid,
		p.ToursPaid,
		p.ConfirmationToken,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateFare replaces the fare fields only; status fields are persisted
// separately by UpdateStatus after reclassification.
func (r PassengerRepository) UpdateFare(id int64, grossFare, discount float64, gratuitous bool) error {
	// RowsAffected is 0 when the values are unchanged, so it cannot be used
	// as an existence check here; callers load the passenger first.
	_, err := r.db().Exec(`
		UPDATE passengers SET gross_fare=?, discount=?, gratuitous=?
		WHERE id=?`,
		grossFare, discount, gratuitous, id,
	)
	return err
}

// UpdateStatus persists the classifier output. Last write wins; the status is
// always re-derivable from the payment ledger.
func (r PassengerRepository) UpdateStatus(id int64, status string, tripPaid, toursPaid bool) error {
	_, err := r.db().Exec(`
		UPDATE passengers SET payment_status=?, trip_paid=?, tours_paid=?
		WHERE id=?`,
		status, tripPaid, toursPaid, id,
	)
	return err
}

// ConfirmPresence marks the passenger as present. Idempotent: confirming an
// already-confirmed passenger keeps the first timestamp.
func (r PassengerRepository) ConfirmPresence(id int64) error {
	_, err := r.db().Exec(`
		UPDATE passengers
		SET presence_confirmed=1,
		    presence_confirmed_at=COALESCE(presence_confirmed_at, NOW())
		WHERE id=?`, id)
	return err
}

func (r PassengerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM passengers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "passenger"}
	}
	return nil
}
