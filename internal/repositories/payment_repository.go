package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id,
	       COALESCE(passenger_id,0),
	       COALESCE(category,''),
	       COALESCE(amount,0),
	       COALESCE(method,''),
	       COALESCE(paid_at,''),
	       COALESCE(notes,''),
	       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanPayment(row interface{ Scan(dest ...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.PassengerID,
		&p.Category,
		&p.Amount,
		&p.Method,
		&p.PaidAt,
		&p.Notes,
		&p.CreatedAt,
	)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return p, err
}

func (r PaymentRepository) ListByPassenger(passengerID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`SELECT `+paymentColumns+` FROM payments WHERE passenger_id=? ORDER BY id ASC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByTrip fetches every payment of a trip's roster in one query, keyed by
// passenger id. Saves the dashboard from N+1 lookups.
func (r PaymentRepository) ListByTrip(tripID int64) (map[int64][]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT p.id,
		       COALESCE(p.passenger_id,0),
		       COALESCE(p.category,''),
		       COALESCE(p.amount,0),
		       COALESCE(p.method,''),
		       COALESCE(p.paid_at,''),
		       COALESCE(p.notes,''),
		       COALESCE(DATE_FORMAT(p.created_at,'%Y-%m-%d %H:%i:%s'),'')
		FROM payments p
		INNER JOIN passengers pa ON pa.id = p.passenger_id
		WHERE pa.trip_id=?
		ORDER BY p.id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, err
		}
		out[p.PassengerID] = append(out[p.PassengerID], p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	paidAt := strings.TrimSpace(p.PaidAt)
	res, err := r.db().Exec(`
		INSERT INTO payments (passenger_id, category, amount, method, paid_at, notes, created_at)
		VALUES (?, ?, ?, ?, COALESCE(NULLIF(?,''), DATE_FORMAT(NOW(),'%Y-%m-%d')), ?, NOW())`,
		p.PassengerID,
		p.Category,
		p.Amount,
		strings.TrimSpace(p.Method),
		paidAt,
		strings.TrimSpace(p.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM payments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}
