package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

// InstallmentRepository handles the legacy category-agnostic ledger
// (parcelamento). Kept alongside the categorized payments; the two are not
// cross-reconciled.
type InstallmentRepository struct {
	DB *sql.DB
}

func (r InstallmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const installmentColumns = `id,
	       COALESCE(passenger_id,0),
	       COALESCE(amount,0),
	       COALESCE(method,''),
	       COALESCE(due_date,''),
	       COALESCE(paid_at,''),
	       COALESCE(notes,''),
	       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanInstallment(row interface{ Scan(dest ...any) error }) (models.Installment, error) {
	var i models.Installment
	err := row.Scan(
		&i.ID,
		&i.PassengerID,
		&i.Amount,
		&i.Method,
		&i.DueDate,
		&i.PaidAt,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

func (r InstallmentRepository) GetByID(id int64) (models.Installment, error) {
	row := r.db().QueryRow(`SELECT `+installmentColumns+` FROM installments WHERE id=? LIMIT 1`, id)
	i, err := scanInstallment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Installment{}, domain.NotFoundError{Resource: "installment"}
	}
	return i, err
}

func (r InstallmentRepository) ListByPassenger(passengerID int64) ([]models.Installment, error) {
	rows, err := r.db().Query(`SELECT `+installmentColumns+` FROM installments WHERE passenger_id=? ORDER BY id ASC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Installment{}
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// SumByPassenger totals the legacy ledger for the overpayment guard.
func (r InstallmentRepository) SumByPassenger(passengerID int64) (float64, error) {
	var total float64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(amount),0) FROM installments WHERE passenger_id=?`,
		passengerID).Scan(&total)
	return total, err
}

// NextDueByTrip returns, per passenger of the trip, the earliest due date
// among installments ainda não pagas. Feeds the collections dashboard.
func (r InstallmentRepository) NextDueByTrip(tripID int64) (map[int64]string, error) {
	rows, err := r.db().Query(`
		SELECT i.passenger_id, COALESCE(MIN(i.due_date),'')
		FROM installments i
		INNER JOIN passengers pa ON pa.id = i.passenger_id
		WHERE pa.trip_id=? AND i.paid_at IS NULL AND i.due_date IS NOT NULL
		GROUP BY i.passenger_id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var passengerID int64
		var due string
		if err := rows.Scan(&passengerID, &due); err != nil {
			return out, err
		}
		if due != "" {
			out[passengerID] = due
		}
	}
	return out, rows.Err()
}

func (r InstallmentRepository) Insert(i models.Installment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO installments (passenger_id, amount, method, due_date, paid_at, notes, created_at)
		VALUES (?, ?, ?, NULLIF(?,''), NULLIF(?,''), ?, NOW())`,
		i.PassengerID,
		i.Amount,
		strings.TrimSpace(i.Method),
		strings.TrimSpace(i.DueDate),
		strings.TrimSpace(i.PaidAt),
		strings.TrimSpace(i.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r InstallmentRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM installments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "installment"}
	}
	return nil
}
