package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

// TourRepository handles the catalog of optional excursions (passeios).
type TourRepository struct {
	DB *sql.DB
}

func (r TourRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TourRepository) GetByID(id int64) (models.Tour, error) {
	var t models.Tour
	err := r.db().QueryRow(`
		SELECT id, COALESCE(trip_id,0), COALESCE(name,''), COALESCE(price,0)
		FROM tours WHERE id=? LIMIT 1`, id).Scan(&t.ID, &t.TripID, &t.Name, &t.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tour{}, domain.NotFoundError{Resource: "tour"}
	}
	if err != nil {
		return models.Tour{}, err
	}
	return t, nil
}

func (r TourRepository) ListByTrip(tripID int64) ([]models.Tour, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(trip_id,0), COALESCE(name,''), COALESCE(price,0)
		FROM tours WHERE trip_id=? ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tour{}
	for rows.Next() {
		var t models.Tour
		if err := rows.Scan(&t.ID, &t.TripID, &t.Name, &t.Price); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TourRepository) Create(t models.Tour) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tours (trip_id, name, price) VALUES (?, ?, ?)`,
		t.TripID, strings.TrimSpace(t.Name), t.Price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TourRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM tours WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "tour"}
	}
	return nil
}

// TourSelectionRepository handles the tours picked per passenger.
type TourSelectionRepository struct {
	DB *sql.DB
}

func (r TourSelectionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TourSelectionRepository) ListByPassenger(passengerID int64) ([]models.TourSelection, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(passenger_id,0), COALESCE(tour_id,0), COALESCE(tour_name,''), COALESCE(amount_charged,0)
		FROM passenger_tours WHERE passenger_id=? ORDER BY id ASC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TourSelection{}
	for rows.Next() {
		var s models.TourSelection
		if err := rows.Scan(&s.ID, &s.PassengerID, &s.TourID, &s.TourName, &s.AmountCharged); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByTrip fetches every selection of a trip's roster in one query.
func (r TourSelectionRepository) ListByTrip(tripID int64) (map[int64][]models.TourSelection, error) {
	rows, err := r.db().Query(`
		SELECT s.id, COALESCE(s.passenger_id,0), COALESCE(s.tour_id,0), COALESCE(s.tour_name,''), COALESCE(s.amount_charged,0)
		FROM passenger_tours s
		INNER JOIN passengers pa ON pa.id = s.passenger_id
		WHERE pa.trip_id=?
		ORDER BY s.id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64][]models.TourSelection{}
	for rows.Next() {
		var s models.TourSelection
		if err := rows.Scan(&s.ID, &s.PassengerID, &s.TourID, &s.TourName, &s.AmountCharged); err != nil {
			return out, err
		}
		out[s.PassengerID] = append(out[s.PassengerID], s)
	}
	return out, rows.Err()
}

// ReplaceForPassenger swaps the passenger's selection wholesale: delete all,
// insert the new set. Sem update parcial, igual ao ciclo de vida da seleção.
func (r TourSelectionRepository) ReplaceForPassenger(passengerID int64, selections []models.TourSelection) error {
	db := r.db()

	if _, err := db.Exec(`DELETE FROM passenger_tours WHERE passenger_id=?`, passengerID); err != nil {
		return err
	}

	for _, s := range selections {
		_, err := db.Exec(`
			INSERT INTO passenger_tours (passenger_id, tour_id, tour_name, amount_charged)
			VALUES (?, ?, ?, ?)`,
			passengerID, s.TourID, strings.TrimSpace(s.TourName), s.AmountCharged)
		if err != nil {
			return err
		}
	}
	return nil
}
