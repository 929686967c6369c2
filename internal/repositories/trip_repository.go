package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	var t models.Trip
	err := r.db().QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(destination,''),
		       COALESCE(departure_date,''),
		       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')
		FROM trips
		WHERE id=? LIMIT 1`, id).Scan(
		&t.ID,
		&t.Name,
		&t.Destination,
		&t.DepartureDate,
		&t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

func (r TripRepository) List() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(destination,''),
		       COALESCE(departure_date,''),
		       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')
		FROM trips
		ORDER BY departure_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.Name, &t.Destination, &t.DepartureDate, &t.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListIDs returns every trip id, used by the nightly repair sweep.
func (r TripRepository) ListIDs() ([]int64, error) {
	rows, err := r.db().Query(`SELECT id FROM trips ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (name, destination, departure_date, created_at)
		VALUES (?, ?, ?, NOW())`,
		strings.TrimSpace(t.Name),
		strings.TrimSpace(t.Destination),
		strings.TrimSpace(t.DepartureDate),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips SET name=?, destination=?, departure_date=?
		WHERE id=?`,
		strings.TrimSpace(t.Name),
		strings.TrimSpace(t.Destination),
		strings.TrimSpace(t.DepartureDate),
		t.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}
