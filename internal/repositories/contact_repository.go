package repositories

import (
	"database/sql"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain/models"
)

// ContactRepository is the append-only outreach history (registro de
// cobrança). No update, no delete.
type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ContactRepository) Append(c models.ContactLog) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO contact_log (passenger_id, channel, notes, created_at)
		VALUES (?, ?, ?, NOW())`,
		c.PassengerID,
		strings.TrimSpace(c.Channel),
		strings.TrimSpace(c.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ContactRepository) ListByPassenger(passengerID int64) ([]models.ContactLog, error) {
	rows, err := r.db().Query(`
		SELECT id,
		       COALESCE(passenger_id,0),
		       COALESCE(channel,''),
		       COALESCE(notes,''),
		       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')
		FROM contact_log WHERE passenger_id=? ORDER BY id DESC`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactLog{}
	for rows.Next() {
		var c models.ContactLog
		if err := rows.Scan(&c.ID, &c.PassengerID, &c.Channel, &c.Notes, &c.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
