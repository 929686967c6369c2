package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "caravanas/internal/config"
	"caravanas/internal/domain"
	"caravanas/internal/domain/models"
)

// UserRepository handles the operator accounts of the admin panel.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin finds an account by e-mail or username. O hash volta separado
// para a comparação do bcrypt; ele nunca entra no modelo serializado.
func (r UserRepository) GetByLogin(login string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(username,''),
		       COALESCE(email,''),
		       COALESCE(phone,''),
		       COALESCE(password_hash,''),
		       COALESCE(role,'user'),
		       COALESCE(status,'active')
		FROM users WHERE email=? OR username=? LIMIT 1`,
		login, login).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Phone,
		&hash,
		&u.Role,
		&u.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", err
	}
	return u, hash, nil
}

// ExistsByLogin checks both unique keys at once.
func (r UserRepository) ExistsByLogin(email, username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email=? OR username=?`,
		email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Insert(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		strings.TrimSpace(u.Name),
		strings.TrimSpace(u.Username),
		strings.TrimSpace(u.Email),
		strings.TrimSpace(u.Phone),
		passwordHash,
		u.Role,
		u.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
