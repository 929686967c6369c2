package config

import (
	"database/sql"
	"log"

	"caravanas/internal/utils"
)

// Tabelas criadas na subida quando ainda não existem. Ambientes gerenciados
// rodam migração própria; HasTable evita DDL redundante a cada boot.
var schemaDDL = map[string]string{
	"trips": `CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		destination VARCHAR(255) NOT NULL DEFAULT '',
		departure_date DATE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	"passengers": `CREATE TABLE IF NOT EXISTS passengers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		client_phone VARCHAR(32) NOT NULL DEFAULT '',
		gross_fare DECIMAL(10,2) NULL,
		discount DECIMAL(10,2) NULL,
		gratuitous TINYINT(1) NOT NULL DEFAULT 0,
		payment_status VARCHAR(32) NOT NULL DEFAULT 'Pendente',
		trip_paid TINYINT(1) NOT NULL DEFAULT 0,
		tours_paid TINYINT(1) NOT NULL DEFAULT 0,
		confirmation_token VARCHAR(64) NOT NULL DEFAULT '',
		presence_confirmed TINYINT(1) NOT NULL DEFAULT 0,
		presence_confirmed_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_passengers_token (confirmation_token),
		CONSTRAINT fk_passengers_trip FOREIGN KEY (trip_id)
			REFERENCES trips (id) ON DELETE CASCADE
	)`,
	"tours": `CREATE TABLE IF NOT EXISTS tours (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		trip_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		CONSTRAINT fk_tours_trip FOREIGN KEY (trip_id)
			REFERENCES trips (id) ON DELETE CASCADE
	)`,
	"passenger_tours": `CREATE TABLE IF NOT EXISTS passenger_tours (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		tour_id BIGINT NOT NULL DEFAULT 0,
		tour_name VARCHAR(255) NOT NULL DEFAULT '',
		amount_charged DECIMAL(10,2) NOT NULL DEFAULT 0,
		CONSTRAINT fk_passenger_tours_passenger FOREIGN KEY (passenger_id)
			REFERENCES passengers (id) ON DELETE CASCADE
	)`,
	"payments": `CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		category VARCHAR(16) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		method VARCHAR(32) NOT NULL DEFAULT '',
		paid_at VARCHAR(10) NOT NULL DEFAULT '',
		notes VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_payments_passenger FOREIGN KEY (passenger_id)
			REFERENCES passengers (id) ON DELETE CASCADE
	)`,
	"installments": `CREATE TABLE IF NOT EXISTS installments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		method VARCHAR(32) NOT NULL DEFAULT '',
		due_date VARCHAR(10) NULL,
		paid_at VARCHAR(10) NULL,
		notes VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_installments_passenger FOREIGN KEY (passenger_id)
			REFERENCES passengers (id) ON DELETE CASCADE
	)`,
	"contact_log": `CREATE TABLE IF NOT EXISTS contact_log (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		channel VARCHAR(32) NOT NULL,
		notes VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_contact_log_passenger FOREIGN KEY (passenger_id)
			REFERENCES passengers (id) ON DELETE CASCADE
	)`,
	"users": `CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'user',
		status VARCHAR(32) NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email),
		UNIQUE KEY uq_users_username (username)
	)`,
}

// Ordem respeita as FKs (pais antes dos filhos).
var schemaOrder = []string{
	"trips", "passengers", "tours", "passenger_tours",
	"payments", "installments", "contact_log", "users",
}

// EnsureSchema cria as tabelas que faltam. Não altera tabelas existentes.
func EnsureSchema(db *sql.DB) {
	if db == nil {
		return
	}
	for _, table := range schemaOrder {
		if utils.HasTable(db, table) {
			continue
		}
		if _, err := db.Exec(schemaDDL[table]); err != nil {
			log.Printf("Falha ao criar tabela %s: %v", table, err)
		}
	}
}
