package database

import (
	"context"
	"database/sql"
)

// schema lists the tables the service needs, in dependency order.  The
// UNIQUE key on payments.booking_id is what makes double payment a
// database-level conflict rather than a race.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		user_id        VARCHAR(32)  PRIMARY KEY,
		first_name     VARCHAR(50)  NOT NULL,
		last_name      VARCHAR(50)  NOT NULL,
		email          VARCHAR(100) NOT NULL,
		phone          CHAR(10)     NOT NULL,
		registered_on  CHAR(10)     NOT NULL,
		password_hash  VARCHAR(100) NOT NULL,
		reset_question TINYINT      NOT NULL,
		reset_answer   VARCHAR(180) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		user_id        VARCHAR(32)  PRIMARY KEY,
		first_name     VARCHAR(50)  NOT NULL,
		last_name      VARCHAR(50)  NOT NULL,
		email          VARCHAR(100) NOT NULL,
		phone          CHAR(10)     NOT NULL,
		registered_on  CHAR(10)     NOT NULL,
		password_hash  VARCHAR(100) NOT NULL,
		reset_question TINYINT      NOT NULL,
		reset_answer   VARCHAR(180) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		id           VARCHAR(16) PRIMARY KEY,
		model        VARCHAR(50) NOT NULL,
		registration VARCHAR(20) NOT NULL,
		seating      INT         NOT NULL,
		cab_type     TINYINT     NOT NULL,
		price_per_km INT         NOT NULL,
		status       VARCHAR(10) NOT NULL DEFAULT 'Available',
		UNIQUE KEY uq_cars_registration (registration),
		KEY idx_cars_type_status (cab_type, status)
	)`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name  VARCHAR(50) NOT NULL,
		phone      CHAR(10)    NOT NULL,
		license    VARCHAR(20) NOT NULL,
		age        INT         NOT NULL,
		status     VARCHAR(10) NOT NULL DEFAULT 'Available'
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		customer_id      VARCHAR(32)  NOT NULL,
		cab_type         VARCHAR(10)  NOT NULL,
		start_date       CHAR(10)     NOT NULL,
		end_date         CHAR(10)     NOT NULL,
		pickup_time      CHAR(5)      NOT NULL,
		pickup_location  VARCHAR(100) NOT NULL,
		dropoff_location VARCHAR(100) NOT NULL,
		driver_id        BIGINT UNSIGNED NOT NULL,
		car_id           VARCHAR(16)  NOT NULL,
		route            VARCHAR(40)  NOT NULL,
		created_at       DATETIME     NOT NULL,
		KEY idx_bookings_context (customer_id, car_id, driver_id),
		KEY idx_bookings_driver (driver_id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id   BIGINT UNSIGNED NOT NULL,
		reference    CHAR(36)    NOT NULL,
		pay_type     VARCHAR(20) NOT NULL,
		status       VARCHAR(10) NOT NULL,
		total_amount INT         NOT NULL,
		created_at   DATETIME    NOT NULL,
		UNIQUE KEY uq_payments_booking (booking_id)
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id  VARCHAR(32)  NOT NULL,
		name     VARCHAR(101) NOT NULL,
		email    VARCHAR(100) NOT NULL,
		rating   VARCHAR(10)  NOT NULL,
		comments VARCHAR(500) NOT NULL,
		fb_date  CHAR(10)     NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS login_history (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		role       VARCHAR(10) NOT NULL,
		user_id    VARCHAR(32) NOT NULL,
		login_date CHAR(10)    NOT NULL,
		login_time CHAR(8)     NOT NULL
	)`,
}

// EnsureSchema creates any missing tables.  It is safe to run on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
