package db

import (
	"context"
	"database/sql"
	"fmt"
)

// HasTable checks information_schema for table in the current database.
func HasTable(ctx context.Context, q DBTX, table string) bool {
	var name sql.NullString
	err := q.QueryRowxContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

type tableDDL struct {
	name string
	ddl  string
}

func schemaTables(uniqueCustomerEmail bool) []tableDDL {
	emailKey := "KEY idx_customers_email (email)"
	if uniqueCustomerEmail {
		emailKey = "UNIQUE KEY uniq_customers_email (email)"
	}
	return []tableDDL{
		{"destinations", `
CREATE TABLE IF NOT EXISTS destinations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	distance DECIMAL(10,2) NOT NULL DEFAULT 0,
	duration INT NOT NULL DEFAULT 0,
	latitude DECIMAL(9,6) NOT NULL DEFAULT 0,
	longitude DECIMAL(9,6) NOT NULL DEFAULT 0,
	description TEXT NULL,
	image VARCHAR(255) NULL,
	KEY idx_destinations_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"vehicles", `
CREATE TABLE IF NOT EXISTS vehicles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NULL,
	type VARCHAR(20) NULL,
	capacity INT NOT NULL DEFAULT 0,
	image VARCHAR(255) NULL,
	UNIQUE KEY uniq_vehicles_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"vehicle_destination_prices", `
CREATE TABLE IF NOT EXISTS vehicle_destination_prices (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	vehicle_id BIGINT NOT NULL,
	destination_id BIGINT NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	UNIQUE KEY uniq_vehicle_destination (vehicle_id, destination_id),
	KEY idx_prices_destination (destination_id),
	CONSTRAINT fk_prices_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
	CONSTRAINT fk_prices_destination FOREIGN KEY (destination_id) REFERENCES destinations(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"customers", `
CREATE TABLE IF NOT EXISTS customers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	email VARCHAR(254) NOT NULL,
	phone_no VARCHAR(20) NULL,
	country VARCHAR(100) NULL,
	message TEXT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	` + emailKey + `
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	customer_id BIGINT NOT NULL,
	vehicle_id BIGINT NULL,
	destination_id BIGINT NULL,
	vehicle_destination_price_id BIGINT NULL,
	price DECIMAL(10,2) NULL,
	no_of_passengers INT NOT NULL,
	pickup_location VARCHAR(200) NOT NULL DEFAULT '',
	dropoff_location VARCHAR(200) NOT NULL DEFAULT '',
	pickup_date DATE NOT NULL,
	pickup_time TIME NOT NULL,
	additional_info TEXT NOT NULL,
	is_return_trip TINYINT(1) NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bookings_status (status),
	KEY idx_bookings_created_at (created_at),
	CONSTRAINT fk_bookings_customer FOREIGN KEY (customer_id) REFERENCES customers(id),
	CONSTRAINT fk_bookings_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
	CONSTRAINT fk_bookings_destination FOREIGN KEY (destination_id) REFERENCES destinations(id),
	CONSTRAINT fk_bookings_price FOREIGN KEY (vehicle_destination_price_id) REFERENCES vehicle_destination_prices(id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"messages", `
CREATE TABLE IF NOT EXISTS messages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	customer_id BIGINT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_messages_created_at (created_at),
	CONSTRAINT fk_messages_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"testimonials", `
CREATE TABLE IF NOT EXISTS testimonials (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	customer_name VARCHAR(100) NOT NULL,
	country VARCHAR(100) NOT NULL,
	profile_icon VARCHAR(255) NULL,
	review TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
		{"newsletters", `
CREATE TABLE IF NOT EXISTS newsletters (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(254) NOT NULL,
	token CHAR(36) NOT NULL,
	verified TINYINT(1) NOT NULL DEFAULT 0,
	verified_at TIMESTAMP NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_newsletters_email (email),
	UNIQUE KEY uniq_newsletters_token (token)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	}
}

// EnsureSchema creates missing tables. The customers email key is unique only
// under the upsert policy, since the insert policy keeps one row per request.
func EnsureSchema(ctx context.Context, q DBTX, uniqueCustomerEmail bool) error {
	for _, t := range schemaTables(uniqueCustomerEmail) {
		if HasTable(ctx, q, t.name) {
			continue
		}
		if _, err := q.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
