package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Tables in dependency order.
var Tables = []string{"buses", "routes", "seats", "passengers", "bookings"}

var schemaDDL = map[string]string{
	"buses": `
CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	capacity INT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"routes": `
CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	from_location VARCHAR(100) NOT NULL,
	to_location VARCHAR(100) NOT NULL,
	departure_time VARCHAR(20) NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	date DATE NOT NULL,
	bus_id BIGINT NOT NULL,
	KEY idx_route_pair (from_location, to_location),
	CONSTRAINT fk_routes_bus FOREIGN KEY (bus_id) REFERENCES buses (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"seats": `
CREATE TABLE IF NOT EXISTS seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	seat_number INT NOT NULL,
	is_available TINYINT(1) NOT NULL DEFAULT 1,
	bus_id BIGINT NOT NULL,
	UNIQUE KEY uniq_bus_seat (bus_id, seat_number),
	CONSTRAINT fk_seats_bus FOREIGN KEY (bus_id) REFERENCES buses (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"passengers": `
CREATE TABLE IF NOT EXISTS passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	age INT NOT NULL,
	email VARCHAR(100) NOT NULL,
	phone VARCHAR(20) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"bookings": `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_date DATETIME NULL,
	total_price DECIMAL(10,2) NOT NULL,
	payment_status VARCHAR(20) NOT NULL DEFAULT 'Pending',
	passenger_id BIGINT NOT NULL,
	route_id BIGINT NOT NULL,
	seat_id BIGINT NOT NULL,
	UNIQUE KEY uniq_route_seat (route_id, seat_id),
	KEY idx_booking_passenger (passenger_id),
	CONSTRAINT fk_bookings_passenger FOREIGN KEY (passenger_id) REFERENCES passengers (id),
	CONSTRAINT fk_bookings_route FOREIGN KEY (route_id) REFERENCES routes (id),
	CONSTRAINT fk_bookings_seat FOREIGN KEY (seat_id) REFERENCES seats (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range Tables {
		if HasTable(ctx, db, table) {
			continue
		}
		if _, err := db.ExecContext(ctx, schemaDDL[table]); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
		log.Printf("[SCHEMA] tabel %s dibuat", table)
	}
	return nil
}
