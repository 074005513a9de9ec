package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		admin_id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS areas (
		area_id INT AUTO_INCREMENT PRIMARY KEY,
		area_name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		email VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		phone_number VARCHAR(12) NOT NULL,
		status ENUM('Pending','Confirmed','Blocked') NOT NULL DEFAULT 'Pending',
		profile_image VARCHAR(50) NULL,
		area_id INT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (area_id) REFERENCES areas(area_id)
	)`,
	`CREATE TABLE IF NOT EXISTS drivers (
		driver_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		email VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		phone_number VARCHAR(12) NOT NULL,
		dl_number VARCHAR(50) NOT NULL,
		profile_image VARCHAR(50) NULL,
		car_capacity INT NOT NULL DEFAULT 1,
		car_type ENUM('Sedan','SUV 5 Door','Minivan','Four Seater','Pickup','SUV 3 Door') NOT NULL DEFAULT 'Sedan',
		car_model VARCHAR(50) NOT NULL,
		car_color VARCHAR(50) NOT NULL,
		car_image VARCHAR(50) NULL,
		car_registration_number VARCHAR(50) NOT NULL,
		insurance_valid_upto DATE NOT NULL,
		status ENUM('Pending','Confirmed','Blocked') NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		route_id INT AUTO_INCREMENT PRIMARY KEY,
		driver_id INT NOT NULL,
		source_area_id INT NOT NULL,
		target_area_id INT NOT NULL,
		rate_per_day INT NOT NULL,
		FOREIGN KEY (driver_id) REFERENCES drivers(driver_id) ON DELETE CASCADE,
		FOREIGN KEY (source_area_id) REFERENCES areas(area_id),
		FOREIGN KEY (target_area_id) REFERENCES areas(area_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		driver_id INT NOT NULL,
		source_area_id INT NULL,
		target_area_id INT NULL,
		booking_date DATE NULL,
		status ENUM('Pending','Confirmed','Rejected','Closed') NOT NULL DEFAULT 'Pending',
		rating INT NULL,
		bill INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(user_id),
		FOREIGN KEY (driver_id) REFERENCES drivers(driver_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id CHAR(36) PRIMARY KEY,
		account_type VARCHAR(10) NULL,
		account_id INT NULL,
		form_echo JSON NULL,
		messages JSON NULL,
		expires_at DATETIME NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

var starterAreas = []string{"Old Montreal", "Downtown", "East York", "North York", "Etobicoke"}

// Bootstrap creates missing tables and guarantees the bootstrap admin and the
// starter areas exist. adminHash is the bcrypt hash for the default admin;
// callers produce it so this package never sees a plaintext secret.
func Bootstrap(db *sql.DB, adminHash string) error {
	firstRun := !HasTable(db, "admins")
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}
	if firstRun {
		log.Println("database schema initialized")
	}

	var admins int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admins WHERE username = ?`, "admin").Scan(&admins); err != nil {
		return err
	}
	if admins == 0 {
		if _, err := db.Exec(`INSERT INTO admins (username, password_hash) VALUES (?, ?)`, "admin", adminHash); err != nil {
			return err
		}
		log.Println("bootstrap admin account created")
	}

	var areas int
	if err := db.QueryRow(`SELECT COUNT(*) FROM areas`).Scan(&areas); err != nil {
		return err
	}
	if areas == 0 {
		for _, name := range starterAreas {
			if _, err := db.Exec(`INSERT INTO areas (area_name) VALUES (?)`, name); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDemoData inserts a confirmed demo user and driver with three routes.
// Dev convenience only, skipped when the demo driver already exists.
func SeedDemoData(db *sql.DB, userHash, driverHash string) error {
	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM drivers WHERE email = ?`, "jane@doe.dev").Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	if _, err := db.Exec(`
		INSERT INTO users (name, email, password_hash, phone_number, status)
		VALUES (?, ?, ?, ?, 'Confirmed')
	`, "John Doe", "john@doe.dev", userHash, "123-4564"); err != nil {
		return err
	}

	res, err := db.Exec(`
		INSERT INTO drivers
			(name, email, password_hash, phone_number, dl_number, car_capacity,
			 car_type, car_model, car_color, car_registration_number, insurance_valid_upto, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'Confirmed')
	`, "Jane Doe", "jane@doe.dev", driverHash, "123-4567", "11DDDD22E3", 4,
		"Sedan", "Audi Something", "Black", "22BBBBLLLLL", time.Now().Format("2006-01-02"))
	if err != nil {
		return err
	}
	driverID, _ := res.LastInsertId()

	routes := [][3]int64{{5, 4, 5}, {4, 5, 15}, {2, 1, 12}}
	for _, r := range routes {
		if _, err := db.Exec(`
			INSERT INTO routes (driver_id, source_area_id, target_area_id, rate_per_day)
			VALUES (?, ?, ?, ?)
		`, driverID, r[0], r[1], r[2]); err != nil {
			return err
		}
	}

	return nil
}
