package repositories

import (
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bookings (user_id, driver_id, source_area_id, target_area_id, booking_date, status, bill)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.UserID, b.DriverID, nullIfZero(b.SourceAreaID), nullIfZero(b.TargetAreaID),
		b.BookingDate, models.BookingPending, b.Bill)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus patches a booking by primary key. There is deliberately no
// ownership predicate here; the caller logs the acting account.
func (r BookingRepository) UpdateStatus(id int64, status models.BookingStatus) error {
	_, err := r.DB.Exec(`UPDATE bookings SET status = ? WHERE booking_id = ?`, status, id)
	return err
}

func (r BookingRepository) UpdateRating(id int64, rating int) error {
	_, err := r.DB.Exec(`UPDATE bookings SET rating = ? WHERE booking_id = ?`, rating, id)
	return err
}

const bookingSelect = `
	SELECT b.booking_id, b.user_id, b.driver_id,
	       COALESCE(b.source_area_id, 0), COALESCE(b.target_area_id, 0),
	       COALESCE(DATE_FORMAT(b.booking_date, '%Y-%m-%d'), ''),
	       b.status, b.rating, b.bill,
	       u.name, d.name,
	       COALESCE(src.area_name, ''), COALESCE(tgt.area_name, '')
	FROM bookings b
	JOIN users u ON u.user_id = b.user_id
	JOIN drivers d ON d.driver_id = b.driver_id
	LEFT JOIN areas src ON src.area_id = b.source_area_id
	LEFT JOIN areas tgt ON tgt.area_id = b.target_area_id`

func (r BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()
	var out []models.Booking
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRow(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var rating sql.NullInt64
	err := row.Scan(&b.ID, &b.UserID, &b.DriverID, &b.SourceAreaID, &b.TargetAreaID,
		&b.BookingDate, &b.Status, &rating, &b.Bill,
		&b.UserName, &b.DriverName, &b.SourceAreaName, &b.TargetAreaName)
	if err != nil {
		return b, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}
	return b, nil
}

// ListByUser feeds the user dashboard.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(bookingSelect+` WHERE b.user_id = ? ORDER BY b.booking_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.scanBookings(rows)
}

// ListByDriver feeds the driver dashboard.
func (r BookingRepository) ListByDriver(driverID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(bookingSelect+` WHERE b.driver_id = ? ORDER BY b.booking_id DESC`, driverID)
	if err != nil {
		return nil, err
	}
	return r.scanBookings(rows)
}

// GetForUser loads one booking only when it belongs to the given user; the
// invoice endpoint relies on this scoping.
func (r BookingRepository) GetForUser(id, userID int64) (models.Booking, error) {
	row := r.DB.QueryRow(bookingSelect+` WHERE b.booking_id = ? AND b.user_id = ?`, id, userID)
	b, err := scanBookingRow(row)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// ListAll loads the bare booking rows for the matcher's per-driver scan.
func (r BookingRepository) ListAll() ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT booking_id, user_id, driver_id,
		       COALESCE(source_area_id, 0), COALESCE(target_area_id, 0),
		       COALESCE(DATE_FORMAT(booking_date, '%Y-%m-%d'), ''),
		       status, bill
		FROM bookings
		ORDER BY booking_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.DriverID, &b.SourceAreaID, &b.TargetAreaID,
			&b.BookingDate, &b.Status, &b.Bill); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
