package repositories

import (
	"database/sql"
	"fmt"

	"rideshare/internal/db"
	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
)

// AccountRepository is the single lookup surface over the three account
// tables. Loads keep the password hash; callers must not echo it anywhere.
type AccountRepository struct {
	DB *sql.DB
}

// LoadByTypeID resolves a (type, id) session binding into a concrete account.
func (r AccountRepository) LoadByTypeID(t models.AccountType, id int64) (models.Account, error) {
	switch t {
	case models.AccountTypeAdmin:
		return r.adminByID(id)
	case models.AccountTypeUser:
		return r.userByID(id)
	case models.AccountTypeDriver:
		return r.driverByID(id)
	default:
		return nil, domain.InternalError{Msg: fmt.Sprintf("unknown account type: %s", t)}
	}
}

func (r AccountRepository) adminByID(id int64) (models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(`
		SELECT admin_id, username, password_hash
		FROM admins WHERE admin_id = ?
	`, id).Scan(&a.ID, &a.Username, &a.Password)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundError{Resource: "admin"}
	}
	return a, err
}

func (r AccountRepository) FindAdminByUsername(username string) (models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(`
		SELECT admin_id, username, password_hash
		FROM admins WHERE username = ?
	`, username).Scan(&a.ID, &a.Username, &a.Password)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundError{Resource: "admin"}
	}
	return a, err
}

const userColumns = `user_id, name, email, password_hash, phone_number, status,
	COALESCE(profile_image, ''), COALESCE(area_id, 0)`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.PhoneNumber, &u.Status,
		&u.ProfileImage, &u.AreaID)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r AccountRepository) userByID(id int64) (models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = ?`, id))
}

func (r AccountRepository) FindUserByEmail(email string) (models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

const driverColumns = `driver_id, name, email, password_hash, phone_number, dl_number,
	COALESCE(profile_image, ''), car_capacity, car_type, car_model, car_color,
	COALESCE(car_image, ''), car_registration_number, insurance_valid_upto, status`

func scanDriver(row *sql.Row) (models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Password, &d.PhoneNumber, &d.DLNumber,
		&d.ProfileImage, &d.CarCapacity, &d.CarType, &d.CarModel, &d.CarColor,
		&d.CarImage, &d.CarRegistrationNumber, &d.InsuranceValidUpto, &d.Status)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "driver"}
	}
	return d, err
}

func (r AccountRepository) driverByID(id int64) (models.Driver, error) {
	return scanDriver(r.DB.QueryRow(`SELECT `+driverColumns+` FROM drivers WHERE driver_id = ?`, id))
}

func (r AccountRepository) FindDriverByEmail(email string) (models.Driver, error) {
	return scanDriver(r.DB.QueryRow(`SELECT `+driverColumns+` FROM drivers WHERE email = ?`, email))
}

func (r AccountRepository) CreateUser(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, password_hash, phone_number, status, profile_image, area_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Name, u.Email, u.Password, u.PhoneNumber, models.StatusPending,
		db.NullIfEmpty(u.ProfileImage), nullIfZero(u.AreaID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r AccountRepository) CreateDriver(d models.Driver) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO drivers
			(name, email, password_hash, phone_number, dl_number, profile_image,
			 car_capacity, car_type, car_model, car_color, car_image,
			 car_registration_number, insurance_valid_upto, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.Name, d.Email, d.Password, d.PhoneNumber, d.DLNumber, db.NullIfEmpty(d.ProfileImage),
		d.CarCapacity, d.CarType, d.CarModel, d.CarColor, db.NullIfEmpty(d.CarImage),
		d.CarRegistrationNumber, d.InsuranceValidUpto.Format("2006-01-02"), models.StatusPending)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus applies an admin moderation decision. Admin accounts carry no
// status, so only users and drivers are addressable here.
func (r AccountRepository) UpdateStatus(t models.AccountType, id int64, status models.AccountStatus) error {
	var query string
	switch t {
	case models.AccountTypeUser:
		query = `UPDATE users SET status = ? WHERE user_id = ?`
	case models.AccountTypeDriver:
		query = `UPDATE drivers SET status = ? WHERE driver_id = ?`
	default:
		return domain.InternalError{Msg: fmt.Sprintf("cannot set status on account type: %s", t)}
	}
	_, err := r.DB.Exec(query, status, id)
	return err
}

func (r AccountRepository) UpdatePassword(t models.AccountType, id int64, hash string) error {
	var query string
	switch t {
	case models.AccountTypeAdmin:
		query = `UPDATE admins SET password_hash = ? WHERE admin_id = ?`
	case models.AccountTypeUser:
		query = `UPDATE users SET password_hash = ? WHERE user_id = ?`
	case models.AccountTypeDriver:
		query = `UPDATE drivers SET password_hash = ? WHERE driver_id = ?`
	default:
		return domain.InternalError{Msg: fmt.Sprintf("unknown account type: %s", t)}
	}
	_, err := r.DB.Exec(query, hash, id)
	return err
}

// userProfileColumns and driverProfileColumns allowlist the form fields the
// profile page may patch. Password changes go through UpdatePassword only.
var userProfileColumns = map[string]string{
	"name":         "name",
	"phoneNumber":  "phone_number",
	"areaId":       "area_id",
	"profileImage": "profile_image",
}

var driverProfileColumns = map[string]string{
	"name":                  "name",
	"phoneNumber":           "phone_number",
	"dlNumber":              "dl_number",
	"carCapacity":           "car_capacity",
	"carType":               "car_type",
	"carModel":              "car_model",
	"carColor":              "car_color",
	"carRegistrationNumber": "car_registration_number",
	"insuranceValidUpto":    "insurance_valid_upto",
	"profileImage":          "profile_image",
	"carImage":              "car_image",
}

func (r AccountRepository) UpdateUserProfile(id int64, fields map[string]string) error {
	return r.patch(`users`, `user_id`, id, fields, userProfileColumns)
}

func (r AccountRepository) UpdateDriverProfile(id int64, fields map[string]string) error {
	return r.patch(`drivers`, `driver_id`, id, fields, driverProfileColumns)
}

func (r AccountRepository) patch(table, pk string, id int64, fields, allowed map[string]string) error {
	set := ""
	args := []any{}
	for form, value := range fields {
		col, ok := allowed[form]
		if !ok || value == "" {
			continue
		}
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, value)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.Exec(`UPDATE `+table+` SET `+set+` WHERE `+pk+` = ?`, args...)
	return err
}

func (r AccountRepository) ListDrivers() ([]models.Driver, error) {
	rows, err := r.DB.Query(`SELECT ` + driverColumns + ` FROM drivers ORDER BY driver_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Password, &d.PhoneNumber, &d.DLNumber,
			&d.ProfileImage, &d.CarCapacity, &d.CarType, &d.CarModel, &d.CarColor,
			&d.CarImage, &d.CarRegistrationNumber, &d.InsuranceValidUpto, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListUsersWithArea joins each user with their home area name for the admin
// listing page.
func (r AccountRepository) ListUsersWithArea() ([]models.User, error) {
	rows, err := r.DB.Query(`
		SELECT u.user_id, u.name, u.email, u.phone_number, u.status,
		       COALESCE(u.profile_image, ''), COALESCE(u.area_id, 0), COALESCE(a.area_name, '')
		FROM users u
		LEFT JOIN areas a ON a.area_id = u.area_id
		ORDER BY u.user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Status,
			&u.ProfileImage, &u.AreaID, &u.AreaName); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
