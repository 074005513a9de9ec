package repositories

import (
	"database/sql"

	"rideshare/internal/domain/models"
)

type AreaRepository struct {
	DB *sql.DB
}

func (r AreaRepository) List() ([]models.Area, error) {
	rows, err := r.DB.Query(`SELECT area_id, area_name FROM areas ORDER BY area_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Area
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AreaRepository) Create(name string) (int64, error) {
	res, err := r.DB.Exec(`INSERT INTO areas (area_name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes an area by id; a missing row is a no-op.
func (r AreaRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM areas WHERE area_id = ?`, id)
	return err
}
