package repositories

import (
	"database/sql"

	"rideshare/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

// ListByDriver returns the driver's routes with source/target area names
// resolved for display.
func (r RouteRepository) ListByDriver(driverID int64) ([]models.Route, error) {
	rows, err := r.DB.Query(`
		SELECT rt.route_id, rt.driver_id, rt.source_area_id, rt.target_area_id, rt.rate_per_day,
		       src.area_name, tgt.area_name
		FROM routes rt
		JOIN areas src ON src.area_id = rt.source_area_id
		JOIN areas tgt ON tgt.area_id = rt.target_area_id
		WHERE rt.driver_id = ?
		ORDER BY rt.route_id
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Route
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.DriverID, &rt.SourceAreaID, &rt.TargetAreaID,
			&rt.RatePerDay, &rt.SourceAreaName, &rt.TargetAreaName); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// ListAll loads every route, used by the matcher to bundle drivers with their
// route coverage in one pass.
func (r RouteRepository) ListAll() ([]models.Route, error) {
	rows, err := r.DB.Query(`
		SELECT route_id, driver_id, source_area_id, target_area_id, rate_per_day
		FROM routes
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Route
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.DriverID, &rt.SourceAreaID, &rt.TargetAreaID, &rt.RatePerDay); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Exists reports whether the (driver, source, target) triple is already taken.
func (r RouteRepository) Exists(driverID, sourceAreaID, targetAreaID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM routes
		WHERE driver_id = ? AND source_area_id = ? AND target_area_id = ?
	`, driverID, sourceAreaID, targetAreaID).Scan(&n)
	return n > 0, err
}

func (r RouteRepository) Create(rt models.Route) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO routes (driver_id, source_area_id, target_area_id, rate_per_day)
		VALUES (?, ?, ?, ?)
	`, rt.DriverID, rt.SourceAreaID, rt.TargetAreaID, rt.RatePerDay)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes the route identified by its triple; absent rows are a no-op.
func (r RouteRepository) Delete(driverID, sourceAreaID, targetAreaID int64) error {
	_, err := r.DB.Exec(`
		DELETE FROM routes
		WHERE driver_id = ? AND source_area_id = ? AND target_area_id = ?
	`, driverID, sourceAreaID, targetAreaID)
	return err
}
