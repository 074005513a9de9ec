package services

import (
	"strconv"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"
)

type RouteService struct {
	Routes    repositories.RouteRepository
	RequestID string
}

// Add creates a route after rejecting a duplicate (driver, source, target)
// triple. The existence check and the insert are two statements; concurrent
// identical submissions can race (accepted, matches storage-wide policy).
func (s RouteService) Add(rt models.Route) error {
	if rt.SourceAreaID == 0 || rt.TargetAreaID == 0 || rt.RatePerDay == 0 {
		return domain.ValidationError{Msg: "Please fill the form correctly and ensure nothing is missing."}
	}
	exists, err := s.Routes.Exists(rt.DriverID, rt.SourceAreaID, rt.TargetAreaID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ConflictError{Msg: "Route already exists."}
	}
	if _, err := s.Routes.Create(rt); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "route", "add", "driver_id="+strconv.FormatInt(rt.DriverID, 10))
	return nil
}

// Delete removes the triple; an absent route is not an error.
func (s RouteService) Delete(driverID, sourceAreaID, targetAreaID int64) error {
	if err := s.Routes.Delete(driverID, sourceAreaID, targetAreaID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "route", "delete", "driver_id="+strconv.FormatInt(driverID, 10))
	return nil
}

// ListForDriver resolves the driver's routes plus the distinct source areas
// the routes page offers as delete shortcuts.
func (s RouteService) ListForDriver(driverID int64) ([]models.Route, []models.Area, error) {
	routes, err := s.Routes.ListByDriver(driverID)
	if err != nil {
		return nil, nil, err
	}

	seen := map[int64]bool{}
	var sources []models.Area
	for _, rt := range routes {
		if seen[rt.SourceAreaID] {
			continue
		}
		seen[rt.SourceAreaID] = true
		sources = append(sources, models.Area{ID: rt.SourceAreaID, Name: rt.SourceAreaName})
	}
	return routes, sources, nil
}
