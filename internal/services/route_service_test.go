package services

import (
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRouteAddDuplicateRejectedWithoutInsert(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM routes").WithArgs(int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	svc := RouteService{Routes: repositories.RouteRepository{DB: dbc}}
	err = svc.Add(models.Route{DriverID: 1, SourceAreaID: 2, TargetAreaID: 3, RatePerDay: 15})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Route already exists." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	// no INSERT expectation registered: the exec would fail the mock
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteAddMissingFieldsRejected(t *testing.T) {
	svc := RouteService{}
	err := svc.Add(models.Route{DriverID: 1, SourceAreaID: 2})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Please fill the form correctly and ensure nothing is missing." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestRouteAddInsertsNewTriple(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM routes").WithArgs(int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO routes").WithArgs(int64(1), int64(2), int64(3), int64(15)).
		WillReturnResult(sqlmock.NewResult(7, 1))

	svc := RouteService{Routes: repositories.RouteRepository{DB: dbc}}
	if err := svc.Add(models.Route{DriverID: 1, SourceAreaID: 2, TargetAreaID: 3, RatePerDay: 15}); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteListForDriverDistinctSources(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	cols := []string{"route_id", "driver_id", "source_area_id", "target_area_id",
		"rate_per_day", "src_name", "tgt_name"}
	mock.ExpectQuery("FROM routes rt").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, 2, 3, 10, "Downtown", "East York").
			AddRow(2, 1, 2, 4, 12, "Downtown", "North York").
			AddRow(3, 1, 5, 3, 9, "Etobicoke", "East York"))

	svc := RouteService{Routes: repositories.RouteRepository{DB: dbc}}
	routes, sources, err := svc.ListForDriver(1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(routes))
	}
	if routes[0].SourceAreaName != "Downtown" || routes[0].TargetAreaName != "East York" {
		t.Fatalf("area names not resolved: %+v", routes[0])
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 distinct sources, got %d", len(sources))
	}
	if sources[0].ID != 2 || sources[1].ID != 5 {
		t.Fatalf("wrong sources: %+v", sources)
	}
}
