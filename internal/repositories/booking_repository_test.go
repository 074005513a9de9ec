package repositories

import (
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{"booking_id", "user_id", "driver_id", "source_area_id",
	"target_area_id", "booking_date", "status", "rating", "bill",
	"user_name", "driver_name", "src_name", "tgt_name"}

func TestBookingListByUserRatingNullable(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(2, 9, 1, 5, 4, "2026-09-01", "Closed", 4, 30,
				"Jo", "Sam", "Old Montreal", "Downtown").
			AddRow(1, 9, 1, 5, 4, "2026-08-20", "Pending", nil, 15,
				"Jo", "Sam", "Old Montreal", "Downtown"))

	repo := BookingRepository{DB: dbc}
	bookings, err := repo.ListByUser(9)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].Rating == nil || *bookings[0].Rating != 4 {
		t.Fatalf("rated booking lost its rating: %+v", bookings[0].Rating)
	}
	if bookings[1].Rating != nil {
		t.Fatalf("unrated booking must have nil rating, got %d", *bookings[1].Rating)
	}
	if bookings[0].DriverName != "Sam" || bookings[0].SourceAreaName != "Old Montreal" {
		t.Fatalf("joined names not populated: %+v", bookings[0])
	}
}

func TestBookingGetForUserScopedToOwner(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	// someone else's booking id with this user's id yields no row
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(3), int64(9)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: dbc}
	_, err = repo.GetForUser(3, 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for foreign booking, got %v", err)
	}
}

func TestBookingCreateStartsPending(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(9), int64(1), int64(5), int64(4), "2026-09-01",
			models.BookingPending, int64(15)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := BookingRepository{DB: dbc}
	id, err := repo.Create(models.Booking{
		UserID: 9, DriverID: 1, SourceAreaID: 5, TargetAreaID: 4,
		BookingDate: "2026-09-01", Bill: 15,
		// submitted status is ignored, inserts always start Pending
		Status: models.BookingConfirmed,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 11 {
		t.Fatalf("wrong insert id: %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
