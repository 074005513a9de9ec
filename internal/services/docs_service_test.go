package services

import (
	"strings"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var invoiceCols = []string{"booking_id", "user_id", "driver_id", "source_area_id",
	"target_area_id", "booking_date", "status", "rating", "bill",
	"user_name", "driver_name", "src_name", "tgt_name"}

func TestGenerateInvoiceProducesPDF(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(7, 9, 1, 5, 4, "2026-09-01", "Closed", 5, 30,
				"Jo", "Sam", "Old Montreal", "Downtown"))

	svc := DocsService{Bookings: repositories.BookingRepository{DB: dbc}}
	data, filename, err := svc.GenerateInvoice(7, 9)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(data) < 4 || !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("output is not a PDF document")
	}
	if filename != "invoice-7.pdf" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestGenerateInvoiceForeignBookingNotFound(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows(invoiceCols))

	svc := DocsService{Bookings: repositories.BookingRepository{DB: dbc}}
	if _, _, err := svc.GenerateInvoice(7, 9); !domain.IsNotFound(err) {
		t.Fatalf("foreign booking must read as absent, got %v", err)
	}
}
