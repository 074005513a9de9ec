package services

import (
	"bytes"
	"fmt"
	"strings"

	"rideshare/internal/repositories"
	"rideshare/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a booking's bill as a PDF invoice. Invoices are scoped
// to the requesting user; there is no cross-account read here.
type DocsService struct {
	Bookings  repositories.BookingRepository
	RequestID string
}

func (s DocsService) GenerateInvoice(bookingID, userID int64) ([]byte, string, error) {
	booking, err := s.Bookings.GetForUser(bookingID, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Invoice", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking       : #%d", booking.ID),
		fmt.Sprintf("Date          : %s", safe(booking.BookingDate)),
		fmt.Sprintf("Passenger     : %s", safe(booking.UserName)),
		fmt.Sprintf("Driver        : %s", safe(booking.DriverName)),
		fmt.Sprintf("Route         : %s -> %s", safe(booking.SourceAreaName), safe(booking.TargetAreaName)),
		fmt.Sprintf("Status        : %s", booking.Status),
		fmt.Sprintf("Bill          : %d", booking.Bill),
	}
	if booking.Rating != nil {
		lines = append(lines, fmt.Sprintf("Rating        : %d/5", *booking.Rating))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The bill covers one booked day at the route's daily rate.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%d.pdf", booking.ID)
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
