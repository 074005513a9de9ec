package services

import (
	"strconv"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"
)

type BookingService struct {
	Bookings  repositories.BookingRepository
	RequestID string
}

// Create writes a pending booking. Missing driver or date is a silent no-op
// upstream; this layer only sees complete requests.
func (s BookingService) Create(b models.Booking) (int64, error) {
	if b.DriverID == 0 || b.UserID == 0 || b.BookingDate == "" {
		return 0, domain.ValidationError{Msg: "booking needs a driver and a date"}
	}
	id, err := s.Bookings.Create(b)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "booking", "create",
		"driver_id="+strconv.FormatInt(b.DriverID, 10)+" date="+b.BookingDate)
	return id, nil
}

// ChangeStatus patches by primary key with no ownership predicate; actingID
// is logged so the permissive update leaves an audit trail.
func (s BookingService) ChangeStatus(bookingID int64, status models.BookingStatus, actingID int64) error {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingRejected, models.BookingClosed:
	default:
		return domain.ValidationError{Field: "newStatus", Msg: "unknown booking status"}
	}
	if err := s.Bookings.UpdateStatus(bookingID, status); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "change_status",
		"booking_id="+strconv.FormatInt(bookingID, 10)+" status="+string(status)+
			" acting_account="+strconv.FormatInt(actingID, 10))
	return nil
}

// ChangeRating sets the user's rating. Meaningful once a booking is Closed,
// but the update itself is unconditional.
func (s BookingService) ChangeRating(bookingID int64, rating int, actingID int64) error {
	if err := s.Bookings.UpdateRating(bookingID, rating); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "change_rating",
		"booking_id="+strconv.FormatInt(bookingID, 10)+
			" acting_account="+strconv.FormatInt(actingID, 10))
	return nil
}

func (s BookingService) ListForUser(userID int64) ([]models.Booking, error) {
	return s.Bookings.ListByUser(userID)
}

func (s BookingService) ListForDriver(driverID int64) ([]models.Booking, error) {
	return s.Bookings.ListByDriver(driverID)
}
