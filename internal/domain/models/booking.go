package models

// BookingStatus is driven by the driver (Confirmed/Rejected/Closed); rating is
// set by the user once a booking is Closed.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingRejected  BookingStatus = "Rejected"
	BookingClosed    BookingStatus = "Closed"
)

// Booking is a user's reservation against a driver's route for one day.
type Booking struct {
	ID           int64
	UserID       int64
	DriverID     int64
	SourceAreaID int64
	TargetAreaID int64
	// BookingDate is the requested day, YYYY-MM-DD.
	BookingDate string
	Status      BookingStatus
	// Rating is nil until the user rates a closed booking.
	Rating *int
	Bill   int64

	// Joined display fields, populated by dashboard listings.
	UserName       string
	DriverName     string
	SourceAreaName string
	TargetAreaName string
}

// Area is a named location node routes and bookings anchor to.
type Area struct {
	ID   int64
	Name string
}

// Route is a driver-declared lane between two areas. The (driver, source,
// target) triple is unique; duplicates are rejected before insert.
type Route struct {
	ID           int64
	DriverID     int64
	SourceAreaID int64
	TargetAreaID int64
	RatePerDay   int64

	SourceAreaName string
	TargetAreaName string
}

// DriverMatch is one search result: an eligible driver, the route that matched
// the query and the closed-booking count used for ranking.
type DriverMatch struct {
	Driver             Driver
	Route              Route
	ClosedBookingCount int
}
