package handlers

import (
	"net/http"
	"strconv"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handlers) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{Bookings: h.Bookings, RequestID: middleware.GetRequestID(c)}
}

// ALL /user-search-drivers: runs the matcher when the three query fields
// are present; otherwise just renders the empty search form.
func (h Handlers) UserSearchDrivers(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	user, ok := account.(models.User)
	if !ok {
		h.notFound(c)
		return
	}

	var matches []models.DriverMatch
	date := c.PostForm("date")
	sourceAreaID := formInt64(c, "sourceareaId")
	targetAreaID := formInt64(c, "targetareaId")

	if date != "" && sourceAreaID != 0 && targetAreaID != 0 {
		svc := services.SearchService{
			Accounts:  h.Accounts,
			Routes:    h.Routes,
			Bookings:  h.Bookings,
			RequestID: middleware.GetRequestID(c),
		}
		var err error
		matches, err = svc.Search(services.SearchQuery{
			SourceAreaID: sourceAreaID,
			TargetAreaID: targetAreaID,
			Date:         date,
			UserID:       user.ID,
		})
		if err != nil {
			h.serverError(c, err)
			return
		}
	}

	h.render(c, http.StatusOK, "user_search_drivers.tmpl", gin.H{
		"Drivers":         matches,
		"FoundRides":      len(matches) > 0,
		"Date":            date,
		"includeAreaList": true,
	})
}

// POST /make-booking: creates a pending booking; a missing driver or date
// is a silent no-op redirect, matching the form's happy-path-only contract.
func (h Handlers) CreateBooking(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	user, ok := account.(models.User)
	if !ok {
		h.notFound(c)
		return
	}

	driverID := formInt64(c, "driverId")
	date := c.PostForm("date")
	if driverID != 0 && date != "" {
		_, err := h.bookingService(c).Create(models.Booking{
			UserID:       user.ID,
			DriverID:     driverID,
			SourceAreaID: formInt64(c, "sourceareaId"),
			TargetAreaID: formInt64(c, "targetareaId"),
			BookingDate:  date,
			Bill:         formInt64(c, "ratePerDay"),
		})
		if err != nil && !domain.IsValidation(err) {
			h.serverError(c, err)
			return
		}
	}
	h.redirectDashboard(c)
}

// POST /update-booking: status transition by booking id. Any logged-in
// account may hit this; the permissive update is a preserved behavior and
// the acting account is logged.
func (h Handlers) ChangeBookingStatus(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	if account == nil {
		h.redirectHome(c)
		return
	}

	bookingID := formInt64(c, "bookingId")
	newStatus := c.PostForm("newStatus")
	if bookingID != 0 && newStatus != "" {
		err := h.bookingService(c).ChangeStatus(bookingID,
			models.BookingStatus(newStatus), account.AccountID())
		if err != nil && !domain.IsValidation(err) {
			h.serverError(c, err)
			return
		}
	}
	h.redirectDashboard(c)
}

// POST /rate-booking
func (h Handlers) ChangeBookingRating(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	user, ok := account.(models.User)
	if !ok {
		h.notFound(c)
		return
	}

	bookingID := formInt64(c, "bookingId")
	rating, _ := strconv.Atoi(c.PostForm("rating"))
	if bookingID != 0 && rating != 0 {
		if err := h.bookingService(c).ChangeRating(bookingID, rating, user.ID); err != nil {
			h.serverError(c, err)
			return
		}
	}
	h.redirectDashboard(c)
}

// GET /booking-invoice?bookingId=N: the user's own booking as a PDF.
func (h Handlers) BookingInvoice(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	user, ok := account.(models.User)
	if !ok {
		h.notFound(c)
		return
	}

	bookingID, _ := strconv.ParseInt(c.Query("bookingId"), 10, 64)
	if bookingID == 0 {
		h.notFound(c)
		return
	}

	svc := services.DocsService{Bookings: h.Bookings, RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.GenerateInvoice(bookingID, user.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
