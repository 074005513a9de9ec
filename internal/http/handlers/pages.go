package handlers

import (
	"net/http"

	"rideshare/internal/config"
	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/health: unauthenticated liveness probe, includes a DB ping.
func (h Handlers) Health(c *gin.Context) {
	if err := config.EnsureDB(h.Env); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET / and /home: landing page with the top-5 drivers by closed bookings.
func (h Handlers) Home(c *gin.Context) {
	svc := services.SearchService{
		Accounts:  h.Accounts,
		Routes:    h.Routes,
		Bookings:  h.Bookings,
		RequestID: middleware.GetRequestID(c),
	}
	drivers, err := svc.TopDrivers()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "home.tmpl", gin.H{"Drivers": drivers})
}

// GET /about
func (h Handlers) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.tmpl", nil)
}

// GET /blocked
func (h Handlers) Blocked(c *gin.Context) {
	h.render(c, http.StatusOK, "blocked.tmpl", nil)
}

// GET /pending
func (h Handlers) Pending(c *gin.Context) {
	h.render(c, http.StatusOK, "pending.tmpl", nil)
}

// GET /dashboard: role-specific landing. Admins have no dashboard and are
// sent back to the home page.
func (h Handlers) Dashboard(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	if account == nil || account.Kind() == models.AccountTypeAdmin {
		h.redirectHome(c)
		return
	}

	svc := services.BookingService{Bookings: h.Bookings, RequestID: middleware.GetRequestID(c)}
	switch account.Kind() {
	case models.AccountTypeUser:
		bookings, err := svc.ListForUser(account.AccountID())
		if err != nil {
			h.serverError(c, err)
			return
		}
		h.render(c, http.StatusOK, "user_dashboard.tmpl", gin.H{"Bookings": bookings})
	case models.AccountTypeDriver:
		bookings, err := svc.ListForDriver(account.AccountID())
		if err != nil {
			h.serverError(c, err)
			return
		}
		h.render(c, http.StatusOK, "driver_dashboard.tmpl", gin.H{"Bookings": bookings})
	default:
		h.redirectHome(c)
	}
}
