package api

import (
	"log"
	stdhttp "net/http"

	"rideshare/internal/config"
	"rideshare/internal/domain/models"
	h "rideshare/internal/http/handlers"
	"rideshare/internal/http/middleware"
	"rideshare/internal/repositories"

	"github.com/gin-gonic/gin"
)

var (
	adminOnly  = []models.AccountType{models.AccountTypeAdmin}
	userOnly   = []models.AccountType{models.AccountTypeUser}
	driverOnly = []models.AccountType{models.AccountTypeDriver}
)

// NewRouter wires the middleware chain and the full route surface. Role
// requirements mirror the auth table: role mismatches answer 404, LoggedIn
// routes bounce anonymous visitors home, NotLoggedIn routes drop any live
// session first.
func NewRouter(env config.Env, manager middleware.SessionManager,
	accounts repositories.AccountRepository, areas repositories.AreaRepository,
	routes repositories.RouteRepository, bookings repositories.BookingRepository) *gin.Engine {

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(), manager.Resolve())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.LoadHTMLGlob(env.TemplateGlob)
	r.Static("/public", "./public")

	r.NoRoute(func(c *gin.Context) {
		c.HTML(stdhttp.StatusNotFound, "404.tmpl", gin.H{})
	})

	auth := middleware.AuthMiddleware{Manager: manager, Accounts: accounts}
	hd := h.New(env, manager, accounts, areas, routes, bookings)

	r.GET("/api/health", hd.Health)

	// common to all
	r.GET("/", hd.Home)
	r.GET("/home", hd.Home)
	r.GET("/about", hd.About)
	r.GET("/blocked", auth.NotLoggedIn(), hd.Blocked)
	r.GET("/pending", auth.NotLoggedIn(), hd.Pending)
	r.GET("/dashboard", auth.LoggedIn(), hd.Dashboard)
	r.Any("/profile", auth.LoggedIn(), hd.Profile)
	r.Any("/change-password", auth.LoggedIn(), hd.ChangePassword)

	// session
	r.Any("/admin-login", auth.NotLoggedIn(), hd.LoginAdmin)
	r.Any("/user-login", auth.NotLoggedIn(), hd.LoginUser)
	r.Any("/driver-login", auth.NotLoggedIn(), hd.LoginDriver)
	r.GET("/logout", hd.Logout)

	// account
	r.Any("/driver-routes", auth.Auth(driverOnly, false), hd.DriverRoutes)
	r.Any("/user-signup", auth.NotLoggedIn(), hd.SignupUser)
	r.Any("/driver-signup", auth.NotLoggedIn(), hd.SignupDriver)

	r.Any("/admin-view-drivers", auth.Auth(adminOnly, false), hd.AdminViewDrivers)
	r.Any("/admin-view-users", auth.Auth(adminOnly, false), hd.AdminViewUsers)
	r.Any("/admin-manage-areas", auth.Auth(adminOnly, false), hd.AdminManageAreas)

	r.Any("/user-search-drivers", auth.Auth(userOnly, false), hd.UserSearchDrivers)
	r.POST("/make-booking", auth.Auth(userOnly, false), hd.CreateBooking)
	r.POST("/update-booking", auth.LoggedIn(), hd.ChangeBookingStatus)
	r.POST("/rate-booking", auth.Auth(userOnly, false), hd.ChangeBookingRating)
	r.GET("/booking-invoice", auth.Auth(userOnly, false), hd.BookingInvoice)

	return r
}
