package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rideshare/internal/config"
	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// Handlers carries the injected stores every route handler needs. Services
// are built per request so they pick up the request id for logging.
type Handlers struct {
	Env      config.Env
	Manager  middleware.SessionManager
	Accounts repositories.AccountRepository
	Areas    repositories.AreaRepository
	Routes   repositories.RouteRepository
	Bookings repositories.BookingRepository
}

func New(env config.Env, manager middleware.SessionManager,
	accounts repositories.AccountRepository, areas repositories.AreaRepository,
	routes repositories.RouteRepository, bookings repositories.BookingRepository) Handlers {
	return Handlers{
		Env:      env,
		Manager:  manager,
		Accounts: accounts,
		Areas:    areas,
		Routes:   routes,
		Bookings: bookings,
	}
}

// render builds the shared template context: the logged-in account, flash
// messages and echoed form values from the session (consumed on read),
// tomorrow's date for booking forms and, on request, the area list.
func (h Handlers) render(c *gin.Context, status int, page string, ctx gin.H) {
	if ctx == nil {
		ctx = gin.H{}
	}

	if account := middleware.AccountFromContext(c); account != nil {
		ctx["Account"] = account
		ctx["AccountType"] = string(account.Kind())
	}
	ctx["Tomorrow"] = utils.Tomorrow()
	ctx["CarTypes"] = models.CarTypes
	// templates index .Form unconditionally
	if form, ok := ctx["Form"].(map[string]string); !ok || form == nil {
		ctx["Form"] = map[string]string{}
	}

	messages, _ := ctx["ErrorMessages"].([]string)
	if sess := middleware.SessionFromContext(c); sess != nil {
		if len(sess.Messages) > 0 {
			messages = append(sess.Messages, messages...)
		}
		if len(sess.FormEcho) > 0 {
			ctx["Form"] = sess.FormEcho
		}
		if len(sess.Messages) > 0 || len(sess.FormEcho) > 0 {
			sess.Messages = nil
			sess.FormEcho = nil
			if err := h.Manager.Persist(sess); err != nil {
				utils.LogEvent(middleware.GetRequestID(c), "session", "clear_flash", err.Error())
			}
		}
	}
	ctx["ErrorMessages"] = messages

	if include, ok := ctx["includeAreaList"].(bool); ok && include {
		delete(ctx, "includeAreaList")
		areas, err := h.Areas.List()
		if err != nil {
			h.serverError(c, err)
			return
		}
		ctx["Areas"] = areas
	}

	c.HTML(status, page, ctx)
}

// flashAndRedirect persists messages plus a secret-stripped form echo on the
// session, then redirects; the next render consumes them.
func (h Handlers) flashAndRedirect(c *gin.Context, target string, messages []string) {
	sess, err := h.Manager.Ensure(c)
	if err != nil {
		h.serverError(c, err)
		return
	}
	sess.Messages = messages
	sess.FormEcho = echoForm(c)
	if err := h.Manager.Persist(sess); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// echoForm captures submitted values for re-display with secret fields
// stripped before anything is stored.
func echoForm(c *gin.Context) map[string]string {
	if c.Request == nil {
		return nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}
	echo := map[string]string{}
	for key, values := range c.Request.PostForm {
		switch key {
		case "password", "confirmPassword", "oldPassword":
			continue
		}
		if len(values) > 0 {
			echo[key] = values[0]
		}
	}
	if len(echo) == 0 {
		return nil
	}
	return echo
}

func (h Handlers) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

func (h Handlers) redirectDashboard(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h Handlers) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.tmpl", gin.H{})
}

func (h Handlers) serverError(c *gin.Context, err error) {
	utils.LogEvent(middleware.GetRequestID(c), "http", "server_error", err.Error())
	c.HTML(http.StatusInternalServerError, "500.tmpl", gin.H{})
	c.Abort()
}

// bindLogin attaches an account to the request's session after a successful
// credential check (login and signup auto-login share this path).
func (h Handlers) bindLogin(c *gin.Context, account models.Account) error {
	sess, err := h.Manager.Ensure(c)
	if err != nil {
		return err
	}
	sess.AccountType = account.Kind()
	sess.AccountID = account.AccountID()
	sess.Messages = nil
	sess.FormEcho = nil
	return h.Manager.Persist(sess)
}

func (h Handlers) saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	return utils.SaveUpload(c, fh, h.Env.UploadDir)
}

func parseDateField(s string) (time.Time, error) {
	return utils.ParseDate(s)
}

func formInt64(c *gin.Context, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(c.PostForm(key)), 10, 64)
	return n
}

// duplicateMessage turns a MySQL unique-key violation into the user-facing
// "<FIELD> already exists!" message; any other error passes through as-is.
func duplicateMessage(err error, field string) (string, bool) {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return strings.ToUpper(field) + " already exists!", true
	}
	return "", false
}
