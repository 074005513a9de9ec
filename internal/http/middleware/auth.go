package middleware

import (
	"net/http"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates routes on the session's account type and moderation
// status. Role mismatches answer 404 so unauthorized roles cannot map the
// route surface.
type AuthMiddleware struct {
	Manager  SessionManager
	Accounts repositories.AccountRepository
}

// Auth requires the session to be bound to one of the given account types.
// With dontFail the chain continues without an attached account instead of
// answering 404, letting a later handler decide (fallthrough routing).
func (a AuthMiddleware) Auth(required []models.AccountType, dontFail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess.LoggedIn() && typeAllowed(sess.AccountType, required) {
			a.attachAccount(c, sess)
			return
		}
		if dontFail {
			c.Next()
			return
		}
		renderNotFound(c)
	}
}

// LoggedIn admits any authenticated account; anonymous requests are sent
// home (a soft failure, not an error).
func (a AuthMiddleware) LoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if !sess.LoggedIn() {
			redirectHome(c)
			return
		}
		a.attachAccount(c, sess)
	}
}

// NotLoggedIn destroys any live login before continuing, so login and signup
// pages always start from a clean session.
func (a AuthMiddleware) NotLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess.LoggedIn() {
			if err := a.Manager.Destroy(c); err != nil {
				renderServerError(c, err)
				return
			}
		}
		c.Next()
	}
}

// attachAccount loads the full record (hash included, later password flows
// need it) and applies the status gates. Blocked and Pending destroy the
// session before redirecting; the destroy completes before the response.
func (a AuthMiddleware) attachAccount(c *gin.Context, sess *models.Session) {
	account, err := a.Accounts.LoadByTypeID(sess.AccountType, sess.AccountID)
	if err != nil {
		if domain.IsNotFound(err) {
			// Session points at a deleted account; drop it.
			_ = a.Manager.Destroy(c)
			redirectHome(c)
			return
		}
		renderServerError(c, err)
		return
	}

	switch account.AccountStatus() {
	case models.StatusBlocked:
		if err := a.Manager.Destroy(c); err != nil {
			renderServerError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/blocked")
		c.Abort()
		return
	case models.StatusPending:
		if err := a.Manager.Destroy(c); err != nil {
			renderServerError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/pending")
		c.Abort()
		return
	}

	c.Set(ctxAccountKey, account)
	c.Next()
}

func typeAllowed(t models.AccountType, required []models.AccountType) bool {
	for _, r := range required {
		if t == r {
			return true
		}
	}
	return false
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.tmpl", gin.H{})
	c.Abort()
}

func renderServerError(c *gin.Context, err error) {
	utils.LogEvent(GetRequestID(c), "http", "server_error", err.Error())
	c.HTML(http.StatusInternalServerError, "500.tmpl", gin.H{})
	c.Abort()
}
