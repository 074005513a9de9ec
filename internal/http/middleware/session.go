package middleware

import (
	"net/http"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries a signed token wrapping the session id. The
	// authoritative session state lives in the sessions table, so a login
	// can always be revoked server-side.
	SessionCookie = "rs_session"

	ctxSessionKey = "session"
	ctxAccountKey = "account"
)

// SessionManager resolves, issues and destroys sessions. Destruction is
// synchronous; it completes before any redirect is written.
type SessionManager struct {
	Sessions repositories.SessionRepository
	Secret   []byte
	TTL      time.Duration
}

// Resolve loads the session referenced by the request cookie, when present
// and valid, into the gin context. Anonymous requests pass through.
func (m SessionManager) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		id, err := m.decodeToken(raw)
		if err != nil {
			// A cookie we cannot verify is treated as absent.
			m.clearCookie(c)
			c.Next()
			return
		}
		sess, err := m.Sessions.Get(id)
		if err != nil {
			if !domain.IsNotFound(err) {
				utils.LogEvent(GetRequestID(c), "session", "load", "lookup failed")
			}
			m.clearCookie(c)
			c.Next()
			return
		}
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// Ensure returns the request's session, creating an anonymous one when none
// exists yet (needed to persist flash state across a redirect).
func (m SessionManager) Ensure(c *gin.Context) (*models.Session, error) {
	if sess := SessionFromContext(c); sess != nil {
		return sess, nil
	}
	sess := &models.Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(m.TTL),
	}
	if err := m.Sessions.Save(sess); err != nil {
		return nil, err
	}
	if err := m.setCookie(c, sess); err != nil {
		return nil, err
	}
	c.Set(ctxSessionKey, sess)
	return sess, nil
}

// Persist writes the session's current state back to the store.
func (m SessionManager) Persist(sess *models.Session) error {
	return m.Sessions.Save(sess)
}

// Destroy deletes the session row and clears the cookie. Destroying with no
// session is a no-op, so logout stays idempotent.
func (m SessionManager) Destroy(c *gin.Context) error {
	sess := SessionFromContext(c)
	if sess == nil {
		return nil
	}
	if err := m.Sessions.Destroy(sess.ID); err != nil {
		return err
	}
	c.Set(ctxSessionKey, (*models.Session)(nil))
	m.clearCookie(c)
	return nil
}

func (m SessionManager) setCookie(c *gin.Context, sess *models.Session) error {
	token, err := m.encodeToken(sess)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookie, token, int(time.Until(sess.ExpiresAt).Seconds()), "/", "", false, true)
	return nil
}

func (m SessionManager) clearCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

func (m SessionManager) encodeToken(sess *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"exp": sess.ExpiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m SessionManager) decodeToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}

// SessionFromContext returns the resolved session, or nil for anonymous
// requests.
func SessionFromContext(c *gin.Context) *models.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}

// SetAccount replaces the context account, used after profile writes so the
// response renders fresh values.
func SetAccount(c *gin.Context, account models.Account) {
	c.Set(ctxAccountKey, account)
}

// AccountFromContext returns the account attached by the auth middleware, or
// nil when the request is not authenticated.
func AccountFromContext(c *gin.Context) models.Account {
	if v, ok := c.Get(ctxAccountKey); ok {
		if acc, ok := v.(models.Account); ok {
			return acc
		}
	}
	return nil
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
	c.Abort()
}
