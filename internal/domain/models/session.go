package models

import "time"

// Session binds an opaque token to a logged-in account. Rows live in the
// sessions table so logins survive restarts; a row past ExpiresAt is treated
// as absent. FormEcho and Messages are the flash state consumed by the next
// render (secrets are stripped before they are stored).
type Session struct {
	ID          string
	AccountType AccountType
	AccountID   int64
	FormEcho    map[string]string
	Messages    []string
	ExpiresAt   time.Time
}

// LoggedIn reports whether the session is bound to an account.
func (s *Session) LoggedIn() bool {
	return s != nil && s.AccountType.Valid() && s.AccountID > 0
}
