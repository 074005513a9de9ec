package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
)

// SessionRepository persists sessions in MySQL so logins survive restarts.
// A row past its expiry counts as absent and is removed on read.
type SessionRepository struct {
	DB *sql.DB
}

func (r SessionRepository) Get(id string) (*models.Session, error) {
	var (
		s       models.Session
		acType  sql.NullString
		acID    sql.NullInt64
		echoRaw sql.NullString
		msgsRaw sql.NullString
		expires time.Time
	)
	err := r.DB.QueryRow(`
		SELECT session_id, account_type, account_id, form_echo, messages, expires_at
		FROM sessions WHERE session_id = ?
	`, id).Scan(&s.ID, &acType, &acID, &echoRaw, &msgsRaw, &expires)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(expires) {
		_ = r.Destroy(id)
		return nil, domain.NotFoundError{Resource: "session"}
	}

	s.ExpiresAt = expires
	if acType.Valid {
		s.AccountType = models.AccountType(acType.String)
	}
	if acID.Valid {
		s.AccountID = acID.Int64
	}
	if echoRaw.Valid && echoRaw.String != "" {
		_ = json.Unmarshal([]byte(echoRaw.String), &s.FormEcho)
	}
	if msgsRaw.Valid && msgsRaw.String != "" {
		_ = json.Unmarshal([]byte(msgsRaw.String), &s.Messages)
	}
	return &s, nil
}

// Save upserts the full session row.
func (r SessionRepository) Save(s *models.Session) error {
	echo, err := json.Marshal(s.FormEcho)
	if err != nil {
		return err
	}
	msgs, err := json.Marshal(s.Messages)
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(`
		INSERT INTO sessions (session_id, account_type, account_id, form_echo, messages, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			account_type = VALUES(account_type),
			account_id = VALUES(account_id),
			form_echo = VALUES(form_echo),
			messages = VALUES(messages),
			expires_at = VALUES(expires_at)
	`, s.ID, nullIfBlank(string(s.AccountType)), nullIfZero(s.AccountID),
		string(echo), string(msgs), s.ExpiresAt)
	return err
}

// Destroy deletes the session row; deleting an absent row is a no-op.
func (r SessionRepository) Destroy(id string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE session_id = ?`, id)
	return err
}

// PurgeExpired removes stale rows; called opportunistically from bootstrap.
func (r SessionRepository) PurgeExpired() error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	return err
}

func nullIfBlank(s string) any {
	if s == "" {
		return nil
	}
	return s
}
