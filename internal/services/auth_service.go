package services

import (
	"strings"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword is the one place plaintext secrets are turned into stored
// hashes. Explicit call sites, no storage-layer hook.
func HashPassword(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", domain.InternalError{Msg: "cannot hash an empty password"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword is the one-way comparison; the stored hash never travels the
// other direction.
func VerifyPassword(hash, plain string) bool {
	if plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ConfirmPassword gates signup and password-change forms.
func ConfirmPassword(password, confirm string) bool {
	return password != "" && password == confirm
}

type AuthService struct {
	Accounts  repositories.AccountRepository
	RequestID string
}

// credentialMessage never reveals which of the two fields was wrong.
func credentialMessage(kind models.AccountType) string {
	if kind == models.AccountTypeAdmin {
		return "Username or password is incorrect."
	}
	return "Email or password is incorrect."
}

// Login resolves a role-specific identifier (username for admins, email
// otherwise) and verifies the secret. Failures collapse into one generic
// validation message.
func (s AuthService) Login(kind models.AccountType, identifier, password string) (models.Account, error) {
	identifier = utils.TrimOrEmpty(identifier)
	badCredentials := domain.ValidationError{Msg: credentialMessage(kind)}

	var (
		account models.Account
		err     error
	)
	switch kind {
	case models.AccountTypeAdmin:
		account, err = s.Accounts.FindAdminByUsername(identifier)
	case models.AccountTypeUser:
		account, err = s.Accounts.FindUserByEmail(identifier)
	case models.AccountTypeDriver:
		account, err = s.Accounts.FindDriverByEmail(identifier)
	default:
		return nil, domain.InternalError{Msg: "unknown account type: " + string(kind)}
	}
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, badCredentials
		}
		return nil, err
	}

	if !VerifyPassword(account.PasswordHash(), password) {
		return nil, badCredentials
	}

	utils.LogEvent(s.RequestID, "auth", "login",
		"type="+string(kind))
	return account, nil
}

// SignupUser validates the confirmation, hashes and creates. On confirmation
// mismatch nothing is written and the caller re-renders with the echoed form.
func (s AuthService) SignupUser(u models.User, password, confirm string) (models.User, error) {
	if !ConfirmPassword(password, confirm) {
		return u, domain.ValidationError{Msg: "Password confirmation failed."}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return u, err
	}
	u.Password = hash
	id, err := s.Accounts.CreateUser(u)
	if err != nil {
		return u, err
	}
	u.ID = id
	u.Status = models.StatusPending
	utils.LogEvent(s.RequestID, "auth", "signup_user", "")
	return u, nil
}

func (s AuthService) SignupDriver(d models.Driver, password, confirm string) (models.Driver, error) {
	if !ConfirmPassword(password, confirm) {
		return d, domain.ValidationError{Msg: "Password confirmation failed."}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return d, err
	}
	d.Password = hash
	id, err := s.Accounts.CreateDriver(d)
	if err != nil {
		return d, err
	}
	d.ID = id
	d.Status = models.StatusPending
	utils.LogEvent(s.RequestID, "auth", "signup_driver", "")
	return d, nil
}

// ChangePassword verifies the old secret and the new confirmation before
// rehashing. The caller logs the account out afterwards.
func (s AuthService) ChangePassword(account models.Account, oldPassword, newPassword, confirm string) error {
	if !ConfirmPassword(newPassword, confirm) {
		return domain.ValidationError{Msg: "Failed to confirm password."}
	}
	if !VerifyPassword(account.PasswordHash(), oldPassword) {
		return domain.ValidationError{Msg: "Failed to confirm password."}
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Accounts.UpdatePassword(account.Kind(), account.AccountID(), hash); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", "type="+string(account.Kind()))
	return nil
}
