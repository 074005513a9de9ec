package services

import (
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	return string(hash)
}

func TestConfirmPassword(t *testing.T) {
	if !ConfirmPassword("secret", "secret") {
		t.Fatalf("matching confirmation rejected")
	}
	if ConfirmPassword("secret", "other") {
		t.Fatalf("mismatched confirmation accepted")
	}
	if ConfirmPassword("", "") {
		t.Fatalf("empty password must not confirm")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "secret" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "secret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
	if VerifyPassword(hash, "") {
		t.Fatalf("empty password accepted")
	}
	if _, err := HashPassword("  "); !domain.IsInternal(err) {
		t.Fatalf("blank password should not hash, got %v", err)
	}
}

func TestLoginWrongPasswordGenericMessage(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	hash := mustHash(t, "secret")
	mock.ExpectQuery("SELECT admin_id, username, password_hash").WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id", "username", "password_hash"}).
			AddRow(1, "admin", hash))

	svc := AuthService{Accounts: repositories.AccountRepository{DB: dbc}}
	_, err = svc.Login(models.AccountTypeAdmin, "admin", "wrong")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Username or password is incorrect." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginUnknownEmailSameMessageAsWrongPassword(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("FROM users WHERE email").WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	svc := AuthService{Accounts: repositories.AccountRepository{DB: dbc}}
	_, err = svc.Login(models.AccountTypeUser, "nobody@example.com", "whatever")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Email or password is incorrect." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginSuccessReturnsAccount(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	hash := mustHash(t, "secret")
	mock.ExpectQuery("SELECT admin_id, username, password_hash").WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id", "username", "password_hash"}).
			AddRow(1, "admin", hash))

	svc := AuthService{Accounts: repositories.AccountRepository{DB: dbc}}
	account, err := svc.Login(models.AccountTypeAdmin, "admin", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if account.Kind() != models.AccountTypeAdmin || account.AccountID() != 1 {
		t.Fatalf("wrong account returned: %v %d", account.Kind(), account.AccountID())
	}
}

func TestSignupUserConfirmationMismatchWritesNothing(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	svc := AuthService{Accounts: repositories.AccountRepository{DB: dbc}}
	_, err = svc.SignupUser(models.User{Name: "Jo", Email: "jo@example.com"}, "secret", "other")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Password confirmation failed." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no queries expected: %v", err)
	}
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	hash := mustHash(t, "old")
	svc := AuthService{}
	err := svc.ChangePassword(models.User{ID: 1, Password: hash}, "wrong", "new", "new")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Failed to confirm password." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestChangePasswordRehashesAndStores(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer dbc.Close()

	hash := mustHash(t, "old")
	mock.ExpectExec("UPDATE users SET password_hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AuthService{Accounts: repositories.AccountRepository{DB: dbc}}
	if err := svc.ChangePassword(models.User{ID: 1, Password: hash}, "old", "new", "new"); err != nil {
		t.Fatalf("change password error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
