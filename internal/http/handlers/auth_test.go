package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rideshare/internal/config"
	"rideshare/internal/http/middleware"
	"rideshare/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testTemplates = `
{{define "user_signup.tmpl"}}signup:{{.Form.email}}:{{range .ErrorMessages}}{{.}}{{end}}{{end}}
{{define "user_login.tmpl"}}login:{{.Form.email}}:{{range .ErrorMessages}}{{.}}{{end}}{{end}}
{{define "change_password.tmpl"}}change:{{range .ErrorMessages}}{{.}}{{end}}{{end}}
`

type handlerFixture struct {
	h    Handlers
	mock sqlmock.Sqlmock
	r    *gin.Engine
}

func newFixture(t *testing.T) handlerFixture {
	t.Helper()
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { dbc.Close() })

	manager := middleware.SessionManager{
		Sessions: repositories.SessionRepository{DB: dbc},
		Secret:   []byte("test-secret"),
		TTL:      time.Hour,
	}
	h := New(config.Env{UploadDir: t.TempDir()}, manager,
		repositories.AccountRepository{DB: dbc},
		repositories.AreaRepository{DB: dbc},
		repositories.RouteRepository{DB: dbc},
		repositories.BookingRepository{DB: dbc})

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("t").Parse(testTemplates)))
	return handlerFixture{h: h, mock: mock, r: r}
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectAreaList(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM areas").
		WillReturnRows(sqlmock.NewRows([]string{"area_id", "area_name"}).
			AddRow(1, "Downtown"))
}

func TestSignupConfirmMismatchEchoesFormWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.r.POST("/user-signup", f.h.SignupUser)

	expectAreaList(f.mock)

	w := postForm(f.r, "/user-signup", url.Values{
		"name":            {"Jo"},
		"email":           {"jo@example.com"},
		"phoneNumber":     {"555"},
		"password":        {"secret"},
		"confirmPassword": {"other"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected re-render, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Password confirmation failed.") {
		t.Fatalf("missing confirmation message: %q", body)
	}
	if !strings.Contains(body, "jo@example.com") {
		t.Fatalf("submitted email must be echoed: %q", body)
	}
	if strings.Contains(body, "secret") || strings.Contains(body, "other") {
		t.Fatalf("secrets leaked into the page: %q", body)
	}
	// only the area list query may run, never an account insert
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected writes: %v", err)
	}
}

func TestLoginFailureGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.r.POST("/user-login", f.h.LoginUser)

	f.mock.ExpectQuery("FROM users WHERE email").WithArgs("jo@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	w := postForm(f.r, "/user-login", url.Values{
		"email":    {"jo@example.com"},
		"password": {"whatever"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected re-render, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email or password is incorrect.") {
		t.Fatalf("missing generic message: %q", w.Body.String())
	}
}

func TestDuplicateKeyMessage(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	msg, ok := duplicateMessage(dup, "email")
	if !ok {
		t.Fatalf("1062 must be recognized as a duplicate")
	}
	if msg != "EMAIL already exists!" {
		t.Fatalf("unexpected message: %q", msg)
	}

	if _, ok := duplicateMessage(&mysql.MySQLError{Number: 1064}, "email"); ok {
		t.Fatalf("non-duplicate MySQL errors must not map to the message")
	}
}

func TestEchoFormStripsSecrets(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/user-signup",
		strings.NewReader("email=jo%40example.com&password=secret&confirmPassword=secret&oldPassword=old"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	echo := echoForm(c)
	if echo["email"] != "jo@example.com" {
		t.Fatalf("email not echoed: %+v", echo)
	}
	for _, secret := range []string{"password", "confirmPassword", "oldPassword"} {
		if _, ok := echo[secret]; ok {
			t.Fatalf("%s must be stripped from the echo", secret)
		}
	}
}
