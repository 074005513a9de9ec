package handlers

import (
	"net/http"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handlers) authService(c *gin.Context) services.AuthService {
	return services.AuthService{Accounts: h.Accounts, RequestID: middleware.GetRequestID(c)}
}

// login renders the role-specific login page and handles its POST. A failed
// credential check re-renders with one generic message, never revealing
// which field was wrong.
func (h Handlers) login(c *gin.Context, kind models.AccountType, identifierField, page string) {
	var messages []string
	if c.Request.Method == http.MethodPost {
		account, err := h.authService(c).Login(kind, c.PostForm(identifierField), c.PostForm("password"))
		if err == nil {
			if err := h.bindLogin(c, account); err != nil {
				h.serverError(c, err)
				return
			}
			h.redirectDashboard(c)
			return
		}
		if !domain.IsValidation(err) {
			h.serverError(c, err)
			return
		}
		messages = []string{err.Error()}
	}
	h.render(c, http.StatusOK, page, gin.H{"ErrorMessages": messages, "Form": echoForm(c)})
}

// ALL /admin-login
func (h Handlers) LoginAdmin(c *gin.Context) {
	h.login(c, models.AccountTypeAdmin, "username", "admin_login.tmpl")
}

// ALL /user-login
func (h Handlers) LoginUser(c *gin.Context) {
	h.login(c, models.AccountTypeUser, "email", "user_login.tmpl")
}

// ALL /driver-login
func (h Handlers) LoginDriver(c *gin.Context) {
	h.login(c, models.AccountTypeDriver, "email", "driver_login.tmpl")
}

// GET /logout: destroys the session and goes home. Safe to repeat: a second
// logout finds no session and still redirects.
func (h Handlers) Logout(c *gin.Context) {
	if err := h.Manager.Destroy(c); err != nil {
		h.serverError(c, err)
		return
	}
	h.redirectHome(c)
}

// ALL /user-signup: multipart form, optional profileImage. Confirmation is
// checked before any account insert; on mismatch the submitted values
// (minus secrets) are preserved for re-display.
func (h Handlers) SignupUser(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.render(c, http.StatusOK, "user_signup.tmpl", gin.H{"includeAreaList": true})
		return
	}

	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")
	if !services.ConfirmPassword(password, confirm) {
		h.render(c, http.StatusOK, "user_signup.tmpl", gin.H{
			"includeAreaList": true,
			"ErrorMessages":   []string{"Password confirmation failed."},
			"Form":            echoForm(c),
		})
		return
	}

	u := models.User{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		AreaID:      formInt64(c, "areaId"),
	}
	if fh, err := c.FormFile("profileImage"); err == nil && fh != nil {
		name, err := h.saveUpload(c, fh)
		if err != nil {
			h.render(c, http.StatusOK, "user_signup.tmpl", gin.H{
				"includeAreaList": true,
				"ErrorMessages":   []string{"Failed to upload file."},
				"Form":            echoForm(c),
			})
			return
		}
		u.ProfileImage = name
	}

	created, err := h.authService(c).SignupUser(u, password, confirm)
	if err != nil {
		if msg, ok := duplicateMessage(err, "email"); ok {
			h.flashAndRedirect(c, c.Request.URL.Path, []string{msg})
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.bindLogin(c, created); err != nil {
		h.serverError(c, err)
		return
	}
	// New accounts start Pending; the dashboard's status gate routes them to
	// the pending page on first load.
	h.redirectDashboard(c)
}

// ALL /driver-signup: multipart form with profileImage and carImage fields.
func (h Handlers) SignupDriver(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.render(c, http.StatusOK, "driver_signup.tmpl", nil)
		return
	}

	password := c.PostForm("password")
	confirm := c.PostForm("confirmPassword")
	if !services.ConfirmPassword(password, confirm) {
		h.render(c, http.StatusOK, "driver_signup.tmpl", gin.H{
			"ErrorMessages": []string{"Password confirmation failed."},
			"Form":          echoForm(c),
		})
		return
	}

	insurance, err := parseDateField(c.PostForm("insuranceValidUpto"))
	if err != nil {
		h.render(c, http.StatusOK, "driver_signup.tmpl", gin.H{
			"ErrorMessages": []string{"Please fill the form correctly and ensure nothing is missing."},
			"Form":          echoForm(c),
		})
		return
	}

	d := models.Driver{
		Name:                  c.PostForm("name"),
		Email:                 c.PostForm("email"),
		PhoneNumber:           c.PostForm("phoneNumber"),
		DLNumber:              c.PostForm("dlNumber"),
		CarCapacity:           int(formInt64(c, "carCapacity")),
		CarType:               c.PostForm("carType"),
		CarModel:              c.PostForm("carModel"),
		CarColor:              c.PostForm("carColor"),
		CarRegistrationNumber: c.PostForm("carRegistrationNumber"),
		InsuranceValidUpto:    insurance,
	}
	if d.CarCapacity <= 0 {
		d.CarCapacity = 1
	}

	for field, target := range map[string]*string{"profileImage": &d.ProfileImage, "carImage": &d.CarImage} {
		fh, err := c.FormFile(field)
		if err != nil || fh == nil {
			continue
		}
		name, err := h.saveUpload(c, fh)
		if err != nil {
			h.render(c, http.StatusOK, "driver_signup.tmpl", gin.H{
				"ErrorMessages": []string{"Failed to upload file."},
				"Form":          echoForm(c),
			})
			return
		}
		*target = name
	}

	created, err := h.authService(c).SignupDriver(d, password, confirm)
	if err != nil {
		if msg, ok := duplicateMessage(err, "email"); ok {
			h.flashAndRedirect(c, c.Request.URL.Path, []string{msg})
			return
		}
		h.serverError(c, err)
		return
	}

	if err := h.bindLogin(c, created); err != nil {
		h.serverError(c, err)
		return
	}
	h.redirectDashboard(c)
}

// ALL /change-password: verifies the old secret and the new confirmation,
// then forces a fresh login.
func (h Handlers) ChangePassword(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		account := middleware.AccountFromContext(c)
		err := h.authService(c).ChangePassword(account,
			c.PostForm("oldPassword"), c.PostForm("password"), c.PostForm("confirmPassword"))
		if err == nil {
			h.Logout(c)
			return
		}
		if !domain.IsValidation(err) {
			h.serverError(c, err)
			return
		}
		h.render(c, http.StatusOK, "change_password.tmpl", gin.H{"ErrorMessages": []string{err.Error()}})
		return
	}
	h.render(c, http.StatusOK, "change_password.tmpl", nil)
}
