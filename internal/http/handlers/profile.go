package handlers

import (
	"net/http"

	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// ALL /profile: role-specific profile page. POST applies every non-empty
// submitted field; image uploads replace (and delete) the previous file.
// Admin accounts have no profile and bounce to the dashboard.
func (h Handlers) Profile(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	if account == nil {
		h.redirectHome(c)
		return
	}

	switch account.Kind() {
	case models.AccountTypeUser:
		h.userProfile(c, account.(models.User))
	case models.AccountTypeDriver:
		h.driverProfile(c, account.(models.Driver))
	default:
		h.redirectDashboard(c)
	}
}

func (h Handlers) userProfile(c *gin.Context, user models.User) {
	if c.Request.Method == http.MethodPost {
		fields := postedFields(c, "name", "phoneNumber", "areaId")

		if fh, err := c.FormFile("profileImage"); err == nil && fh != nil {
			name, err := h.saveUpload(c, fh)
			if err != nil {
				h.render(c, http.StatusOK, "user_profile.tmpl", gin.H{
					"includeAreaList": true,
					"ErrorMessages":   []string{"Failed to upload file."},
				})
				return
			}
			utils.RemoveUploadIfExists(h.Env.UploadDir, user.ProfileImage)
			fields["profileImage"] = name
		}

		if err := h.Accounts.UpdateUserProfile(user.ID, fields); err != nil {
			h.serverError(c, err)
			return
		}
		h.reloadAccount(c, user.Kind(), user.ID)
	}
	h.render(c, http.StatusOK, "user_profile.tmpl", gin.H{"includeAreaList": true})
}

func (h Handlers) driverProfile(c *gin.Context, driver models.Driver) {
	if c.Request.Method == http.MethodPost {
		fields := postedFields(c, "name", "phoneNumber", "dlNumber", "carCapacity",
			"carType", "carModel", "carColor", "carRegistrationNumber", "insuranceValidUpto")

		for field, previous := range map[string]string{
			"profileImage": driver.ProfileImage,
			"carImage":     driver.CarImage,
		} {
			fh, err := c.FormFile(field)
			if err != nil || fh == nil {
				continue
			}
			name, err := h.saveUpload(c, fh)
			if err != nil {
				h.render(c, http.StatusOK, "driver_profile.tmpl", gin.H{
					"ErrorMessages": []string{"Failed to upload file."},
				})
				return
			}
			utils.RemoveUploadIfExists(h.Env.UploadDir, previous)
			fields[field] = name
		}

		if err := h.Accounts.UpdateDriverProfile(driver.ID, fields); err != nil {
			h.serverError(c, err)
			return
		}
		h.reloadAccount(c, driver.Kind(), driver.ID)
	}
	h.render(c, http.StatusOK, "driver_profile.tmpl", nil)
}

// postedFields collects the non-empty submitted values for the given keys.
func postedFields(c *gin.Context, keys ...string) map[string]string {
	fields := map[string]string{}
	for _, key := range keys {
		if v := utils.TrimOrEmpty(c.PostForm(key)); v != "" {
			fields[key] = v
		}
	}
	return fields
}

// reloadAccount refreshes the context account after a profile write so the
// page renders the stored values, not the stale pre-update load.
func (h Handlers) reloadAccount(c *gin.Context, kind models.AccountType, id int64) {
	account, err := h.Accounts.LoadByTypeID(kind, id)
	if err == nil {
		middleware.SetAccount(c, account)
	}
}
