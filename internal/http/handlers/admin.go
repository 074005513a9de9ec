package handlers

import (
	"net/http"

	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// ALL /admin-view-drivers: optional status change, then the full listing.
func (h Handlers) AdminViewDrivers(c *gin.Context) {
	if err := h.applyStatusChange(c, models.AccountTypeDriver); err != nil {
		h.serverError(c, err)
		return
	}
	drivers, err := h.Accounts.ListDrivers()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_view_drivers.tmpl", gin.H{"Drivers": drivers})
}

// ALL /admin-view-users
func (h Handlers) AdminViewUsers(c *gin.Context) {
	if err := h.applyStatusChange(c, models.AccountTypeUser); err != nil {
		h.serverError(c, err)
		return
	}
	users, err := h.Accounts.ListUsersWithArea()
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_view_users.tmpl", gin.H{"Users": users})
}

func (h Handlers) applyStatusChange(c *gin.Context, kind models.AccountType) error {
	newStatus := utils.TrimOrEmpty(c.PostForm("newStatus"))
	accountID := formInt64(c, "accountId")
	if newStatus == "" || accountID == 0 {
		return nil
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "set_status",
		"type="+string(kind)+" status="+newStatus)
	return h.Accounts.UpdateStatus(kind, accountID, models.AccountStatus(newStatus))
}

// ALL /admin-manage-areas: create or delete an area, then re-render the
// list.
func (h Handlers) AdminManageAreas(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		switch {
		case c.PostForm("deletedArea") != "":
			if err := h.Areas.Delete(formInt64(c, "areaId")); err != nil {
				h.serverError(c, err)
				return
			}
		case c.PostForm("addedArea") != "":
			if name := utils.TrimOrEmpty(c.PostForm("areaName")); name != "" {
				if _, err := h.Areas.Create(name); err != nil {
					h.serverError(c, err)
					return
				}
			}
		}
	}
	h.render(c, http.StatusOK, "admin_manage_areas.tmpl", gin.H{"includeAreaList": true})
}
