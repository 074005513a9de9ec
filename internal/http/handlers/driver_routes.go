package handlers

import (
	"net/http"

	"rideshare/internal/domain"
	"rideshare/internal/domain/models"
	"rideshare/internal/http/middleware"
	"rideshare/internal/services"

	"github.com/gin-gonic/gin"
)

// ALL /driver-routes: the driver's route management page. POST either adds
// a route (duplicate triples rejected with a message) or deletes one; the
// listing always re-renders with area names resolved.
func (h Handlers) DriverRoutes(c *gin.Context) {
	account := middleware.AccountFromContext(c)
	driver, ok := account.(models.Driver)
	if !ok {
		h.notFound(c)
		return
	}

	svc := services.RouteService{Routes: h.Routes, RequestID: middleware.GetRequestID(c)}
	var messages []string

	if c.Request.Method == http.MethodPost {
		sourceAreaID := formInt64(c, "sourceareaId")
		targetAreaID := formInt64(c, "targetareaId")
		switch {
		case c.PostForm("addedArea") != "" && c.PostForm("ratePerDay") != "" &&
			sourceAreaID != 0 && targetAreaID != 0:
			err := svc.Add(models.Route{
				DriverID:     driver.ID,
				SourceAreaID: sourceAreaID,
				TargetAreaID: targetAreaID,
				RatePerDay:   formInt64(c, "ratePerDay"),
			})
			switch {
			case err == nil:
			case domain.IsConflict(err) || domain.IsValidation(err):
				messages = append(messages, err.Error())
			default:
				h.serverError(c, err)
				return
			}
		case c.PostForm("deletedArea") != "" && sourceAreaID != 0 && targetAreaID != 0:
			if err := svc.Delete(driver.ID, sourceAreaID, targetAreaID); err != nil {
				h.serverError(c, err)
				return
			}
		default:
			messages = append(messages, "Please fill the form correctly and ensure nothing is missing.")
		}
	}

	routes, sources, err := svc.ListForDriver(driver.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "driver_routes.tmpl", gin.H{
		"Routes":          routes,
		"Sources":         sources,
		"ErrorMessages":   messages,
		"includeAreaList": true,
	})
}
