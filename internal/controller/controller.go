package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appcontext "github.com/navigatingnc/bid-management-system/internal/app_context"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"github.com/navigatingnc/bid-management-system/pkg/bidsheet"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Dashboard *DashboardController
	Project   *ProjectController
	Document  *DocumentController
	Estimate  *EstimateController
	Proposal  *ProposalController
	Email     *EmailController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Dashboard: &DashboardController{baseController: bc, api: app.Gateway},
		Project:   &ProjectController{baseController: bc, api: app.Gateway},
		Document:  &DocumentController{baseController: bc, api: app.Gateway},
		Estimate:  &EstimateController{baseController: bc, api: app.Gateway},
		Proposal:  &ProposalController{baseController: bc, api: app.Gateway},
		Email:     &EmailController{baseController: bc, api: app.Gateway},
	}
}

type errorData struct {
	view.Page
	Detail  string
	BackURL string
}

// renderError is the inline failure page: no partial data, a message, and a
// way back. Fetch failures on every screen land here.
func (b *baseController) renderError(ctx *gin.Context, title string, err error, backURL string) {
	b.app.Logger.Errorf("%s: %v", title, err)
	ctx.HTML(apiErrorStatus(err), "error.tmpl", errorData{
		Page:    view.Page{Title: title, Error: err.Error()},
		Detail:  "The backend request did not succeed. The data shown before this action is unchanged.",
		BackURL: backURL,
	})
}

// apiErrorStatus relays the backend's status when the error carries one.
func apiErrorStatus(err error) int {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

func pathInt(ctx *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		ctx.String(http.StatusNotFound, "not found")
		return 0, false
	}
	return v, true
}

func urgencyClass(u bidsheet.Urgency) string {
	switch u {
	case bidsheet.UrgencyOverdue:
		return "overdue"
	case bidsheet.UrgencyCritical:
		return "critical"
	case bidsheet.UrgencyWarning:
		return "warning"
	case bidsheet.UrgencyNormal:
		return "normal"
	}
	return "none"
}
