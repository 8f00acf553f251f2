package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"github.com/navigatingnc/bid-management-system/pkg/bidsheet"
)

type dashboardGateway interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
}

type DashboardController struct {
	*baseController
	api dashboardGateway
}

type dashboardRow struct {
	Project  model.Project
	DueLabel string
	Urgency  string
}

type dashboardData struct {
	view.Page
	Rows []dashboardRow
}

func (dc DashboardController) Index(ctx *gin.Context) {
	projects, err := dc.api.ListProjects(ctx.Request.Context())
	if err != nil {
		dc.renderError(ctx, "Projects", err, "/")
		return
	}

	now := time.Now()
	rows := make([]dashboardRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, dashboardRow{
			Project:  p,
			DueLabel: dueLabel(p, now),
			Urgency:  dueUrgency(p, now),
		})
	}

	ctx.HTML(http.StatusOK, "dashboard.tmpl", dashboardData{
		Page: view.Page{Title: "Projects", Notice: ctx.Query("notice")},
		Rows: rows,
	})
}

func dueLabel(p model.Project, now time.Time) string {
	due, ok := p.BidDueTime()
	if !ok {
		return "No due date"
	}
	return bidsheet.DueLabel(due, now)
}

func dueUrgency(p model.Project, now time.Time) string {
	due, ok := p.BidDueTime()
	if !ok {
		return urgencyClass(bidsheet.UrgencyNone)
	}
	return urgencyClass(bidsheet.DueUrgency(due, now))
}
