package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/constant"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/util"
	"github.com/navigatingnc/bid-management-system/internal/view"
)

type projectGateway interface {
	GetProject(ctx context.Context, projectID int) (*model.Project, error)
	GetProjectSummary(ctx context.Context, projectID int) (*model.ProjectSummary, error)
	ListProjectDocuments(ctx context.Context, projectID int) ([]model.Document, error)
	CreateProject(ctx context.Context, input gateway.ProjectInput) (*model.Project, error)
	UpdateProject(ctx context.Context, projectID int, input gateway.ProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID int) error
}

type ProjectController struct {
	*baseController
	api projectGateway
}

var projectTabs = []string{"overview", "documents", "specifications", "estimates", "proposals"}

// Name is capped at the backend's column width so an oversized value fails
// here instead of on the database.
type projectForm struct {
	Name         string `form:"name" binding:"required,strNotEmpty,cmax=255"`
	BidDueDate   string `form:"bid_due_date" binding:"omitempty,datetime=2006-01-02"`
	SenderName   string `form:"sender_name"`
	SenderEmail  string `form:"sender_email" binding:"omitempty,email"`
	EmailSubject string `form:"email_subject"`
}

// struct field -> form input name, for validation messages
var projectFieldNames = map[string]string{
	"Name":        "name",
	"BidDueDate":  "bid_due_date",
	"SenderEmail": "sender_email",
}

func (f projectForm) toInput() gateway.ProjectInput {
	optional := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return gateway.ProjectInput{
		Name:         f.Name,
		BidDueDate:   optional(f.BidDueDate),
		SenderName:   optional(f.SenderName),
		SenderEmail:  optional(f.SenderEmail),
		EmailSubject: optional(f.EmailSubject),
	}
}

type projectFormData struct {
	view.Page
	Form        projectForm
	FieldErrors map[string]string
	ActionURL   string
	CancelURL   string
	SubmitLabel string
}

type projectDetailData struct {
	view.Page
	Summary       model.ProjectSummary
	DueLabel      string
	Urgency       string
	Tab           string
	Tabs          []string
	Documents     []model.Document
	DocumentTypes []constant.DocumentType
	Divisions     []string
}

type confirmData struct {
	view.Page
	Prompt    string
	ActionURL string
	CancelURL string
}

func (pc ProjectController) NewForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "project_form.tmpl", projectFormData{
		Page:        view.Page{Title: "New Project"},
		ActionURL:   "/projects/new",
		CancelURL:   "/",
		SubmitLabel: "Create Project",
	})
}

func (pc ProjectController) Create(ctx *gin.Context) {
	var form projectForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.HTML(http.StatusBadRequest, "project_form.tmpl", projectFormData{
			Page:        view.Page{Title: "New Project", Error: "Please fix the highlighted fields."},
			Form:        form,
			FieldErrors: fieldErrorMap(err, projectFieldNames),
			ActionURL:   "/projects/new",
			CancelURL:   "/",
			SubmitLabel: "Create Project",
		})
		return
	}

	project, err := pc.api.CreateProject(ctx.Request.Context(), form.toInput())
	if err != nil {
		pc.renderError(ctx, "New Project", err, "/projects/new")
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/projects/%d", project.ID))
}

func (pc ProjectController) Detail(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	tab := ctx.DefaultQuery("tab", "overview")
	if !validTab(tab) {
		tab = "overview"
	}

	summary, err := pc.api.GetProjectSummary(ctx.Request.Context(), projectID)
	if err != nil {
		pc.renderError(ctx, "Project", err, "/")
		return
	}

	data := projectDetailData{
		Page:          view.Page{Title: summary.Name, Notice: ctx.Query("notice")},
		Summary:       *summary,
		DueLabel:      dueLabel(summary.Project, time.Now()),
		Urgency:       dueUrgency(summary.Project, time.Now()),
		Tab:           tab,
		Tabs:          projectTabs,
		DocumentTypes: constant.DocumentTypes,
		Divisions:     constant.SpecificationDivisions,
	}

	// Only document tabs need the listing; the rest render from the summary.
	if tab == "documents" || tab == "specifications" {
		documents, err := pc.api.ListProjectDocuments(ctx.Request.Context(), projectID)
		if err != nil {
			pc.renderError(ctx, summary.Name, err, fmt.Sprintf("/projects/%d", projectID))
			return
		}
		if tab == "specifications" {
			documents = filterByType(documents, constant.DocumentTypeSpecifications)
		}
		data.Documents = documents
	}

	ctx.HTML(http.StatusOK, "project_detail.tmpl", data)
}

func (pc ProjectController) EditForm(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	project, err := pc.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		pc.renderError(ctx, "Edit Project", err, fmt.Sprintf("/projects/%d", projectID))
		return
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	ctx.HTML(http.StatusOK, "project_form.tmpl", projectFormData{
		Page: view.Page{Title: "Edit " + project.Name},
		Form: projectForm{
			Name:         project.Name,
			BidDueDate:   dateOnly(deref(project.BidDueDate)),
			SenderName:   deref(project.SenderName),
			SenderEmail:  deref(project.SenderEmail),
			EmailSubject: deref(project.EmailSubject),
		},
		ActionURL:   fmt.Sprintf("/projects/%d/edit", projectID),
		CancelURL:   fmt.Sprintf("/projects/%d", projectID),
		SubmitLabel: "Save Changes",
	})
}

func (pc ProjectController) Update(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	var form projectForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.HTML(http.StatusBadRequest, "project_form.tmpl", projectFormData{
			Page:        view.Page{Title: "Edit Project", Error: "Please fix the highlighted fields."},
			Form:        form,
			FieldErrors: fieldErrorMap(err, projectFieldNames),
			ActionURL:   fmt.Sprintf("/projects/%d/edit", projectID),
			CancelURL:   fmt.Sprintf("/projects/%d", projectID),
			SubmitLabel: "Save Changes",
		})
		return
	}

	if _, err := pc.api.UpdateProject(ctx.Request.Context(), projectID, form.toInput()); err != nil {
		pc.renderError(ctx, "Edit Project", err, fmt.Sprintf("/projects/%d/edit", projectID))
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/projects/%d", projectID))
}

func (pc ProjectController) ConfirmDelete(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	project, err := pc.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		pc.renderError(ctx, "Delete Project", err, "/")
		return
	}

	ctx.HTML(http.StatusOK, "confirm.tmpl", confirmData{
		Page:      view.Page{Title: "Delete Project"},
		Prompt:    fmt.Sprintf("Delete project %q and all of its documents, estimates, and proposals?", project.Name),
		ActionURL: fmt.Sprintf("/projects/%d/delete", projectID),
		CancelURL: "/",
	})
}

// Delete redirects back to the list only after the backend confirmed the
// deletion; on failure the list the user returns to is unchanged.
func (pc ProjectController) Delete(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	if err := pc.api.DeleteProject(ctx.Request.Context(), projectID); err != nil {
		pc.renderError(ctx, "Delete Project", err, "/")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/?notice=Project+deleted")
}

func validTab(tab string) bool {
	for _, t := range projectTabs {
		if t == tab {
			return true
		}
	}
	return false
}

func filterByType(documents []model.Document, docType constant.DocumentType) []model.Document {
	var filtered []model.Document
	for _, d := range documents {
		if d.DocumentType == string(docType) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// dateOnly truncates a backend timestamp to the yyyy-mm-dd a date input wants.
func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func fieldErrorMap(err error, names map[string]string) map[string]string {
	out := make(map[string]string)
	for _, apiErr := range util.GenerateErrorMessages(err, names) {
		out[apiErr.Field] = apiErr.Message
	}
	return out
}
