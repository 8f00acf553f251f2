package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"github.com/navigatingnc/bid-management-system/pkg/proposaldoc"
)

type proposalGateway interface {
	GetProject(ctx context.Context, projectID int) (*model.Project, error)
	GetEstimate(ctx context.Context, estimateID int) (*model.Estimate, error)
	CreateProposal(ctx context.Context, proposal model.Proposal) (*model.Proposal, error)
}

type ProposalController struct {
	*baseController
	api proposalGateway
}

type proposalFormData struct {
	view.Page
	Project           proposaldoc.ProjectInfo
	Draft             proposaldoc.Draft
	Estimate          *proposaldoc.EstimateInfo
	TitleError        string
	ActionURL         string
	GenerateAvailable bool
}

type proposalPreviewData struct {
	view.Page
	Project           proposaldoc.ProjectInfo
	Draft             proposaldoc.Draft
	Estimate          *proposaldoc.EstimateInfo
	Preview           proposaldoc.Preview
	ActionURL         string
	GenerateAvailable bool
}

// New seeds the builder. With ?estimate_id= the draft starts from that
// estimate; the fetched project and estimate become hidden form state so
// every later action works from the posted form alone.
func (pc ProposalController) New(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	backURL := fmt.Sprintf("/projects/%d?tab=proposals", projectID)

	project, err := pc.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		pc.renderError(ctx, "New Proposal", err, backURL)
		return
	}
	info := projectInfo(*project)

	var estimate *proposaldoc.EstimateInfo
	if raw := ctx.Query("estimate_id"); raw != "" {
		estimateID, err := strconv.Atoi(raw)
		if err != nil {
			pc.renderError(ctx, "New Proposal", fmt.Errorf("bad estimate id %q", raw), backURL)
			return
		}
		fetched, err := pc.api.GetEstimate(ctx.Request.Context(), estimateID)
		if err != nil {
			pc.renderError(ctx, "New Proposal", err, backURL)
			return
		}
		estimate = estimateInfo(*fetched)
	}

	pc.renderForm(ctx, info, proposaldoc.NewDraft(info, estimate), estimate, "")
}

// Submit dispatches the builder actions. Preview, edit, and generate work
// purely from the posted state; only save talks to the backend.
func (pc ProposalController) Submit(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	info := projectInfoFromForm(ctx, projectID)
	estimate := estimateInfoFromForm(ctx)
	draft := draftFromForm(ctx, projectID, estimate)

	switch ctx.PostForm("action") {
	case "preview":
		pc.renderPreview(ctx, info, draft, estimate)
	case "edit":
		pc.renderForm(ctx, info, draft, estimate, "")
	case "generate":
		pc.generate(ctx, info, draft, estimate)
	case "save":
		pc.save(ctx, info, draft, estimate)
	default:
		pc.renderForm(ctx, info, draft, estimate, "")
	}
}

func (pc ProposalController) save(ctx *gin.Context, info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo) {
	if err := draft.Validate(); err != nil {
		pc.renderForm(ctx, info, draft, estimate, "Proposal title is required.")
		return
	}

	proposal := model.Proposal{
		ProjectID:       draft.ProjectID,
		EstimateID:      draft.EstimateID,
		Title:           draft.Title,
		ScopeSummary:    draft.ScopeSummary,
		TermsConditions: draft.TermsConditions,
	}
	// A backend failure keeps the builder open with the posted draft intact.
	if _, err := pc.api.CreateProposal(ctx.Request.Context(), proposal); err != nil {
		pc.app.Logger.Errorf("Save proposal: %v", err)
		pc.renderFormStatus(ctx, info, draft, estimate, apiErrorStatus(err),
			"Saving the proposal failed. Your draft is unchanged.", "")
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/projects/%d?tab=proposals&notice=Proposal+saved", draft.ProjectID))
}

// generate renders the assembled preview to a PDF and serves it as a
// download. Nothing is persisted.
func (pc ProposalController) generate(ctx *gin.Context, info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo) {
	if err := draft.Validate(); err != nil {
		pc.renderForm(ctx, info, draft, estimate, "Proposal title is required.")
		return
	}
	if pc.app.Renderer == nil {
		pc.renderForm(ctx, info, draft, estimate, "PDF generation is unavailable; no font is configured.")
		return
	}

	preview := pc.buildPreview(info, draft, estimate)
	outName := fmt.Sprintf("proposal-%s.pdf", uuid.NewString())
	path, err := pc.app.Renderer.Render(preview, outName)
	if err != nil {
		pc.app.Logger.Errorf("Generate proposal document: %v", err)
		pc.renderFormStatus(ctx, info, draft, estimate, http.StatusInternalServerError,
			"Generating the document failed. Your draft is unchanged.", "")
		return
	}

	ctx.FileAttachment(path, fmt.Sprintf("%s.pdf", draft.Title))
}

func (pc ProposalController) renderForm(ctx *gin.Context, info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo, titleError string) {
	status := http.StatusOK
	banner := ""
	if titleError != "" {
		status = http.StatusBadRequest
		banner = titleError
	}
	pc.renderFormStatus(ctx, info, draft, estimate, status, banner, titleError)
}

func (pc ProposalController) renderFormStatus(ctx *gin.Context, info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo, status int, banner, titleError string) {
	ctx.HTML(status, "proposal_form.tmpl", proposalFormData{
		Page:              view.Page{Title: "New Proposal", Error: banner},
		Project:           info,
		Draft:             draft,
		Estimate:          estimate,
		TitleError:        titleError,
		ActionURL:         fmt.Sprintf("/projects/%d/proposal/new", info.ID),
		GenerateAvailable: pc.app.Renderer != nil,
	})
}

func (pc ProposalController) renderPreview(ctx *gin.Context, info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo) {
	ctx.HTML(http.StatusOK, "proposal_preview.tmpl", proposalPreviewData{
		Page:              view.Page{Title: "Proposal Preview"},
		Project:           info,
		Draft:             draft,
		Estimate:          estimate,
		Preview:           pc.buildPreview(info, draft, estimate),
		ActionURL:         fmt.Sprintf("/projects/%d/proposal/new", info.ID),
		GenerateAvailable: pc.app.Renderer != nil,
	})
}

func (pc ProposalController) buildPreview(info proposaldoc.ProjectInfo, draft proposaldoc.Draft, estimate *proposaldoc.EstimateInfo) proposaldoc.Preview {
	company := proposaldoc.Company{
		Name:    pc.app.Config.Company.Name,
		Address: pc.app.Config.Company.Address,
		Phone:   pc.app.Config.Company.Phone,
		Email:   pc.app.Config.Company.Email,
	}
	return proposaldoc.BuildPreview(company, info, estimate, draft, time.Now())
}

func projectInfo(p model.Project) proposaldoc.ProjectInfo {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return proposaldoc.ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		ClientName:  deref(p.SenderName),
		ClientEmail: deref(p.SenderEmail),
		BidDueDate:  dateOnly(deref(p.BidDueDate)),
	}
}

func projectInfoFromForm(ctx *gin.Context, projectID int) proposaldoc.ProjectInfo {
	return proposaldoc.ProjectInfo{
		ID:          projectID,
		Name:        ctx.PostForm("project_name"),
		ClientName:  ctx.PostForm("client_name"),
		ClientEmail: ctx.PostForm("client_email"),
		BidDueDate:  ctx.PostForm("bid_due_date"),
	}
}

func estimateInfo(e model.Estimate) *proposaldoc.EstimateInfo {
	info := &proposaldoc.EstimateInfo{
		ID:        e.ID,
		Name:      e.Name,
		TotalCost: e.TotalCost,
	}
	for _, item := range e.Items {
		info.Items = append(info.Items, proposaldoc.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitCost:    item.UnitCost,
			TotalCost:   item.TotalCost,
		})
	}
	return info
}

// estimateInfoFromForm rebuilds the seeding estimate from hidden fields.
// Line totals and the grand total are derived, never posted.
func estimateInfoFromForm(ctx *gin.Context) *proposaldoc.EstimateInfo {
	raw := ctx.PostForm("estimate_id")
	if raw == "" {
		return nil
	}
	estimateID, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	info := &proposaldoc.EstimateInfo{
		ID:   estimateID,
		Name: ctx.PostForm("estimate_name"),
	}

	descriptions := ctx.PostFormArray("est_description")
	quantities := ctx.PostFormArray("est_quantity")
	units := ctx.PostFormArray("est_unit")
	unitCosts := ctx.PostFormArray("est_unit_cost")
	at := func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	for i := range descriptions {
		quantity, _ := strconv.ParseFloat(at(quantities, i), 64)
		unitCost, _ := strconv.ParseFloat(at(unitCosts, i), 64)
		item := proposaldoc.LineItem{
			Description: at(descriptions, i),
			Quantity:    quantity,
			Unit:        at(units, i),
			UnitCost:    unitCost,
			TotalCost:   quantity * unitCost,
		}
		info.Items = append(info.Items, item)
		info.TotalCost += item.TotalCost
	}
	return info
}

func draftFromForm(ctx *gin.Context, projectID int, estimate *proposaldoc.EstimateInfo) proposaldoc.Draft {
	draft := proposaldoc.Draft{
		ProjectID:       projectID,
		Title:           ctx.PostForm("title"),
		ScopeSummary:    ctx.PostForm("scope_summary"),
		TermsConditions: ctx.PostForm("terms_conditions"),
	}
	if estimate != nil {
		draft.EstimateID = &estimate.ID
	}
	return draft
}
