package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"github.com/navigatingnc/bid-management-system/pkg/bidsheet"
)

type estimateGateway interface {
	GetProject(ctx context.Context, projectID int) (*model.Project, error)
	CreateEstimate(ctx context.Context, estimate model.Estimate) (*model.Estimate, error)
}

type EstimateController struct {
	*baseController
	api estimateGateway
}

type estimateFormData struct {
	view.Page
	Project   model.Project
	Sheet     *bidsheet.Sheet
	Total     float64
	NameError string
	RowErrors map[int]bool
	ActionURL string
}

func (ec EstimateController) New(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	project, err := ec.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		ec.renderError(ctx, "New Estimate", err, fmt.Sprintf("/projects/%d?tab=estimates", projectID))
		return
	}

	ec.renderForm(ctx, *project, bidsheet.NewSheet(projectID), "", nil)
}

// Submit handles every builder action. The posted rows are the state; each
// action transforms them and either re-renders or, for a valid save, posts
// the sheet to the backend and leaves the builder.
func (ec EstimateController) Submit(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	project, err := ec.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		ec.renderError(ctx, "Estimate", err, fmt.Sprintf("/projects/%d?tab=estimates", projectID))
		return
	}

	sheet, parseErr := sheetFromForm(ctx, projectID)

	if removeValue := ctx.PostForm("remove_item"); removeValue != "" {
		index, err := strconv.Atoi(removeValue)
		if err != nil || sheet.RemoveItem(index) != nil {
			ec.renderForm(ctx, *project, sheet, "Row no longer exists.", nil)
			return
		}
		ec.renderForm(ctx, *project, sheet, parseErr, nil)
		return
	}

	switch ctx.PostForm("action") {
	case "add_item":
		sheet.AddItem()
		ec.renderForm(ctx, *project, sheet, parseErr, nil)
	case "recalculate":
		ec.renderForm(ctx, *project, sheet, parseErr, nil)
	case "save":
		ec.save(ctx, *project, sheet, parseErr)
	default:
		ec.renderForm(ctx, *project, sheet, parseErr, nil)
	}
}

// save applies the local gate first: an invalid sheet never reaches the
// backend.
func (ec EstimateController) save(ctx *gin.Context, project model.Project, sheet *bidsheet.Sheet, parseErr string) {
	if parseErr != "" {
		ec.renderForm(ctx, project, sheet, parseErr, nil)
		return
	}
	if err := sheet.Validate(); err != nil {
		nameError := ""
		rowErrors := map[int]bool{}
		var descErr *bidsheet.DescriptionError
		if errors.Is(err, bidsheet.ErrNameRequired) {
			nameError = "Estimate name is required."
		} else if errors.As(err, &descErr) {
			for _, row := range descErr.Rows {
				rowErrors[row] = true
			}
		}
		data := estimateFormData{
			Page:      view.Page{Title: "New Estimate", Error: err.Error()},
			Project:   project,
			Sheet:     sheet,
			Total:     sheet.Total(),
			NameError: nameError,
			RowErrors: rowErrors,
			ActionURL: fmt.Sprintf("/projects/%d/estimate/new", project.ID),
		}
		ctx.HTML(http.StatusBadRequest, "estimate_form.tmpl", data)
		return
	}

	estimate := model.Estimate{
		ProjectID:   sheet.ProjectID,
		Name:        sheet.Name,
		Description: sheet.Description,
		TotalCost:   sheet.Total(),
		Items:       make([]model.EstimateItem, len(sheet.Items)),
	}
	for i, item := range sheet.Items {
		estimate.Items[i] = model.EstimateItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitCost:    item.UnitCost,
			TotalCost:   item.TotalCost,
			Notes:       item.Notes,
		}
	}

	// A backend failure keeps the builder open with the posted rows intact.
	if _, err := ec.api.CreateEstimate(ctx.Request.Context(), estimate); err != nil {
		ec.app.Logger.Errorf("Save estimate: %v", err)
		ctx.HTML(apiErrorStatus(err), "estimate_form.tmpl", estimateFormData{
			Page:      view.Page{Title: "New Estimate", Error: "Saving the estimate failed. Your rows are unchanged."},
			Project:   project,
			Sheet:     sheet,
			Total:     sheet.Total(),
			RowErrors: map[int]bool{},
			ActionURL: fmt.Sprintf("/projects/%d/estimate/new", project.ID),
		})
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/projects/%d?tab=estimates&notice=Estimate+saved", project.ID))
}

func (ec EstimateController) renderForm(ctx *gin.Context, project model.Project, sheet *bidsheet.Sheet, errorBanner string, rowErrors map[int]bool) {
	if rowErrors == nil {
		rowErrors = map[int]bool{}
	}
	status := http.StatusOK
	if errorBanner != "" {
		status = http.StatusBadRequest
	}
	ctx.HTML(status, "estimate_form.tmpl", estimateFormData{
		Page:      view.Page{Title: "New Estimate", Error: errorBanner},
		Project:   project,
		Sheet:     sheet,
		Total:     sheet.Total(),
		RowErrors: rowErrors,
		ActionURL: fmt.Sprintf("/projects/%d/estimate/new", project.ID),
	})
}

// sheetFromForm rebuilds the sheet from the posted parallel row arrays and
// recomputes every derived total. The second return is a banner message for
// values that could not be taken as posted.
func sheetFromForm(ctx *gin.Context, projectID int) (*bidsheet.Sheet, string) {
	descriptions := ctx.PostFormArray("item_description")
	quantities := ctx.PostFormArray("item_quantity")
	units := ctx.PostFormArray("item_unit")
	unitCosts := ctx.PostFormArray("item_unit_cost")
	notes := ctx.PostFormArray("item_notes")

	at := func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	sheet := &bidsheet.Sheet{
		ProjectID:   projectID,
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
	}

	parseErr := ""
	for i := range descriptions {
		quantity, ok := nonNegativeNumber(at(quantities, i))
		if !ok {
			parseErr = "Quantities and unit costs must be non-negative numbers."
		}
		unitCost, ok := nonNegativeNumber(at(unitCosts, i))
		if !ok {
			parseErr = "Quantities and unit costs must be non-negative numbers."
		}
		sheet.Items = append(sheet.Items, bidsheet.Item{
			Description: at(descriptions, i),
			Quantity:    quantity,
			Unit:        at(units, i),
			UnitCost:    unitCost,
			Notes:       at(notes, i),
		})
	}
	if len(sheet.Items) == 0 {
		sheet.AddItem()
	}
	sheet.Recalculate()

	return sheet, parseErr
}

func nonNegativeNumber(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
