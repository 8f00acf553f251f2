package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/constant"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/view"
)

type documentGateway interface {
	GetProject(ctx context.Context, projectID int) (*model.Project, error)
	GetDocument(ctx context.Context, documentID int) (*model.Document, error)
	UploadDocument(ctx context.Context, upload gateway.DocumentUpload) (*model.Document, error)
	DeleteDocument(ctx context.Context, documentID int) error
	DownloadDocument(ctx context.Context, documentID int) (*gateway.Download, error)
	ExtractText(ctx context.Context, documentID int) (*model.ExtractedText, error)
	ExtractSection(ctx context.Context, documentID int, sectionName string) (*model.ExtractedSection, error)
	GetDocumentMetadata(ctx context.Context, documentID int) (*model.DocumentMetadata, error)
}

type DocumentController struct {
	*baseController
	api documentGateway
}

type documentViewData struct {
	view.Page
	Project         model.Project
	Document        model.Document
	Metadata        *model.DocumentMetadata
	DownloadURL     string
	ActionURL       string
	Divisions       []string
	SelectedSection string
	Extracted       *model.ExtractedText
	Section         *model.ExtractedSection
}

// Upload sends each selected file as its own request. One bad file does not
// stop the others; the outcome reports both sides.
func (dc DocumentController) Upload(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		dc.renderError(ctx, "Upload", err, fmt.Sprintf("/projects/%d?tab=documents", projectID))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/projects/%d?tab=documents&notice=No+files+selected", projectID))
		return
	}

	chosenType := ctx.PostForm("document_type")
	var failed []string
	uploaded := 0
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}

		docType := chosenType
		if docType == "" {
			docType = string(constant.ClassifyFilename(header.Filename))
		}
		_, err = dc.api.UploadDocument(ctx.Request.Context(), gateway.DocumentUpload{
			ProjectID: projectID,
			Filename:  header.Filename,
			Type:      docType,
			Content:   file,
		})
		file.Close()
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		uploaded++
	}

	if len(failed) > 0 {
		dc.renderError(ctx, "Upload",
			fmt.Errorf("%d of %d file(s) failed: %s", len(failed), len(files), strings.Join(failed, "; ")),
			fmt.Sprintf("/projects/%d?tab=documents", projectID))
		return
	}

	ctx.Redirect(http.StatusSeeOther,
		fmt.Sprintf("/projects/%d?tab=documents&notice=%d+file(s)+uploaded", projectID, uploaded))
}

func (dc DocumentController) View(ctx *gin.Context) {
	dc.renderView(ctx, "", nil, nil)
}

// Extract handles the viewer's POST actions and re-renders the viewer with
// the extraction result.
func (dc DocumentController) Extract(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	documentID, ok := pathInt(ctx, "docId")
	if !ok {
		return
	}
	backURL := fmt.Sprintf("/projects/%d/documents/%d/view", projectID, documentID)

	switch ctx.PostForm("action") {
	case "extract_text":
		extracted, err := dc.api.ExtractText(ctx.Request.Context(), documentID)
		if err != nil {
			dc.renderError(ctx, "Extract Text", err, backURL)
			return
		}
		dc.renderView(ctx, "", extracted, nil)
	case "extract_section":
		sectionName := ctx.PostForm("section")
		section, err := dc.api.ExtractSection(ctx.Request.Context(), documentID, sectionName)
		if err != nil {
			dc.renderError(ctx, "Extract Section", err, backURL)
			return
		}
		dc.renderView(ctx, sectionName, nil, section)
	default:
		ctx.Redirect(http.StatusSeeOther, backURL)
	}
}

func (dc DocumentController) renderView(ctx *gin.Context, selectedSection string, extracted *model.ExtractedText, section *model.ExtractedSection) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	documentID, ok := pathInt(ctx, "docId")
	if !ok {
		return
	}
	backURL := fmt.Sprintf("/projects/%d?tab=documents", projectID)

	project, err := dc.api.GetProject(ctx.Request.Context(), projectID)
	if err != nil {
		dc.renderError(ctx, "Document", err, backURL)
		return
	}
	document, err := dc.api.GetDocument(ctx.Request.Context(), documentID)
	if err != nil {
		dc.renderError(ctx, "Document", err, backURL)
		return
	}

	// Metadata is a nicety for the sidebar; the viewer still works when the
	// backend cannot extract it.
	metadata, err := dc.api.GetDocumentMetadata(ctx.Request.Context(), documentID)
	if err != nil {
		dc.app.Logger.Debugf("Metadata unavailable for document %d: %v", documentID, err)
		metadata = nil
	}

	ctx.HTML(http.StatusOK, "document_view.tmpl", documentViewData{
		Page:            view.Page{Title: document.DisplayName()},
		Project:         *project,
		Document:        *document,
		Metadata:        metadata,
		DownloadURL:     fmt.Sprintf("/projects/%d/documents/%d/download", projectID, documentID),
		ActionURL:       fmt.Sprintf("/projects/%d/documents/%d/view", projectID, documentID),
		Divisions:       constant.SpecificationDivisions,
		SelectedSection: selectedSection,
		Extracted:       extracted,
		Section:         section,
	})
}

// Download proxies the backend's binary stream through to the browser.
func (dc DocumentController) Download(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	documentID, ok := pathInt(ctx, "docId")
	if !ok {
		return
	}

	download, err := dc.api.DownloadDocument(ctx.Request.Context(), documentID)
	if err != nil {
		dc.renderError(ctx, "Download", err, fmt.Sprintf("/projects/%d?tab=documents", projectID))
		return
	}
	defer download.Body.Close()

	ctx.DataFromReader(http.StatusOK, download.Size, download.ContentType, download.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", download.Filename),
	})
}

func (dc DocumentController) ConfirmDelete(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	documentID, ok := pathInt(ctx, "docId")
	if !ok {
		return
	}
	backURL := fmt.Sprintf("/projects/%d?tab=documents", projectID)

	document, err := dc.api.GetDocument(ctx.Request.Context(), documentID)
	if err != nil {
		dc.renderError(ctx, "Delete Document", err, backURL)
		return
	}

	ctx.HTML(http.StatusOK, "confirm.tmpl", confirmData{
		Page:      view.Page{Title: "Delete Document"},
		Prompt:    fmt.Sprintf("Delete document %q?", document.DisplayName()),
		ActionURL: fmt.Sprintf("/projects/%d/documents/%d/delete", projectID, documentID),
		CancelURL: backURL,
	})
}

func (dc DocumentController) Delete(ctx *gin.Context) {
	projectID, ok := pathInt(ctx, "projectId")
	if !ok {
		return
	}
	documentID, ok := pathInt(ctx, "docId")
	if !ok {
		return
	}
	backURL := fmt.Sprintf("/projects/%d?tab=documents", projectID)

	if err := dc.api.DeleteDocument(ctx.Request.Context(), documentID); err != nil {
		dc.renderError(ctx, "Delete Document", err, backURL)
		return
	}

	ctx.Redirect(http.StatusSeeOther, backURL+"&notice=Document+deleted")
}
