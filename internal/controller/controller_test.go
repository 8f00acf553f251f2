package controller

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	appcontext "github.com/navigatingnc/bid-management-system/internal/app_context"
	"github.com/navigatingnc/bid-management-system/internal/auth"
	"github.com/navigatingnc/bid-management-system/internal/config"
	"github.com/navigatingnc/bid-management-system/internal/gateway"
	"github.com/navigatingnc/bid-management-system/internal/model"
	"github.com/navigatingnc/bid-management-system/internal/util"
	"github.com/navigatingnc/bid-management-system/internal/view"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("strNotEmpty", util.StrNotEmpty)
		_ = v.RegisterValidation("cmax", util.CustomMax)
	}
	os.Exit(m.Run())
}

func newTestApp() *appcontext.Application {
	cfg := config.Config{
		ENV: "test",
		Company: config.CompanyConfig{
			Name:    "Material Supply Contractor",
			Address: "123 Construction Way, Building City, ST 12345",
			Phone:   "(555) 123-4567",
			Email:   "info@materialsupply.com",
		},
	}
	return &appcontext.Application{
		Config:      &cfg,
		Logger:      zap.NewNop().Sugar(),
		MailSession: auth.NewMailSession(config.SessionConfig{JWT_SECRET: "test-secret"}, zap.NewNop().Sugar()),
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	return r
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

// --- dashboard ---

type fakeDashboardAPI struct {
	projects []model.Project
	err      error
}

func (f *fakeDashboardAPI) ListProjects(context.Context) ([]model.Project, error) {
	return f.projects, f.err
}

func TestDashboardListsProjectsWithDueStatus(t *testing.T) {
	api := &fakeDashboardAPI{projects: []model.Project{
		{ID: 1, Name: "Office Renovation", SenderName: strPtr("Jane Smith")},
		{ID: 2, Name: "School Gym", BidDueDate: strPtr("2020-01-01")},
	}}
	dc := &DashboardController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/", dc.Index)

	w := get(r, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Office Renovation", "Jane Smith", "No due date", "Overdue"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestDashboardFetchFailureShowsErrorPage(t *testing.T) {
	api := &fakeDashboardAPI{err: &gateway.APIError{StatusCode: 500, Status: "500 Internal Server Error"}}
	dc := &DashboardController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/", dc.Index)

	w := get(r, "/")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unchanged") {
		t.Errorf("expected the error page, got: %s", w.Body.String())
	}
}

// --- projects ---

type fakeProjectAPI struct {
	project    *model.Project
	summary    *model.ProjectSummary
	documents  []model.Document
	deleteErr  error
	deleted    []int
	created    []gateway.ProjectInput
	updated    []gateway.ProjectInput
	createdOut *model.Project
}

func (f *fakeProjectAPI) GetProject(context.Context, int) (*model.Project, error) {
	return f.project, nil
}

func (f *fakeProjectAPI) GetProjectSummary(context.Context, int) (*model.ProjectSummary, error) {
	return f.summary, nil
}

func (f *fakeProjectAPI) ListProjectDocuments(context.Context, int) ([]model.Document, error) {
	return f.documents, nil
}

func (f *fakeProjectAPI) CreateProject(_ context.Context, input gateway.ProjectInput) (*model.Project, error) {
	f.created = append(f.created, input)
	return f.createdOut, nil
}

func (f *fakeProjectAPI) UpdateProject(_ context.Context, _ int, input gateway.ProjectInput) (*model.Project, error) {
	f.updated = append(f.updated, input)
	return f.project, nil
}

func (f *fakeProjectAPI) DeleteProject(_ context.Context, projectID int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, projectID)
	return nil
}

func newProjectRouter(api *fakeProjectAPI) *gin.Engine {
	pc := &ProjectController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/projects/new", pc.NewForm)
	r.POST("/projects/new", pc.Create)
	r.GET("/projects/:projectId", pc.Detail)
	r.POST("/projects/:projectId/delete", pc.Delete)
	return r
}

func TestProjectDetailTabs(t *testing.T) {
	api := &fakeProjectAPI{
		summary: &model.ProjectSummary{
			Project:        model.Project{ID: 7, Name: "Hospital Wing"},
			DocumentCounts: map[string]int{"plans": 2},
			EstimateCount:  1,
		},
		documents: []model.Document{
			{ID: 1, ProjectID: 7, OriginalFilename: "site_plans.pdf", DocumentType: "plans"},
			{ID: 2, ProjectID: 7, OriginalFilename: "specs.pdf", DocumentType: "specifications"},
		},
	}
	r := newProjectRouter(api)

	tests := []struct {
		tab  string
		want string
		skip string
	}{
		{tab: "overview", want: "Estimates"},
		{tab: "documents", want: "site_plans.pdf"},
		{tab: "specifications", want: "specs.pdf", skip: "site_plans.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			w := get(r, "/projects/7?tab="+tt.tab)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("tab %s missing %q", tt.tab, tt.want)
			}
			if tt.skip != "" && strings.Contains(w.Body.String(), tt.skip) {
				t.Errorf("tab %s should not list %q", tt.tab, tt.skip)
			}
		})
	}
}

func TestCreateProjectValidationBlocksGatewayCall(t *testing.T) {
	api := &fakeProjectAPI{createdOut: &model.Project{ID: 3}}
	r := newProjectRouter(api)

	w := postForm(r, "/projects/new", url.Values{"name": {"   "}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(api.created) != 0 {
		t.Errorf("invalid form must not reach the backend, got %d calls", len(api.created))
	}
}

func TestCreateProjectNameLengthCapped(t *testing.T) {
	api := &fakeProjectAPI{createdOut: &model.Project{ID: 3}}
	r := newProjectRouter(api)

	w := postForm(r, "/projects/new", url.Values{"name": {strings.Repeat("x", 300)}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(api.created) != 0 {
		t.Errorf("oversized name must not reach the backend, got %d calls", len(api.created))
	}
}

func TestCreateProjectRedirectsToDetail(t *testing.T) {
	api := &fakeProjectAPI{createdOut: &model.Project{ID: 3}}
	r := newProjectRouter(api)

	w := postForm(r, "/projects/new", url.Values{
		"name":         {"New Build"},
		"bid_due_date": {"2026-09-15"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/projects/3" {
		t.Errorf("expected redirect to /projects/3, got %s", loc)
	}
	if len(api.created) != 1 || *api.created[0].BidDueDate != "2026-09-15" {
		t.Errorf("unexpected create input: %+v", api.created)
	}
}

func TestDeleteProjectReflectedOnlyOnSuccess(t *testing.T) {
	t.Run("failure keeps list unchanged", func(t *testing.T) {
		api := &fakeProjectAPI{deleteErr: &gateway.APIError{StatusCode: 500, Status: "500 Internal Server Error"}}
		r := newProjectRouter(api)

		w := postForm(r, "/projects/7/delete", url.Values{})

		if w.Code == http.StatusSeeOther {
			t.Fatal("failed delete must not redirect to the refreshed list")
		}
		if len(api.deleted) != 0 {
			t.Errorf("expected no recorded deletion, got %v", api.deleted)
		}
	})

	t.Run("success returns to the list", func(t *testing.T) {
		api := &fakeProjectAPI{}
		r := newProjectRouter(api)

		w := postForm(r, "/projects/7/delete", url.Values{})

		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", w.Code)
		}
		if len(api.deleted) != 1 || api.deleted[0] != 7 {
			t.Errorf("expected deletion of 7, got %v", api.deleted)
		}
	})
}

// --- documents ---

type fakeDocumentAPI struct {
	project  *model.Project
	document *model.Document
	uploads  []gateway.DocumentUpload
	sections []string
}

func (f *fakeDocumentAPI) GetProject(context.Context, int) (*model.Project, error) {
	return f.project, nil
}

func (f *fakeDocumentAPI) GetDocument(context.Context, int) (*model.Document, error) {
	return f.document, nil
}

func (f *fakeDocumentAPI) UploadDocument(_ context.Context, upload gateway.DocumentUpload) (*model.Document, error) {
	f.uploads = append(f.uploads, upload)
	return &model.Document{ID: len(f.uploads)}, nil
}

func (f *fakeDocumentAPI) DeleteDocument(context.Context, int) error { return nil }

func (f *fakeDocumentAPI) DownloadDocument(context.Context, int) (*gateway.Download, error) {
	return nil, &gateway.APIError{StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeDocumentAPI) ExtractText(context.Context, int) (*model.ExtractedText, error) {
	return &model.ExtractedText{DocumentID: 1, Text: "full text"}, nil
}

func (f *fakeDocumentAPI) ExtractSection(_ context.Context, _ int, sectionName string) (*model.ExtractedSection, error) {
	f.sections = append(f.sections, sectionName)
	return &model.ExtractedSection{DocumentID: 1, SectionName: sectionName, Text: "section text"}, nil
}

func (f *fakeDocumentAPI) GetDocumentMetadata(context.Context, int) (*model.DocumentMetadata, error) {
	return &model.DocumentMetadata{Document: model.Document{ID: 1}, PageCount: 4}, nil
}

func newDocumentRouter(api *fakeDocumentAPI) *gin.Engine {
	dc := &DocumentController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.POST("/projects/:projectId/documents", dc.Upload)
	r.GET("/projects/:projectId/documents/:docId/view", dc.View)
	r.POST("/projects/:projectId/documents/:docId/view", dc.Extract)
	return r
}

func multipartUpload(t *testing.T, filenames []string, docType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
			t.Fatal(err)
		}
	}
	if docType != "" {
		if err := mw.WriteField("document_type", docType); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadSendsOneRequestPerFile(t *testing.T) {
	api := &fakeDocumentAPI{}
	r := newDocumentRouter(api)

	body, contentType := multipartUpload(t, []string{"floor_plans.pdf", "spec_book.pdf"}, "")
	req := httptest.NewRequest(http.MethodPost, "/projects/7/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if len(api.uploads) != 2 {
		t.Fatalf("expected one upload per file, got %d", len(api.uploads))
	}
	if api.uploads[0].Type != "plans" || api.uploads[1].Type != "specifications" {
		t.Errorf("filename classification not applied: %s, %s", api.uploads[0].Type, api.uploads[1].Type)
	}
}

func TestViewerExtractSection(t *testing.T) {
	api := &fakeDocumentAPI{
		project:  &model.Project{ID: 7, Name: "Hospital Wing"},
		document: &model.Document{ID: 1, ProjectID: 7, OriginalFilename: "specs.pdf", DocumentType: "specifications"},
	}
	r := newDocumentRouter(api)

	w := postForm(r, "/projects/7/documents/1/view", url.Values{
		"action":  {"extract_section"},
		"section": {"Division 03 - Concrete"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(api.sections) != 1 || api.sections[0] != "Division 03 - Concrete" {
		t.Errorf("unexpected section requests: %v", api.sections)
	}
	if !strings.Contains(w.Body.String(), "section text") {
		t.Error("extracted section not rendered")
	}
}

// --- estimates ---

type fakeEstimateAPI struct {
	project *model.Project
	saved   []model.Estimate
	saveErr error
}

func (f *fakeEstimateAPI) GetProject(context.Context, int) (*model.Project, error) {
	return f.project, nil
}

func (f *fakeEstimateAPI) CreateEstimate(_ context.Context, estimate model.Estimate) (*model.Estimate, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, estimate)
	return &estimate, nil
}

func newEstimateRouter(api *fakeEstimateAPI) *gin.Engine {
	ec := &EstimateController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/projects/:projectId/estimate/new", ec.New)
	r.POST("/projects/:projectId/estimate/new", ec.Submit)
	return r
}

func estimateForm(action string) url.Values {
	return url.Values{
		"action":           {action},
		"name":             {"Concrete Package"},
		"item_description": {"Footings", "Slab"},
		"item_quantity":    {"2", "3"},
		"item_unit":        {"CY", "CY"},
		"item_unit_cost":   {"10", "5"},
		"item_notes":       {"", ""},
	}
}

func TestEstimateSavePostsDerivedTotals(t *testing.T) {
	api := &fakeEstimateAPI{project: &model.Project{ID: 7, Name: "Hospital Wing"}}
	r := newEstimateRouter(api)

	w := postForm(r, "/projects/7/estimate/new", estimateForm("save"))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if len(api.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(api.saved))
	}
	saved := api.saved[0]
	if saved.TotalCost != 35 {
		t.Errorf("expected total 35, got %v", saved.TotalCost)
	}
	if saved.Items[0].TotalCost != 20 || saved.Items[1].TotalCost != 15 {
		t.Errorf("line totals not derived: %+v", saved.Items)
	}
}

func TestEstimateSaveBlockedByMissingDescriptions(t *testing.T) {
	api := &fakeEstimateAPI{project: &model.Project{ID: 7, Name: "Hospital Wing"}}
	r := newEstimateRouter(api)

	form := estimateForm("save")
	form["item_description"] = []string{"Footings", "   "}
	w := postForm(r, "/projects/7/estimate/new", form)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(api.saved) != 0 {
		t.Errorf("invalid sheet must not reach the backend, got %d saves", len(api.saved))
	}
	if !strings.Contains(w.Body.String(), "Footings") {
		t.Error("entered rows must survive a blocked save")
	}
}

func TestEstimateSaveFailureKeepsSheet(t *testing.T) {
	api := &fakeEstimateAPI{
		project: &model.Project{ID: 7, Name: "Hospital Wing"},
		saveErr: &gateway.APIError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"},
	}
	r := newEstimateRouter(api)

	w := postForm(r, "/projects/7/estimate/new", estimateForm("save"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Footings") || !strings.Contains(body, "Concrete Package") {
		t.Error("entered rows must survive a failed save")
	}
	if !strings.Contains(body, "Saving the estimate failed") {
		t.Error("failure banner missing")
	}
}

func TestEstimateRemoveLastRowClearsIt(t *testing.T) {
	api := &fakeEstimateAPI{project: &model.Project{ID: 7, Name: "Hospital Wing"}}
	r := newEstimateRouter(api)

	form := url.Values{
		"remove_item":      {"0"},
		"name":             {"Concrete Package"},
		"item_description": {"Footings"},
		"item_quantity":    {"2"},
		"item_unit":        {"CY"},
		"item_unit_cost":   {"10"},
		"item_notes":       {""},
	}
	w := postForm(r, "/projects/7/estimate/new", form)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "Footings") {
		t.Error("removing the only row should clear it")
	}
	if !strings.Contains(body, "$0.00") {
		t.Error("cleared sheet should total $0.00")
	}
}

func TestEstimateAddItemAppendsRow(t *testing.T) {
	api := &fakeEstimateAPI{project: &model.Project{ID: 7, Name: "Hospital Wing"}}
	r := newEstimateRouter(api)

	w := postForm(r, "/projects/7/estimate/new", estimateForm("add_item"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.Count(w.Body.String(), `name="item_description"`); got != 3 {
		t.Errorf("expected 3 rows after add, got %d", got)
	}
}

// --- proposals ---

type fakeProposalAPI struct {
	project      *model.Project
	estimate     *model.Estimate
	projectCalls int
	saved        []model.Proposal
	saveErr      error
}

func (f *fakeProposalAPI) GetProject(context.Context, int) (*model.Project, error) {
	f.projectCalls++
	return f.project, nil
}

func (f *fakeProposalAPI) GetEstimate(context.Context, int) (*model.Estimate, error) {
	return f.estimate, nil
}

func (f *fakeProposalAPI) CreateProposal(_ context.Context, proposal model.Proposal) (*model.Proposal, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, proposal)
	return &proposal, nil
}

func newProposalRouter(api *fakeProposalAPI) *gin.Engine {
	pc := &ProposalController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/projects/:projectId/proposal/new", pc.New)
	r.POST("/projects/:projectId/proposal/new", pc.Submit)
	return r
}

func TestProposalNewSeedsFromEstimate(t *testing.T) {
	api := &fakeProposalAPI{
		project: &model.Project{ID: 7, Name: "Hospital Wing", SenderName: strPtr("Jane Smith")},
		estimate: &model.Estimate{
			ID: 5, ProjectID: 7, Name: "Concrete Package", TotalCost: 35,
			Items: []model.EstimateItem{{Description: "Footings", Quantity: 2, Unit: "CY", UnitCost: 10, TotalCost: 20}},
		},
	}
	r := newProposalRouter(api)

	w := get(r, "/projects/7/proposal/new?estimate_id=5")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Hospital Wing - Proposal") {
		t.Error("default title not seeded from project name")
	}
	if !strings.Contains(body, "Net 30 days") {
		t.Error("default terms boilerplate missing")
	}
	if !strings.Contains(body, `name="estimate_id" value="5"`) {
		t.Error("estimate must become hidden form state")
	}
}

func TestProposalPreviewIsPureFormState(t *testing.T) {
	api := &fakeProposalAPI{}
	r := newProposalRouter(api)

	w := postForm(r, "/projects/7/proposal/new", url.Values{
		"action":           {"preview"},
		"title":            {"Edited Title"},
		"scope_summary":    {"Install everything"},
		"terms_conditions": {"Custom terms"},
		"project_name":     {"Hospital Wing"},
		"client_name":      {"Jane Smith"},
		"estimate_id":      {"5"},
		"estimate_name":    {"Concrete Package"},
		"est_description":  {"Footings"},
		"est_quantity":     {"2"},
		"est_unit":         {"CY"},
		"est_unit_cost":    {"10"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if api.projectCalls != 0 {
		t.Errorf("preview must not fetch, saw %d project calls", api.projectCalls)
	}
	body := w.Body.String()
	for _, want := range []string{"Edited Title", "Install everything", "Custom terms", "Material Supply Contractor", "$20.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	// Edited state rides along as hidden fields, leaving preview loses nothing.
	if !strings.Contains(body, `name="title" value="Edited Title"`) {
		t.Error("preview must carry the draft for the next action")
	}
}

func TestProposalSaveRequiresTitle(t *testing.T) {
	api := &fakeProposalAPI{}
	r := newProposalRouter(api)

	w := postForm(r, "/projects/7/proposal/new", url.Values{
		"action": {"save"},
		"title":  {"   "},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(api.saved) != 0 {
		t.Errorf("blocked save must not reach the backend, got %d", len(api.saved))
	}
}

func TestProposalSaveCarriesEstimateReference(t *testing.T) {
	api := &fakeProposalAPI{}
	r := newProposalRouter(api)

	w := postForm(r, "/projects/7/proposal/new", url.Values{
		"action":      {"save"},
		"title":       {"Hospital Wing - Proposal"},
		"estimate_id": {"5"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if len(api.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(api.saved))
	}
	if api.saved[0].EstimateID == nil || *api.saved[0].EstimateID != 5 {
		t.Errorf("estimate reference lost: %+v", api.saved[0])
	}
}

func TestProposalSaveFailureKeepsDraft(t *testing.T) {
	api := &fakeProposalAPI{
		saveErr: &gateway.APIError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"},
	}
	r := newProposalRouter(api)

	w := postForm(r, "/projects/7/proposal/new", url.Values{
		"action":           {"save"},
		"title":            {"Hospital Wing - Proposal"},
		"scope_summary":    {"Install everything"},
		"terms_conditions": {"Custom terms"},
		"project_name":     {"Hospital Wing"},
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Hospital Wing - Proposal") || !strings.Contains(body, "Install everything") {
		t.Error("entered draft must survive a failed save")
	}
	if !strings.Contains(body, "Saving the proposal failed") {
		t.Error("failure banner missing")
	}
}

// --- emails ---

type fakeEmailAPI struct {
	auth    *model.EmailAuthStatus
	result  *model.EmailProcessResult
	detail  *model.EmailDetail
	process []gateway.ProcessEmailsInput
}

func (f *fakeEmailAPI) CheckAuth(context.Context) (*model.EmailAuthStatus, error) {
	return f.auth, nil
}

func (f *fakeEmailAPI) ProcessEmails(_ context.Context, input gateway.ProcessEmailsInput) (*model.EmailProcessResult, error) {
	f.process = append(f.process, input)
	return f.result, nil
}

func (f *fakeEmailAPI) GetEmailDetail(context.Context, string, string) (*model.EmailDetail, error) {
	return f.detail, nil
}

func (f *fakeEmailAPI) AuthURL() string { return "http://backend/api/email/auth" }

func newEmailRouter(api *fakeEmailAPI) (*gin.Engine, *EmailController) {
	ec := &EmailController{baseController: &baseController{app: newTestApp()}, api: api}
	r := newTestRouter()
	r.GET("/emails/process", ec.Show)
	r.POST("/emails/process", ec.Process)
	r.GET("/emails/:messageId", ec.Detail)
	return r, ec
}

func TestEmailProcessRemembersAccount(t *testing.T) {
	api := &fakeEmailAPI{
		auth: &model.EmailAuthStatus{Authenticated: true, Accounts: []string{"bids@example.com"}},
		result: &model.EmailProcessResult{
			Message:   "Processed 2 new bid invitations",
			Processed: 2,
			NewProjects: []model.EmailNewProject{
				{ID: 9, Name: "New School", Sender: "Jane Smith <jane@example.com>"},
			},
		},
	}
	r, _ := newEmailRouter(api)

	w := postForm(r, "/emails/process", url.Values{
		"email":       {"bids@example.com"},
		"query":       {"subject:(RFP)"},
		"max_results": {"5"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(api.process) != 1 || api.process[0].MaxResults != 5 {
		t.Errorf("unexpected process input: %+v", api.process)
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, accountCookie+"=") {
		t.Errorf("expected account cookie, got %q", cookie)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Processed 2 new bid invitations") {
		t.Error("backend summary message not rendered")
	}
	if !strings.Contains(body, "New School") || !strings.Contains(body, "Jane Smith") {
		t.Error("new projects not rendered")
	}
}

func TestEmailShowPreselectsRememberedAccount(t *testing.T) {
	api := &fakeEmailAPI{
		auth: &model.EmailAuthStatus{Authenticated: true, Accounts: []string{"bids@example.com", "other@example.com"}},
	}
	r, ec := newEmailRouter(api)

	token, err := ec.app.MailSession.IssueAccountToken("bids@example.com")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/emails/process", nil)
	req.AddCookie(&http.Cookie{Name: accountCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="bids@example.com" selected`) {
		t.Error("remembered account not preselected")
	}
}

func TestEmailShowUnauthenticatedLinksToBackendAuth(t *testing.T) {
	api := &fakeEmailAPI{auth: &model.EmailAuthStatus{Authenticated: false}}
	r, _ := newEmailRouter(api)

	w := get(r, "/emails/process")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http://backend/api/email/auth") {
		t.Error("auth link missing")
	}
}
