// Package proposaldoc assembles client-facing proposal documents from a
// project, an optional cost estimate, and the free-text scope and terms the
// user edits in the proposal builder. Assembly is pure: a preview is a
// read-only view over current form state with no I/O.
package proposaldoc

import (
	"errors"
	"strings"
	"time"
)

// DefaultTerms is the legal boilerplate a new proposal starts with. The
// user may overwrite it freely.
const DefaultTerms = "Payment Terms: Net 30 days from invoice date.\n" +
	"Validity: This proposal is valid for 30 days from the date of issue.\n" +
	"Changes: Any changes to the scope of work may result in price adjustments.\n" +
	"Acceptance: Signature below indicates acceptance of this proposal."

// DefaultScopeForEstimate is the scope summary seeded when a proposal is
// started from an existing estimate.
const DefaultScopeForEstimate = "This proposal includes the following scope of work:\n\n" +
	"- Supply of all materials as specified\n" +
	"- Labor for installation\n" +
	"- Equipment rental\n" +
	"- Project management and supervision\n\n" +
	"All work to be completed according to industry standards and local building codes."

var ErrTitleRequired = errors.New("proposal title is required")

// Company is the letterhead block.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// ProjectInfo is the project identity printed on the proposal.
type ProjectInfo struct {
	ID          int
	Name        string
	ClientName  string
	ClientEmail string
	BidDueDate  string
}

// LineItem is one costed row carried over from the seeding estimate.
type LineItem struct {
	Description string
	Quantity    float64
	Unit        string
	UnitCost    float64
	TotalCost   float64
}

// EstimateInfo is the optional cost section of a proposal.
type EstimateInfo struct {
	ID        int
	Name      string
	TotalCost float64
	Items     []LineItem
}

// Draft is the editable proposal form state.
type Draft struct {
	ProjectID       int
	EstimateID      *int
	Title           string
	ScopeSummary    string
	TermsConditions string
}

// NewDraft seeds a draft for a project: default title, boilerplate terms,
// and, when started from an estimate, the estimate reference plus a default
// scope summary.
func NewDraft(project ProjectInfo, estimate *EstimateInfo) Draft {
	draft := Draft{
		ProjectID:       project.ID,
		Title:           project.Name + " - Proposal",
		TermsConditions: DefaultTerms,
	}
	if estimate != nil {
		draft.EstimateID = &estimate.ID
		draft.ScopeSummary = DefaultScopeForEstimate
	}
	return draft
}

// Validate applies the local save gate before any network call.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Preview is the assembled document: everything the rendered proposal
// shows, in order. It must render whether or not Estimate is present.
type Preview struct {
	Company      Company
	Title        string
	ProposalDate time.Time
	Project      ProjectInfo
	Scope        string
	Estimate     *EstimateInfo
	Terms        string
}

// BuildPreview assembles a preview from the draft and its context. Pure:
// edits made to the draft before entering preview are reflected
// immediately, and nothing is fetched or persisted.
func BuildPreview(company Company, project ProjectInfo, estimate *EstimateInfo, draft Draft, now time.Time) Preview {
	return Preview{
		Company:      company,
		Title:        draft.Title,
		ProposalDate: now,
		Project:      project,
		Scope:        draft.ScopeSummary,
		Estimate:     estimate,
		Terms:        draft.TermsConditions,
	}
}
