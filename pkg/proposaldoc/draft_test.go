package proposaldoc

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDraft(t *testing.T) {
	project := ProjectInfo{ID: 4, Name: "Elm Street School"}

	t.Run("without estimate", func(t *testing.T) {
		draft := NewDraft(project, nil)

		if draft.Title != "Elm Street School - Proposal" {
			t.Errorf("unexpected title %q", draft.Title)
		}
		if draft.TermsConditions != DefaultTerms {
			t.Errorf("expected boilerplate terms, got %q", draft.TermsConditions)
		}
		if draft.EstimateID != nil {
			t.Errorf("expected no estimate reference, got %v", *draft.EstimateID)
		}
		if draft.ScopeSummary != "" {
			t.Errorf("expected empty scope, got %q", draft.ScopeSummary)
		}
	})

	t.Run("seeded from estimate", func(t *testing.T) {
		estimate := &EstimateInfo{ID: 9, Name: "Base bid", TotalCost: 12500.75}
		draft := NewDraft(project, estimate)

		if draft.EstimateID == nil || *draft.EstimateID != 9 {
			t.Fatalf("expected estimate reference 9, got %v", draft.EstimateID)
		}
		if draft.ScopeSummary != DefaultScopeForEstimate {
			t.Errorf("expected seeded scope summary")
		}
	})
}

func TestDraftValidate(t *testing.T) {
	draft := Draft{Title: "   "}
	if err := draft.Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}

	draft.Title = "Elm Street School - Proposal"
	if err := draft.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildPreviewReflectsDraftState(t *testing.T) {
	company := Company{Name: "Material Supply Contractor"}
	project := ProjectInfo{ID: 4, Name: "Elm Street School", ClientName: "J. Mason"}
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	draft := NewDraft(project, nil)
	draft.ScopeSummary = "Concrete work only."
	draft.TermsConditions = "Net 15."

	preview := BuildPreview(company, project, nil, draft, now)

	if preview.Scope != "Concrete work only." {
		t.Errorf("preview must reflect edited scope, got %q", preview.Scope)
	}
	if preview.Terms != "Net 15." {
		t.Errorf("preview must reflect edited terms, got %q", preview.Terms)
	}
	if preview.Estimate != nil {
		t.Errorf("expected estimate-less preview to carry no estimate")
	}
	if !preview.ProposalDate.Equal(now) {
		t.Errorf("expected proposal date %v, got %v", now, preview.ProposalDate)
	}

	// Round trip back to the form: the draft is untouched by previewing.
	if draft.ScopeSummary != "Concrete work only." || draft.TermsConditions != "Net 15." {
		t.Errorf("draft state must survive preview, got %+v", draft)
	}
}

func TestBuildPreviewWithEstimate(t *testing.T) {
	estimate := &EstimateInfo{
		ID:        9,
		Name:      "Base bid",
		TotalCost: 12500.75,
		Items: []LineItem{
			{Description: "Material Supply", Quantity: 1, Unit: "lot", UnitCost: 7500, TotalCost: 7500},
			{Description: "Labor", Quantity: 40, Unit: "hours", UnitCost: 125, TotalCost: 5000},
		},
	}
	draft := NewDraft(ProjectInfo{ID: 4, Name: "Elm Street School"}, estimate)

	preview := BuildPreview(Company{}, ProjectInfo{ID: 4, Name: "Elm Street School"}, estimate, draft, time.Now())

	if preview.Estimate == nil || len(preview.Estimate.Items) != 2 {
		t.Fatalf("expected estimate section with 2 items, got %+v", preview.Estimate)
	}
	if preview.Estimate.TotalCost != 12500.75 {
		t.Errorf("expected total 12500.75, got %v", preview.Estimate.TotalCost)
	}
}

func TestDefaultTermsBoilerplate(t *testing.T) {
	for _, want := range []string{"Net 30 days", "valid for 30 days", "price adjustments", "Signature below"} {
		if !strings.Contains(DefaultTerms, want) {
			t.Errorf("expected boilerplate to mention %q", want)
		}
	}
}
