package model

// Proposal mirrors the proposal resource. EstimateID is present only when
// the proposal was seeded from an estimate; rendering works either way.
type Proposal struct {
	ID              int    `json:"id,omitempty"`
	ProjectID       int    `json:"project_id"`
	EstimateID      *int   `json:"estimate_id,omitempty"`
	Title           string `json:"title"`
	ScopeSummary    string `json:"scope_summary"`
	TermsConditions string `json:"terms_conditions"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}
