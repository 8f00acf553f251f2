package model

import "time"

// Project mirrors the backend project resource. Timestamps travel as ISO
// strings without a zone, so they stay strings on the wire and are parsed
// on demand.
type Project struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	BidDueDate    *string `json:"bid_due_date"`
	SenderName    *string `json:"sender_name"`
	SenderEmail   *string `json:"sender_email"`
	EmailSubject  *string `json:"email_subject"`
	EmailBody     *string `json:"email_body,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	DocumentCount int     `json:"document_count"`
}

// ProjectSummary is the project detail payload: the project plus counts
// grouped by document type and totals for estimates and proposals.
type ProjectSummary struct {
	Project
	DocumentCounts map[string]int `json:"document_counts"`
	EstimateCount  int            `json:"estimate_count"`
	ProposalCount  int            `json:"proposal_count"`
}

// ISO layouts the backend emits. isoformat() may or may not carry fractional
// seconds depending on how the row was written.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOTime parses one of the backend's timestamp renderings.
func ParseISOTime(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BidDueTime returns the parsed due date, false when the project has none.
func (p Project) BidDueTime() (time.Time, bool) {
	if p.BidDueDate == nil || *p.BidDueDate == "" {
		return time.Time{}, false
	}
	return ParseISOTime(*p.BidDueDate)
}

// SenderLabel renders the sender for list views: name when known, otherwise
// the address, otherwise a placeholder.
func (p Project) SenderLabel() string {
	if p.SenderName != nil && *p.SenderName != "" {
		return *p.SenderName
	}
	if p.SenderEmail != nil && *p.SenderEmail != "" {
		return *p.SenderEmail
	}
	return "Not specified"
}
