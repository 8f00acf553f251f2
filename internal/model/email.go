package model

// EmailAuthStatus reports which Gmail accounts the backend holds
// credentials for.
type EmailAuthStatus struct {
	Authenticated bool     `json:"authenticated"`
	Accounts      []string `json:"accounts"`
}

// EmailNewProject is the trimmed project record a processing run reports
// for each project it created. Sender is preformatted by the backend as
// "Name <address>" or just the address.
type EmailNewProject struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	BidDueDate *string `json:"bid_due_date"`
	Sender     string  `json:"sender"`
}

// EmailProcessResult summarizes one processing run over a mailbox.
// NewProjects is absent when no new bid invitations were found.
type EmailProcessResult struct {
	Message     string            `json:"message"`
	Processed   int               `json:"processed"`
	NewProjects []EmailNewProject `json:"new_projects"`
}

// EmailAttachment is one attachment entry on a message detail.
type EmailAttachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// EmailDetail is the full message payload for the detail view.
type EmailDetail struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Date        string            `json:"date"`
	Body        string            `json:"body"`
	Attachments []EmailAttachment `json:"attachments"`
}
