package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/navigatingnc/bid-management-system/internal/model"
)

// ProjectInput carries the mutable project fields for create and update.
// Pointer fields are omitted when nil so partial updates leave the rest
// untouched.
type ProjectInput struct {
	Name         string  `json:"name"`
	BidDueDate   *string `json:"bid_due_date,omitempty"`
	SenderName   *string `json:"sender_name,omitempty"`
	SenderEmail  *string `json:"sender_email,omitempty"`
	EmailSubject *string `json:"email_subject,omitempty"`
	EmailBody    *string `json:"email_body,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.getJSON(ctx, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID int) (*model.Project, error) {
	var project model.Project
	if err := c.getJSON(ctx, fmt.Sprintf("/projects/%d", projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*model.Project, error) {
	var project model.Project
	if err := c.sendJSON(ctx, http.MethodPost, "/projects/", input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID int, input ProjectInput) (*model.Project, error) {
	var project model.Project
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", projectID), input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID int) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d", projectID))
}

func (c *Client) GetProjectSummary(ctx context.Context, projectID int) (*model.ProjectSummary, error) {
	var summary model.ProjectSummary
	if err := c.getJSON(ctx, fmt.Sprintf("/projects/%d/summary", projectID), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) ListProjectDocuments(ctx context.Context, projectID int) ([]model.Document, error) {
	var documents []model.Document
	if err := c.getJSON(ctx, fmt.Sprintf("/projects/%d/documents", projectID), nil, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}
