package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/navigatingnc/bid-management-system/internal/constant"
	"github.com/navigatingnc/bid-management-system/internal/model"
)

// ProcessEmailsInput selects the mailbox to scan. Query and MaxResults fall
// back to the backend defaults when zero.
type ProcessEmailsInput struct {
	Email      string `json:"email"`
	Query      string `json:"query,omitempty"`
	MaxResults int    `json:"max_results"`
}

func (c *Client) CheckAuth(ctx context.Context) (*model.EmailAuthStatus, error) {
	var status model.EmailAuthStatus
	if err := c.getJSON(ctx, "/email/check", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) ProcessEmails(ctx context.Context, input ProcessEmailsInput) (*model.EmailProcessResult, error) {
	if input.MaxResults <= 0 {
		input.MaxResults = constant.DefaultEmailMaxResults
	}

	var result model.EmailProcessResult
	if err := c.sendJSON(ctx, http.MethodPost, "/email/process", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetEmailDetail(ctx context.Context, messageID, email string) (*model.EmailDetail, error) {
	query := url.Values{}
	query.Set("email", email)

	var detail model.EmailDetail
	if err := c.getJSON(ctx, "/email/email/"+url.PathEscape(messageID), query, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AuthURL is the backend's OAuth entry point. It is rendered as a link and
// never fetched by the console.
func (c *Client) AuthURL() string {
	return c.baseURL + "/email/auth"
}
