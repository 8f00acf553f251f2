package gateway

import (
	"context"
	"net/http"

	"github.com/navigatingnc/bid-management-system/internal/model"
)

func (c *Client) CreateProposal(ctx context.Context, proposal model.Proposal) (*model.Proposal, error) {
	var created model.Proposal
	if err := c.sendJSON(ctx, http.MethodPost, "/proposals/", proposal, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
