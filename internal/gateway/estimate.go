package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/navigatingnc/bid-management-system/internal/model"
)

// Estimate persistence. The SPA this console replaces only logged the save
// payload; these endpoints define the contract the save actions post to,
// shaped exactly like the estimate resource.

func (c *Client) CreateEstimate(ctx context.Context, estimate model.Estimate) (*model.Estimate, error) {
	var created model.Estimate
	if err := c.sendJSON(ctx, http.MethodPost, "/estimates/", estimate, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetEstimate(ctx context.Context, estimateID int) (*model.Estimate, error) {
	var estimate model.Estimate
	if err := c.getJSON(ctx, fmt.Sprintf("/estimates/%d", estimateID), nil, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}
