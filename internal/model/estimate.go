package model

// EstimateItem is one costed line of an estimate. TotalCost is derived,
// always quantity times unit cost, never set independently.
type EstimateItem struct {
	ID          int     `json:"id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	TotalCost   float64 `json:"total_cost"`
	Notes       string  `json:"notes"`
}

// Estimate mirrors the estimate resource: an ordered, costed item list for
// one project.
type Estimate struct {
	ID          int            `json:"id,omitempty"`
	ProjectID   int            `json:"project_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	TotalCost   float64        `json:"total_cost"`
	Items       []EstimateItem `json:"items"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}
