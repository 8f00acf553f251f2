// Package bidsheet implements the estimate line-item computation used by
// the estimate builder: per-row totals as quantity times unit cost, a grand
// total over all rows, and the row add/remove rules the form relies on.
package bidsheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameRequired    = errors.New("estimate name is required")
	ErrNegativeValue   = errors.New("quantity and unit cost must not be negative")
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// DescriptionError reports which rows are missing a description. Save is
// blocked while any exists.
type DescriptionError struct {
	Rows []int
}

func (e *DescriptionError) Error() string {
	return fmt.Sprintf("item description is required (rows %v)", e.Rows)
}

// Item is one editable row. TotalCost is derived and recomputed by the
// sheet on every quantity or unit-cost edit, never set directly.
type Item struct {
	Description string
	Quantity    float64
	Unit        string
	UnitCost    float64
	TotalCost   float64
	Notes       string
}

// Sheet is the transient estimate being built. It always holds at least
// one row so the form always has something editable.
type Sheet struct {
	ProjectID   int
	Name        string
	Description string
	Items       []Item
}

// NewSheet starts a sheet with a single zero-valued row.
func NewSheet(projectID int) *Sheet {
	return &Sheet{
		ProjectID: projectID,
		Items:     []Item{{}},
	}
}

// SetQuantity updates one row's quantity and recomputes only that row's
// total. Other rows are untouched.
func (s *Sheet) SetQuantity(index int, quantity float64) error {
	if index < 0 || index >= len(s.Items) {
		return ErrIndexOutOfRange
	}
	if quantity < 0 {
		return ErrNegativeValue
	}

	s.Items[index].Quantity = quantity
	s.Items[index].TotalCost = s.Items[index].Quantity * s.Items[index].UnitCost
	return nil
}

// SetUnitCost updates one row's unit cost and recomputes only that row's
// total.
func (s *Sheet) SetUnitCost(index int, unitCost float64) error {
	if index < 0 || index >= len(s.Items) {
		return ErrIndexOutOfRange
	}
	if unitCost < 0 {
		return ErrNegativeValue
	}

	s.Items[index].UnitCost = unitCost
	s.Items[index].TotalCost = s.Items[index].Quantity * s.Items[index].UnitCost
	return nil
}

// AddItem appends a zero-valued row, preserving the order of existing rows.
func (s *Sheet) AddItem() {
	s.Items = append(s.Items, Item{})
}

// RemoveItem deletes the row at index, keeping the remaining order. When it
// is the last remaining row its fields are cleared instead, the sheet never
// shrinks below one row.
func (s *Sheet) RemoveItem(index int) error {
	if index < 0 || index >= len(s.Items) {
		return ErrIndexOutOfRange
	}

	if len(s.Items) == 1 {
		s.Items[0] = Item{}
		return nil
	}

	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	return nil
}

// Recalculate recomputes every row total from its quantity and unit cost.
// Used after binding a whole posted form, where every field may have
// changed at once.
func (s *Sheet) Recalculate() {
	for i := range s.Items {
		s.Items[i].TotalCost = s.Items[i].Quantity * s.Items[i].UnitCost
	}
}

// Total is the estimate grand total, the sum of all row totals.
func (s *Sheet) Total() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.TotalCost
	}
	return total
}

// Validate applies the local save gate: a sheet with an empty name or any
// row missing a description must be rejected before any network call.
func (s *Sheet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}

	var missing []int
	for i, item := range s.Items {
		if strings.TrimSpace(item.Description) == "" {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return &DescriptionError{Rows: missing}
	}

	return nil
}
