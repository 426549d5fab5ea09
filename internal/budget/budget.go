// Package budget holds the working, unsaved list of line items for a session.
package budget

import (
	"errors"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
)

// DefaultProjectName is the placeholder name of a new or cleared budget.
const DefaultProjectName = "Novo Projeto"

var ErrEmptyBudget = errors.New("budget has no items")

// Budget is the session's ordered list of items. It owns its items; values
// passed in and handed out are copies.
type Budget struct {
	projectName string
	items       []estimate.CalculationItem
	currentID   string
}

func New() *Budget {
	return &Budget{projectName: DefaultProjectName}
}

// Add appends a copy of item.
func (b *Budget) Add(item estimate.CalculationItem) {
	b.items = append(b.items, item.Clone())
}

// Remove drops the first item with the given id and reports whether one was
// found.
func (b *Budget) Remove(id string) bool {
	for i, item := range b.items {
		if item.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the budget, restores the default name and forgets the saved
// budget it came from.
func (b *Budget) Clear() {
	b.items = nil
	b.projectName = DefaultProjectName
	b.currentID = ""
}

func (b *Budget) Items() []estimate.CalculationItem {
	return estimate.CloneItems(b.items)
}

func (b *Budget) Len() int {
	return len(b.items)
}

// Total is the sum of the item totals, recomputed on every call.
func (b *Budget) Total() float64 {
	return estimate.SumItems(b.items)
}

func (b *Budget) ProjectName() string {
	return b.projectName
}

func (b *Budget) SetProjectName(name string) {
	b.projectName = name
}

// CurrentBudgetID returns the history entry this session was loaded from or
// last saved as.
func (b *Budget) CurrentBudgetID() (string, bool) {
	return b.currentID, b.currentID != ""
}

// Save writes the budget to h, updating the current entry when there is one,
// and remembers the resulting id.
func (b *Budget) Save(h *history.Store) (history.SavedBudget, error) {
	if len(b.items) == 0 {
		return history.SavedBudget{}, ErrEmptyBudget
	}
	saved := h.Save(b.projectName, b.items, b.Total(), b.currentID)
	b.currentID = saved.ID
	b.projectName = saved.Name
	return saved, nil
}

// Load replaces the session with a copy of entry.
func (b *Budget) Load(entry history.SavedBudget) {
	b.items = estimate.CloneItems(entry.Items)
	b.projectName = entry.Name
	b.currentID = entry.ID
}
