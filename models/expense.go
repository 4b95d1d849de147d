package models

import "time"

// RoomAllocation splits a portion of a shared expense onto one room.
type RoomAllocation struct {
	Room       string  `json:"room"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Expense is a general (cross-room) project expense. An expense with no Rooms
// is a project-wide general expense; one with Rooms but no explicit
// RoomAllocations is split equally across its rooms.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Status      Status  `json:"status,omitempty"`

	Date          *time.Time `json:"date,omitempty"`
	CreatedDate   time.Time  `json:"createdDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	// Rooms lists the slugs of the rooms this expense is attributed to.
	Rooms []string `json:"rooms,omitempty"`

	// RoomAllocations, when non-empty, distributes Amount explicitly.
	// Every allocation room must appear in Rooms, amounts must sum to
	// Amount within one minor unit, and percentages to 100 +/- 0.5.
	RoomAllocations []RoomAllocation `json:"roomAllocations,omitempty"`

	IsSharedExpense bool   `json:"isSharedExpense,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// TableName returns the name of the database table
// associated with the Expense model.
func (e Expense) TableName() string {
	return "expenses"
}

// IsGeneral reports whether the expense is attributed to no room at all.
func (e Expense) IsGeneral() bool {
	return len(e.Rooms) == 0
}

// AllocatedAmounts returns the per-room attribution of the expense amount:
// explicit allocations when present, otherwise an equal split across Rooms.
// A general expense yields an empty map.
func (e Expense) AllocatedAmounts() map[string]float64 {
	out := make(map[string]float64, len(e.Rooms))

	if len(e.RoomAllocations) > 0 {
		for _, alloc := range e.RoomAllocations {
			out[alloc.Room] += alloc.Amount
		}
		return out
	}

	if len(e.Rooms) > 0 {
		share := e.Amount / float64(len(e.Rooms))
		for _, room := range e.Rooms {
			out[room] += share
		}
	}

	return out
}

// EffectiveSpend is the amount the expense contributes to project spend:
// Amount when Completed, zero otherwise.
func (e Expense) EffectiveSpend() float64 {
	if e.Status != StatusCompleted {
		return 0
	}
	return e.Amount
}

// CategorySummary is one row of the expense/category rollups.
type CategorySummary struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// RoomSpendSummary is one row of the per-room expense attribution.
type RoomSpendSummary struct {
	Room        string  `json:"room"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// ExpensesSummary aggregates expenses by category and by room.
type ExpensesSummary struct {
	ByCategory []CategorySummary  `json:"byCategory"`
	ByRoom     []RoomSpendSummary `json:"byRoom"`
}

// Totals is the project-wide budget-versus-spend comparison.
type Totals struct {
	TotalBudget    float64 `json:"totalBudget"`
	TotalExpenses  float64 `json:"totalExpenses"`
	PercentageUsed float64 `json:"percentageUsed"`
}

// CategoryEntry is one distinct category across rooms and expenses with its
// occurrence count and monetary total.
type CategoryEntry struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}
