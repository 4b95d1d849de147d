package models

import (
	"encoding/json"
	"time"
)

// Status is the procurement state shared by line items and expenses.
type Status string

const (
	StatusPlanning  Status = "Planning"
	StatusPending   Status = "Pending"
	StatusOrdered   Status = "Ordered"
	StatusCompleted Status = "Completed"
)

// CategoryProducts is the line-item category with special meaning: items
// carrying it are exposed through the product projection.
const CategoryProducts = "Products"

// Room is a single remodel area owning an ordered list of line items.
// Item position within Items is the item's identity inside the room.
type Room struct {
	// Slug is the unique URL-safe identifier of the room.
	Slug string `json:"slug"`

	// Name is the display name of the room.
	Name string `json:"name"`

	// Items is the ordered inventory of the room. Saves replace the list
	// in its entirety.
	Items []LineItem `json:"items"`

	// Metadata carries free-form room attributes the backend does not
	// interpret (floor area, paint codes, and the like).
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Room model.
func (r Room) TableName() string {
	return "rooms"
}

// Option is a product variant embedded in a line item (for example a specific
// SKU under consideration). It is referenced only from within its item via
// LineItem.SelectedOptionID.
type Option struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

// LineItem is a single row in a room's inventory: a product, material, labor
// entry, etc. Subtotal is recomputed on every save and must not be trusted
// from client input.
type LineItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`

	// BudgetRate and ActualRate are the per-unit planned and actual prices.
	// Either may be absent or zero. The wire format also accepts the legacy
	// budget_price/actual_price aliases on input.
	BudgetRate float64 `json:"budgetRate"`
	ActualRate float64 `json:"actualRate"`

	// Subtotal is derived on save: quantity x (actualRate when positive,
	// else budgetRate).
	Subtotal float64 `json:"subtotal"`

	Status   Status `json:"status,omitempty"`
	Favorite bool   `json:"favorite,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Links    []Link `json:"links,omitempty"`

	Images []Image `json:"images,omitempty"`

	// ProductOptions are the candidate variants of a product item.
	ProductOptions []Option `json:"productOptions,omitempty"`

	// SelectedOptionID, when non-empty, must reference the ID of an entry
	// in ProductOptions of the same item.
	SelectedOptionID string `json:"selectedOptionId,omitempty"`

	// SelectedProductName is a display cache of the selected option's name.
	SelectedProductName string `json:"selectedProductName,omitempty"`
}

// ComputeSubtotal returns quantity x (actualRate when positive, else
// budgetRate).
func (li LineItem) ComputeSubtotal() float64 {
	rate := li.BudgetRate
	if li.ActualRate > 0 {
		rate = li.ActualRate
	}
	return li.Quantity * rate
}

// EffectiveSpend is the amount an item contributes to project spend: its
// subtotal when the item is Completed, zero otherwise.
func (li LineItem) EffectiveSpend() float64 {
	if li.Status != StatusCompleted {
		return 0
	}
	return li.ComputeSubtotal()
}

// lineItemAlias mirrors LineItem without methods so the custom unmarshaller
// can decode the canonical fields with the standard machinery.
type lineItemAlias LineItem

// lineItemWire adds the legacy snake_case price aliases accepted on input.
type lineItemWire struct {
	lineItemAlias
	BudgetPrice *float64 `json:"budget_price"`
	ActualPrice *float64 `json:"actual_price"`
}

// UnmarshalJSON decodes a line item accepting both the canonical
// budgetRate/actualRate fields and the legacy budget_price/actual_price
// aliases. Canonical fields win when both are present; output always uses
// the canonical names.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var wire lineItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	item := LineItem(wire.lineItemAlias)
	if item.BudgetRate == 0 && wire.BudgetPrice != nil {
		item.BudgetRate = *wire.BudgetPrice
	}
	if item.ActualRate == 0 && wire.ActualPrice != nil {
		item.ActualRate = *wire.ActualPrice
	}

	*li = item
	return nil
}
