package models

import (
	"encoding/json"
	"strconv"
)

// Product is a room line item whose category is "Products", annotated with
// the room context it was projected from. Identity is positional: the pair
// (Room, OriginalIndex) addresses the underlying line item, so the projection
// must be re-read after any mutation.
type Product struct {
	LineItem

	// Room is the slug of the owning room.
	Room string `json:"room"`

	// RoomDisplayName is the owning room's display name.
	RoomDisplayName string `json:"roomDisplayName"`

	// OriginalIndex is the item's position in the room's inventory at
	// projection time.
	OriginalIndex int `json:"originalIndex"`

	// UniqueID is the stable-within-one-read composite "<room>-<index>".
	UniqueID string `json:"uniqueId"`
}

// ProductID builds the composite projection identifier for a room slug and
// item position.
func ProductID(room string, index int) string {
	return room + "-" + strconv.Itoa(index)
}

// ProductSave is the inbound payload for creating or updating a product
// through the projection. Room names the target room; PreviousRoom, when it
// differs from Room, marks a move between rooms. A nil OriginalIndex appends
// the item instead of replacing one.
type ProductSave struct {
	Item LineItem

	Room          string
	PreviousRoom  string
	OriginalIndex *int
}

// UnmarshalJSON decodes the flat wire shape: the line-item fields plus the
// projection coordinates at the same level.
func (p *ProductSave) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.Item); err != nil {
		return err
	}

	var coords struct {
		Room          string `json:"room"`
		PreviousRoom  string `json:"previousRoom"`
		OriginalIndex *int   `json:"originalIndex"`
	}
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}

	p.Room = coords.Room
	p.PreviousRoom = coords.PreviousRoom
	p.OriginalIndex = coords.OriginalIndex
	return nil
}
