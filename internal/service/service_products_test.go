package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// roomStore is an in-memory RoomRepository for product write-through tests.
type roomStore struct {
	mockRoomRepository
	rooms map[string]*models.Room
	order []string

	// failSaveOf makes saves of one room fail, to exercise compensation
	failSaveOf string
}

func newRoomStore(rooms ...models.Room) *roomStore {
	s := &roomStore{rooms: make(map[string]*models.Room)}
	for i := range rooms {
		room := rooms[i]
		s.rooms[room.Slug] = &room
		s.order = append(s.order, room.Slug)
	}

	s.listFn = func(_ context.Context) ([]models.Room, error) {
		out := make([]models.Room, 0, len(s.order))
		for _, slug := range s.order {
			out = append(out, *s.rooms[slug])
		}
		return out, nil
	}
	s.getFn = func(_ context.Context, slug string) (models.Room, error) {
		room, ok := s.rooms[slug]
		if !ok {
			return models.Room{}, store.ErrRoomNotFound
		}
		return *room, nil
	}
	s.saveFn = func(_ context.Context, room models.Room) (models.Room, error) {
		if room.Slug == s.failSaveOf {
			return models.Room{}, errStorage
		}
		if _, ok := s.rooms[room.Slug]; !ok {
			return models.Room{}, store.ErrRoomNotFound
		}
		stored := room
		s.rooms[room.Slug] = &stored
		return stored, nil
	}

	return s
}

func newTestProductService(s *roomStore) ProductService {
	return NewProductService(s, utils.NewUUIDGenerator(), logger.Nop())
}

func intPtr(v int) *int { return &v }

func fixtureRooms() (models.Room, models.Room) {
	kitchen := models.Room{
		Slug: "kitchen",
		Name: "Kitchen",
		Items: []models.LineItem{
			{Description: "Demolition labor", Category: "Labor", Quantity: 8, BudgetRate: 50},
			{Description: "Faucet", Category: models.CategoryProducts, Quantity: 1, BudgetRate: 120},
			{Description: "Range hood", Category: models.CategoryProducts, Quantity: 1, BudgetRate: 400},
		},
	}
	bath := models.Room{
		Slug: "bath",
		Name: "Bathroom",
		Items: []models.LineItem{
			{Description: "Mirror", Category: models.CategoryProducts, Quantity: 1, BudgetRate: 90},
		},
	}
	return kitchen, bath
}

// ─────────────────────────────────────────────
// ListProducts
// ─────────────────────────────────────────────

func TestProductService_ListProducts_ProjectsAcrossRooms(t *testing.T) {
	kitchen, bath := fixtureRooms()
	products := newTestProductService(newRoomStore(kitchen, bath))

	list, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3, "only Products items are projected")

	assert.Equal(t, "Faucet", list[0].Description)
	assert.Equal(t, "kitchen", list[0].Room)
	assert.Equal(t, "Kitchen", list[0].RoomDisplayName)
	assert.Equal(t, 1, list[0].OriginalIndex, "index counts all items, not only products")
	assert.Equal(t, "kitchen-1", list[0].UniqueID)

	assert.Equal(t, "Range hood", list[1].Description)
	assert.Equal(t, "Mirror", list[2].Description)
	assert.Equal(t, "bath-0", list[2].UniqueID)
}

func TestProductService_ListProducts_EmptyProjection(t *testing.T) {
	products := newTestProductService(newRoomStore(models.Room{Slug: "kitchen", Name: "Kitchen"}))

	list, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// ─────────────────────────────────────────────
// SaveProduct
// ─────────────────────────────────────────────

func TestProductService_SaveProduct_AppendsWithoutIndex(t *testing.T) {
	kitchen, bath := fixtureRooms()
	s := newRoomStore(kitchen, bath)
	products := newTestProductService(s)

	list, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item: models.LineItem{Description: "Dishwasher", Quantity: 1, BudgetRate: 600},
		Room: "kitchen",
	})
	require.NoError(t, err)

	require.Len(t, s.rooms["kitchen"].Items, 4)
	added := s.rooms["kitchen"].Items[3]
	assert.Equal(t, models.CategoryProducts, added.Category, "the projection forces the category")
	assert.Equal(t, float64(600), added.Subtotal)

	assert.Len(t, list, 4, "refreshed projection includes the new product")
}

func TestProductService_SaveProduct_ReplacesAtIndex(t *testing.T) {
	kitchen, bath := fixtureRooms()
	s := newRoomStore(kitchen, bath)
	products := newTestProductService(s)

	_, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item:          models.LineItem{Description: "Faucet (brushed)", Quantity: 1, BudgetRate: 150},
		Room:          "kitchen",
		OriginalIndex: intPtr(1),
	})
	require.NoError(t, err)

	require.Len(t, s.rooms["kitchen"].Items, 3)
	assert.Equal(t, "Faucet (brushed)", s.rooms["kitchen"].Items[1].Description)
}

func TestProductService_SaveProduct_MovesBetweenRooms(t *testing.T) {
	kitchen, bath := fixtureRooms()
	s := newRoomStore(kitchen, bath)
	products := newTestProductService(s)

	_, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item:          models.LineItem{Description: "Range hood", Quantity: 1, BudgetRate: 400},
		Room:          "bath",
		PreviousRoom:  "kitchen",
		OriginalIndex: intPtr(2),
	})
	require.NoError(t, err)

	assert.Len(t, s.rooms["kitchen"].Items, 2, "item must leave the source room")
	require.Len(t, s.rooms["bath"].Items, 2)
	assert.Equal(t, "Range hood", s.rooms["bath"].Items[1].Description)
}

func TestProductService_SaveProduct_MoveCompensatesFailedTargetSave(t *testing.T) {
	kitchen, bath := fixtureRooms()
	s := newRoomStore(kitchen, bath)
	s.failSaveOf = "bath"
	products := newTestProductService(s)

	_, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item:          models.LineItem{Description: "Range hood", Quantity: 1, BudgetRate: 400},
		Room:          "bath",
		PreviousRoom:  "kitchen",
		OriginalIndex: intPtr(2),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductMoveIncomplete, "compensation succeeded, the move just failed")

	// the item is back where it was
	require.Len(t, s.rooms["kitchen"].Items, 3)
	assert.Equal(t, "Range hood", s.rooms["kitchen"].Items[2].Description)
	assert.Len(t, s.rooms["bath"].Items, 1)
}

func TestProductService_SaveProduct_MoveToUnknownTarget(t *testing.T) {
	kitchen, _ := fixtureRooms()
	s := newRoomStore(kitchen)
	products := newTestProductService(s)

	_, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item:          models.LineItem{Description: "Range hood"},
		Room:          "ghost",
		PreviousRoom:  "kitchen",
		OriginalIndex: intPtr(2),
	})
	require.ErrorIs(t, err, store.ErrRoomNotFound)

	// the target is checked before the source is touched
	assert.Len(t, s.rooms["kitchen"].Items, 3)
}

func TestProductService_SaveProduct_RequiresRoom(t *testing.T) {
	products := newTestProductService(newRoomStore())

	_, err := products.SaveProduct(context.Background(), models.ProductSave{
		Item: models.LineItem{Description: "Dishwasher"},
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// DeleteProduct
// ─────────────────────────────────────────────

func TestProductService_DeleteProduct_ShiftsPositions(t *testing.T) {
	kitchen, bath := fixtureRooms()
	s := newRoomStore(kitchen, bath)
	products := newTestProductService(s)

	require.NoError(t, products.DeleteProduct(context.Background(), "kitchen", 1))

	require.Len(t, s.rooms["kitchen"].Items, 2)
	assert.Equal(t, "Range hood", s.rooms["kitchen"].Items[1].Description)

	list, err := products.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kitchen-1", list[0].UniqueID, "positions shift after a delete")
}

func TestProductService_DeleteProduct_IndexOutOfRange(t *testing.T) {
	kitchen, _ := fixtureRooms()
	products := newTestProductService(newRoomStore(kitchen))

	err := products.DeleteProduct(context.Background(), "kitchen", 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_UnknownRoom(t *testing.T) {
	products := newTestProductService(newRoomStore())

	err := products.DeleteProduct(context.Background(), "ghost", 0)
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
}
