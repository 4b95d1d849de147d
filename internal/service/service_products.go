package service

import (
	"context"
	"errors"
	"fmt"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// productService projects line items carrying the Products category out of
// every room into one flat list. The projection has no storage of its own:
// every mutation is a write-through to the owning room's document.
type productService struct {
	roomRepository store.RoomRepository
	ids            *utils.UUIDGenerator
	logger         *logger.Logger
}

func NewProductService(roomRepository store.RoomRepository, ids *utils.UUIDGenerator, logger *logger.Logger) ProductService {
	return &productService{
		roomRepository: roomRepository,
		ids:            ids,
		logger:         logger,
	}
}

// ListProducts walks rooms in inventory order and collects their product
// items, annotated with the room context and the positional id valid for
// this read.
func (p *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	rooms, err := p.roomRepository.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms failed: %w", err)
	}

	return projectProducts(rooms), nil
}

// SaveProduct writes a product into its room's inventory and returns the
// refreshed projection.
//
// With PreviousRoom empty or equal to Room, the item replaces the one at
// OriginalIndex, or is appended when the index is absent or out of range.
// A differing PreviousRoom moves the item: it is removed from the source
// room first, then appended to the target. When the second save fails the
// removal is compensated by re-inserting the item at its original position;
// if that also fails, ErrProductMoveIncomplete is returned.
func (p *productService) SaveProduct(ctx context.Context, save models.ProductSave) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	if save.Room == "" {
		return nil, newValidationError("room", "must not be empty")
	}

	item := save.Item
	item.Category = models.CategoryProducts
	item.Subtotal = item.ComputeSubtotal()
	assignEmbeddedIDs(p.ids, &item)

	if opt := item.SelectedOptionID; opt != "" && findOption(item.ProductOptions, opt) == nil {
		return nil, newValidationError("selectedOptionId", "option %q is not among the product options", opt)
	}

	var err error
	if save.PreviousRoom == "" || save.PreviousRoom == save.Room {
		err = p.saveInPlace(ctx, save.Room, save.OriginalIndex, item)
	} else {
		err = p.moveBetweenRooms(ctx, save.PreviousRoom, save.Room, save.OriginalIndex, item)
	}
	if err != nil {
		log.Err(err).Str("room", save.Room).Msg("product save ended with error")
		return nil, err
	}

	return p.ListProducts(ctx)
}

// DeleteProduct removes the item at the given position from a room. Positions
// of the remaining items shift down, so callers must re-read the projection.
func (p *productService) DeleteProduct(ctx context.Context, room string, index int) error {
	log := logger.FromContext(ctx)

	owner, err := p.roomRepository.GetRoom(ctx, room)
	if err != nil {
		return fmt.Errorf("room lookup failed: %w", err)
	}

	if index < 0 || index >= len(owner.Items) {
		return fmt.Errorf("%w: no item at index %d in room %q", ErrProductNotFound, index, room)
	}

	owner.Items = append(owner.Items[:index], owner.Items[index+1:]...)
	if _, err := p.roomRepository.SaveRoom(ctx, owner); err != nil {
		log.Err(err).Str("room", room).Int("index", index).Msg("product deletion ended with error")
		return fmt.Errorf("product deletion ended with error: %w", err)
	}

	return nil
}

func (p *productService) saveInPlace(ctx context.Context, room string, index *int, item models.LineItem) error {
	owner, err := p.roomRepository.GetRoom(ctx, room)
	if err != nil {
		return fmt.Errorf("room lookup failed: %w", err)
	}

	if index != nil && *index >= 0 && *index < len(owner.Items) {
		owner.Items[*index] = item
	} else {
		owner.Items = append(owner.Items, item)
	}

	if _, err := p.roomRepository.SaveRoom(ctx, owner); err != nil {
		return fmt.Errorf("room save ended with error: %w", err)
	}

	return nil
}

func (p *productService) moveBetweenRooms(ctx context.Context, fromSlug string, toSlug string, index *int, item models.LineItem) error {
	log := logger.FromContext(ctx)

	if index == nil {
		return newValidationError("originalIndex", "required when moving between rooms")
	}

	from, err := p.roomRepository.GetRoom(ctx, fromSlug)
	if err != nil {
		return fmt.Errorf("source room lookup failed: %w", err)
	}
	if *index < 0 || *index >= len(from.Items) {
		return fmt.Errorf("%w: no item at index %d in room %q", ErrProductNotFound, *index, fromSlug)
	}

	// target must exist before the source is touched
	to, err := p.roomRepository.GetRoom(ctx, toSlug)
	if err != nil {
		return fmt.Errorf("target room lookup failed: %w", err)
	}

	original := from.Items[*index]
	from.Items = append(from.Items[:*index], from.Items[*index+1:]...)
	if _, err := p.roomRepository.SaveRoom(ctx, from); err != nil {
		return fmt.Errorf("removing product from source room failed: %w", err)
	}

	to.Items = append(to.Items, item)
	if _, err := p.roomRepository.SaveRoom(ctx, to); err != nil {
		log.Err(err).Str("from", fromSlug).Str("to", toSlug).Msg("target save failed, re-inserting into source room")

		if compErr := p.reinsert(ctx, fromSlug, *index, original); compErr != nil {
			log.Err(compErr).Str("room", fromSlug).Msg("compensating re-insert failed")
			return fmt.Errorf("%w: %w", ErrProductMoveIncomplete, errors.Join(err, compErr))
		}
		return fmt.Errorf("adding product to target room failed: %w", err)
	}

	return nil
}

// reinsert puts an item back at its original position after a failed move.
func (p *productService) reinsert(ctx context.Context, slug string, index int, item models.LineItem) error {
	room, err := p.roomRepository.GetRoom(ctx, slug)
	if err != nil {
		return err
	}

	if index > len(room.Items) {
		index = len(room.Items)
	}
	room.Items = append(room.Items[:index], append([]models.LineItem{item}, room.Items[index:]...)...)

	_, err = p.roomRepository.SaveRoom(ctx, room)
	return err
}

func projectProducts(rooms []models.Room) []models.Product {
	products := make([]models.Product, 0)
	for _, room := range rooms {
		for i, item := range room.Items {
			if item.Category != models.CategoryProducts {
				continue
			}
			products = append(products, models.Product{
				LineItem:        item,
				Room:            room.Slug,
				RoomDisplayName: room.Name,
				OriginalIndex:   i,
				UniqueID:        models.ProductID(room.Slug, i),
			})
		}
	}
	return products
}
