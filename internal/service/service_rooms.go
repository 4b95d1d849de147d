package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// slugRe bounds room slugs to URL-safe lowercase segments.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// roomService is the concrete implementation of RoomService. Rooms are stored
// as whole documents; every save replaces the item list and recomputes the
// derived fields clients are not trusted with.
type roomService struct {
	roomRepository store.RoomRepository
	ids            *utils.UUIDGenerator
	logger         *logger.Logger
}

func NewRoomService(roomRepository store.RoomRepository, ids *utils.UUIDGenerator, logger *logger.Logger) RoomService {
	return &roomService{
		roomRepository: roomRepository,
		ids:            ids,
		logger:         logger,
	}
}

func (r *roomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := r.roomRepository.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms failed: %w", err)
	}

	return rooms, nil
}

func (r *roomService) GetRoom(ctx context.Context, slug string) (models.Room, error) {
	if slug == "" {
		return models.Room{}, ErrInvalidDataProvided
	}

	room, err := r.roomRepository.GetRoom(ctx, slug)
	if err != nil {
		return models.Room{}, fmt.Errorf("room lookup failed: %w", err)
	}

	return room, nil
}

// SaveRoom replaces the room's inventory with the submitted one. Subtotals
// are recomputed from quantity and rates, embedded entities without an id get
// one assigned, and selected-option references are checked against the item
// they live in.
//
// Returns the stored room or:
//   - a *ValidationError naming the offending item position.
//   - a wrapped storage error (store.ErrRoomNotFound for an unknown slug).
func (r *roomService) SaveRoom(ctx context.Context, slug string, room models.Room) (models.Room, error) {
	log := logger.FromContext(ctx)

	if slug == "" {
		return models.Room{}, ErrInvalidDataProvided
	}
	room.Slug = slug

	if err := r.prepareLineItems(room.Items); err != nil {
		log.Err(err).Str("room", slug).Msg("room items failed validation")
		return models.Room{}, err
	}

	saved, err := r.roomRepository.SaveRoom(ctx, room)
	if err != nil {
		log.Err(err).Str("room", slug).Msg("room save ended with error")
		return models.Room{}, fmt.Errorf("room save ended with error: %w", err)
	}

	return saved, nil
}

// CreateRoom registers a new empty room. A blank slug is derived from the
// display name.
func (r *roomService) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	log := logger.FromContext(ctx)

	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return models.Room{}, newValidationError("name", "must not be empty")
	}

	if room.Slug == "" {
		room.Slug = slugify(room.Name)
	}
	if !slugRe.MatchString(room.Slug) {
		return models.Room{}, newValidationError("slug", "must be a lowercase URL-safe identifier")
	}

	if err := r.prepareLineItems(room.Items); err != nil {
		log.Err(err).Str("room", room.Slug).Msg("room items failed validation")
		return models.Room{}, err
	}

	created, err := r.roomRepository.CreateRoom(ctx, room)
	if err != nil {
		log.Err(err).Str("room", room.Slug).Msg("room creation ended with error")
		return models.Room{}, fmt.Errorf("room creation ended with error: %w", err)
	}

	return created, nil
}

func (r *roomService) RenameRoom(ctx context.Context, slug string, name string) (models.Room, error) {
	if slug == "" {
		return models.Room{}, ErrInvalidDataProvided
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, newValidationError("name", "must not be empty")
	}

	renamed, err := r.roomRepository.RenameRoom(ctx, slug, name)
	if err != nil {
		return models.Room{}, fmt.Errorf("room rename ended with error: %w", err)
	}

	return renamed, nil
}

func (r *roomService) DeleteRoom(ctx context.Context, slug string) error {
	if slug == "" {
		return ErrInvalidDataProvided
	}

	if err := r.roomRepository.DeleteRoom(ctx, slug); err != nil {
		return fmt.Errorf("room deletion ended with error: %w", err)
	}

	return nil
}

// prepareLineItems normalizes a room's items in place: subtotals are derived
// from the rates, embedded images and options receive ids, and a non-empty
// selectedOptionId must reference an option of the same item. The selected
// product name cache follows the referenced option.
func (r *roomService) prepareLineItems(items []models.LineItem) error {
	for i := range items {
		item := &items[i]

		if item.Quantity < 0 {
			return newValidationError(fmt.Sprintf("items[%d].quantity", i), "must not be negative")
		}

		item.Subtotal = item.ComputeSubtotal()
		assignEmbeddedIDs(r.ids, item)

		if item.SelectedOptionID == "" {
			continue
		}

		selected := findOption(item.ProductOptions, item.SelectedOptionID)
		if selected == nil {
			return newValidationError(
				fmt.Sprintf("items[%d].selectedOptionId", i),
				"option %q is not among the item's product options", item.SelectedOptionID,
			)
		}
		item.SelectedProductName = selected.Name
	}

	return nil
}

// assignEmbeddedIDs gives ids to embedded images and product options
// submitted without one.
func assignEmbeddedIDs(ids *utils.UUIDGenerator, item *models.LineItem) {
	for i := range item.Images {
		if item.Images[i].ID == "" {
			item.Images[i].ID = ids.Generate()
		}
	}
	for i := range item.ProductOptions {
		opt := &item.ProductOptions[i]
		if opt.ID == "" {
			opt.ID = ids.Generate()
		}
		for j := range opt.Images {
			if opt.Images[j].ID == "" {
				opt.Images[j].ID = ids.Generate()
			}
		}
	}
}

func findOption(options []models.Option, id string) *models.Option {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

// slugify lowercases a display name and collapses everything outside [a-z0-9]
// into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
