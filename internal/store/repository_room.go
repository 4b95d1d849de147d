package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

// roomRepository is the PostgreSQL-backed implementation of [RoomRepository].
// Room inventories are stored as whole JSONB documents in the "rooms" table:
// every save replaces the items list in its entirety, which keeps multi-field
// invariants trivially consistent under last-write-wins semantics.
type roomRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRoomRepository constructs a [RoomRepository] backed by the provided
// database connection and logger.
func NewRoomRepository(db *DB, logger *logger.Logger) RoomRepository {
	logger.Debug().Msg("creating room repository")
	return &roomRepository{
		db:     db,
		logger: logger,
	}
}

// ListRooms returns all rooms in insertion order, items included.
func (r *roomRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listRooms)
	if err != nil {
		log.Err(err).Str("func", "*roomRepository.ListRooms").Msg("failed to execute query for listing rooms")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	rooms := make([]models.Room, 0, 16)

	for rows.Next() {
		room, scanErr := scanRoom(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*roomRepository.ListRooms").Msg("failed to scan room row")
			return nil, scanErr
		}
		rooms = append(rooms, room)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*roomRepository.ListRooms").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return rooms, nil
}

// GetRoom retrieves one room by slug.
//
// Error handling:
//   - No matching row → [ErrRoomNotFound].
func (r *roomRepository) GetRoom(ctx context.Context, slug string) (models.Room, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getRoomBySlug, slug)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roomRepository.GetRoom").Str("slug", slug).Msg("error: row is nil")
		return models.Room{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	room, err := scanRoom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, ErrRoomNotFound
		}
		log.Err(err).Str("func", "*roomRepository.GetRoom").Str("slug", slug).Msg("error: scanning error")
		return models.Room{}, err
	}

	return room, nil
}

// SaveRoom upserts the room document keyed by slug. The stored items and
// metadata are replaced wholesale; the display name is only set on first
// insert (renames go through [RenameRoom]).
func (r *roomRepository) SaveRoom(ctx context.Context, room models.Room) (models.Room, error) {
	log := logger.FromContext(ctx)

	itemsJSON, metadataJSON, err := encodeRoomDocuments(room)
	if err != nil {
		log.Err(err).Str("func", "*roomRepository.SaveRoom").Str("slug", room.Slug).Msg("failed to encode room documents")
		return models.Room{}, err
	}

	row := r.db.QueryRowContext(ctx, upsertRoom, room.Slug, room.Name, itemsJSON, metadataJSON)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roomRepository.SaveRoom").Str("slug", room.Slug).Msg("failed to upsert room")
		return models.Room{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	saved, err := scanRoom(row.Scan)
	if err != nil {
		log.Err(err).Str("func", "*roomRepository.SaveRoom").Str("slug", room.Slug).Msg("error: scanning error")
		return models.Room{}, err
	}

	return saved, nil
}

// CreateRoom inserts a brand-new room.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrRoomAlreadyExists].
func (r *roomRepository) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	log := logger.FromContext(ctx)

	itemsJSON, metadataJSON, err := encodeRoomDocuments(room)
	if err != nil {
		log.Err(err).Str("func", "*roomRepository.CreateRoom").Str("slug", room.Slug).Msg("failed to encode room documents")
		return models.Room{}, err
	}

	row := r.db.QueryRowContext(ctx, insertRoom, room.Slug, room.Name, itemsJSON, metadataJSON)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roomRepository.CreateRoom").Str("slug", room.Slug).Msg("failed to insert room")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Room{}, ErrRoomAlreadyExists
		default:
			return models.Room{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	saved, err := scanRoom(row.Scan)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Room{}, ErrRoomAlreadyExists
		}
		log.Err(err).Str("func", "*roomRepository.CreateRoom").Str("slug", room.Slug).Msg("error: scanning error")
		return models.Room{}, err
	}

	return saved, nil
}

// RenameRoom updates the display name of an existing room.
//
// Error handling:
//   - No matching row → [ErrRoomNotFound].
func (r *roomRepository) RenameRoom(ctx context.Context, slug, name string) (models.Room, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, renameRoom, slug, name)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*roomRepository.RenameRoom").Str("slug", slug).Msg("failed to rename room")
		return models.Room{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	renamed, err := scanRoom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, ErrRoomNotFound
		}
		log.Err(err).Str("func", "*roomRepository.RenameRoom").Str("slug", slug).Msg("error: scanning error")
		return models.Room{}, err
	}

	return renamed, nil
}

// DeleteRoom hard-deletes a room and its embedded inventory.
//
// Error handling:
//   - Zero affected rows → [ErrRoomNotFound].
func (r *roomRepository) DeleteRoom(ctx context.Context, slug string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRoom, slug)
	if err != nil {
		log.Err(err).Str("func", "*roomRepository.DeleteRoom").Str("slug", slug).Msg("failed to delete room")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// encodeRoomDocuments marshals the JSONB document columns of a room.
func encodeRoomDocuments(room models.Room) (items, metadata []byte, err error) {
	if room.Items == nil {
		room.Items = []models.LineItem{}
	}
	if room.Metadata == nil {
		room.Metadata = map[string]any{}
	}

	items, err = json.Marshal(room.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: items: %w", ErrEncodingDocument, err)
	}

	metadata, err = json.Marshal(room.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: metadata: %w", ErrEncodingDocument, err)
	}

	return items, metadata, nil
}

// scanRoom reads one room row, decoding the JSONB document columns.
// The scan argument abstracts over *sql.Row and *sql.Rows.
func scanRoom(scan func(dest ...any) error) (models.Room, error) {
	var room models.Room
	var itemsJSON, metadataJSON []byte

	err := scan(&room.Slug, &room.Name, &itemsJSON, &metadataJSON, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, err
		}
		return models.Room{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal(itemsJSON, &room.Items); err != nil {
		return models.Room{}, fmt.Errorf("%w: items: %w", ErrDecodingDocument, err)
	}
	if err := json.Unmarshal(metadataJSON, &room.Metadata); err != nil {
		return models.Room{}, fmt.Errorf("%w: metadata: %w", ErrDecodingDocument, err)
	}

	return room, nil
}
