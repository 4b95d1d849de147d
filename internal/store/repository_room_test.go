package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

func newTestRoomRepo(t *testing.T) (*roomRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &roomRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

var roomColumns = []string{"slug", "name", "items", "metadata", "created_at", "updated_at"}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return b
}

func TestListRooms_DecodesItems(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	items := []models.LineItem{
		{Description: "Sink", Category: "Products", Quantity: 1, BudgetRate: 200},
	}

	rows := sqlmock.NewRows(roomColumns).
		AddRow("kitchen", "Kitchen", mustJSON(t, items), []byte(`{}`), now, now).
		AddRow("bath", "Bathroom", []byte(`[]`), []byte(`{}`), now, now)

	mock.ExpectQuery("SELECT (.+) FROM rooms").WillReturnRows(rows)

	rooms, err := repo.ListRooms(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Slug != "kitchen" || len(rooms[0].Items) != 1 {
		t.Errorf("unexpected first room: %+v", rooms[0])
	}
	if rooms[0].Items[0].Description != "Sink" {
		t.Errorf("expected item Sink, got %s", rooms[0].Items[0].Description)
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM rooms").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err := repo.GetRoom(ctx, "ghost")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestSaveRoom_UpsertsDocument(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	room := models.Room{
		Slug: "kitchen",
		Name: "Kitchen",
		Items: []models.LineItem{
			{Description: "Tiles", Category: "Materials", Quantity: 12, BudgetRate: 4.5},
		},
	}

	itemsJSON := mustJSON(t, room.Items)
	rows := sqlmock.NewRows(roomColumns).
		AddRow(room.Slug, room.Name, itemsJSON, []byte(`{}`), now, now)

	mock.ExpectQuery("INSERT INTO rooms").
		WithArgs(room.Slug, room.Name, itemsJSON, []byte(`{}`)).
		WillReturnRows(rows)

	saved, err := repo.SaveRoom(ctx, room)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Items) != 1 || saved.Items[0].Description != "Tiles" {
		t.Errorf("unexpected saved items: %+v", saved.Items)
	}
}

func TestCreateRoom_AlreadyExists(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO rooms").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateRoom(ctx, models.Room{Slug: "kitchen", Name: "Kitchen"})
	if !errors.Is(err, ErrRoomAlreadyExists) {
		t.Fatalf("expected ErrRoomAlreadyExists, got %v", err)
	}
}

func TestRenameRoom_NotFound(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE rooms").
		WithArgs("ghost", "Ghost Room").
		WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err := repo.RenameRoom(ctx, "ghost", "Ghost Room")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestDeleteRoom_NotFound(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteRoom(ctx, "ghost")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestDeleteRoom_Success(t *testing.T) {
	repo, mock, db := newTestRoomRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("kitchen").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteRoom(ctx, "kitchen"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
