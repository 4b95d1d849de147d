package store

import (
	"context"
	"time"

	"remodel-portal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// RoomRepository persists rooms and their embedded inventories.
type RoomRepository interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, slug string) (models.Room, error)

	// SaveRoom upserts the whole room document: the supplied items list
	// replaces the stored one in its entirety.
	SaveRoom(ctx context.Context, room models.Room) (models.Room, error)

	CreateRoom(ctx context.Context, room models.Room) (models.Room, error)
	RenameRoom(ctx context.Context, slug, name string) (models.Room, error)
	DeleteRoom(ctx context.Context, slug string) error
}

// ExpenseRepository persists general project expenses.
type ExpenseRepository interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	GetExpense(ctx context.Context, id string) (models.Expense, error)
	SaveExpense(ctx context.Context, expense models.Expense) (models.Expense, error)

	// ReplaceExpenses upserts every expense in the list and deletes stored
	// expenses absent from it, atomically.
	ReplaceExpenses(ctx context.Context, expenses []models.Expense) ([]models.Expense, error)

	DeleteExpense(ctx context.Context, id string) error
}

// TimelineRepository persists the singleton timeline document.
type TimelineRepository interface {
	// GetTimeline reads the singleton, initializing an empty document on
	// first access.
	GetTimeline(ctx context.Context) (models.Timeline, error)

	// SaveTimeline replaces the stored phase list.
	SaveTimeline(ctx context.Context, timeline models.Timeline) (models.Timeline, error)
}
