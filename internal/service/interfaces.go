package service

import (
	"context"

	"remodel-portal/internal/config"
	"remodel-portal/models"
)

// AuthService manages user accounts and credential checks. Session issuance
// lives outside the core; callers get back plain user records and summaries.
type AuthService interface {
	// CreateUser validates, normalizes, and persists a new account.
	// The plaintext password is hashed and discarded before storage.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// LookupUser finds an account by username or e-mail, case-insensitively.
	LookupUser(ctx context.Context, identifier string) (models.User, error)

	// ResolveByID finds an account by its server-assigned id.
	ResolveByID(ctx context.Context, id string) (models.User, error)

	// VerifyCredentials checks an identifier/password pair against the store.
	// Lookup misses and hash mismatches are indistinguishable to the caller.
	VerifyCredentials(ctx context.Context, identifier string, password string) (models.User, error)

	// RecordLogin stamps the account's last-login instant.
	RecordLogin(ctx context.Context, userID string) error

	// EnsureBootstrapAdmin creates the configured administrator account if no
	// account with its e-mail exists yet. A blank configuration is a no-op.
	EnsureBootstrapAdmin(ctx context.Context, cfg config.Bootstrap) error
}

// RoomService owns the room inventory: listing, document saves with derived
// fields recomputed, and room lifecycle operations.
type RoomService interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, slug string) (models.Room, error)

	// SaveRoom replaces the room's item list wholesale. Subtotals are
	// recomputed, embedded ids assigned, and option references validated.
	SaveRoom(ctx context.Context, slug string, room models.Room) (models.Room, error)

	CreateRoom(ctx context.Context, room models.Room) (models.Room, error)
	RenameRoom(ctx context.Context, slug string, name string) (models.Room, error)
	DeleteRoom(ctx context.Context, slug string) error
}

// ProductService exposes the cross-room projection of line items carrying the
// Products category. Mutations address items positionally and write through
// to the owning room.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)

	// SaveProduct creates, updates, or moves a product and returns the
	// refreshed projection (positions shift on every mutation).
	SaveProduct(ctx context.Context, save models.ProductSave) ([]models.Product, error)

	DeleteProduct(ctx context.Context, room string, index int) error
}

// ExpenseService owns general project expenses and their room allocations.
type ExpenseService interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ReplaceExpenses validates and persists the full expense list, removing
	// stored expenses absent from it.
	ReplaceExpenses(ctx context.Context, expenses []models.Expense) ([]models.Expense, error)

	SaveExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// SummarizeExpenses rolls expenses up by category and by room, spreading
	// shared expenses over their allocations.
	SummarizeExpenses(ctx context.Context) (models.ExpensesSummary, error)
}

// AggregatorService derives read-only figures spanning rooms and expenses.
type AggregatorService interface {
	// ProjectTotals compares the total planned budget against effective spend.
	ProjectTotals(ctx context.Context) (models.Totals, error)

	// AllCategories lists every distinct category across room items and
	// expenses with occurrence counts and monetary totals.
	AllCategories(ctx context.Context) ([]models.CategoryEntry, error)
}

// TimelineService owns the singleton phase timeline.
type TimelineService interface {
	GetTimeline(ctx context.Context) (models.TimelineView, error)

	// SaveTimeline validates and persists the full phase list, assigning ids
	// to new embedded entities and auto-completing phases whose subtasks are
	// all done.
	SaveTimeline(ctx context.Context, timeline models.Timeline) (models.TimelineView, error)

	// DeletePhase removes one phase by id. Remaining order values keep their
	// gaps.
	DeletePhase(ctx context.Context, phaseID string) (models.TimelineView, error)
}
