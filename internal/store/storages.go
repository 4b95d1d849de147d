package store

import (
	"context"
	"fmt"

	"remodel-portal/internal/config"
	"remodel-portal/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	RoomRepository     RoomRepository
	ExpenseRepository  ExpenseRepository
	TimelineRepository TimelineRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories over the shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to storage: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating storage: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		RoomRepository:     NewRoomRepository(db, log),
		ExpenseRepository:  NewExpenseRepository(db, log),
		TimelineRepository: NewTimelineRepository(db, log),
	}, nil
}
