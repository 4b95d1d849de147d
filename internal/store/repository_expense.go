package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

// expenseColumns is the canonical column order shared by every expense query.
var expenseColumns = []string{
	"id", "description", "category", "amount", "status",
	"date", "created_date", "completed_date",
	"rooms", "room_allocations", "is_shared_expense", "notes",
}

// expenseRepository is the PostgreSQL-backed implementation of
// [ExpenseRepository]. Unlike the user and room repositories, its statements
// are built with squirrel: the whole-list replace needs a dynamic NOT-IN
// delete and the upsert carries too many columns to maintain by hand.
type expenseRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewExpenseRepository constructs an [ExpenseRepository] backed by the
// provided database connection and logger.
func NewExpenseRepository(db *DB, logger *logger.Logger) ExpenseRepository {
	logger.Debug().Msg("creating expense repository")
	return &expenseRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListExpenses returns every expense ordered by created_date descending.
func (r *expenseRepository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(expenseColumns...).
		From("expenses").
		OrderBy("created_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ListExpenses").Msg("failed to execute query for listing expenses")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0, 32)

	for rows.Next() {
		expense, scanErr := scanExpense(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*expenseRepository.ListExpenses").Msg("failed to scan expense row")
			return nil, scanErr
		}
		expenses = append(expenses, expense)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*expenseRepository.ListExpenses").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return expenses, nil
}

// GetExpense retrieves one expense by id.
//
// Error handling:
//   - No matching row → [ErrExpenseNotFound].
func (r *expenseRepository) GetExpense(ctx context.Context, id string) (models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(expenseColumns...).
		From("expenses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	expense, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, ErrExpenseNotFound
		}
		log.Err(err).Str("func", "*expenseRepository.GetExpense").Str("expense_id", id).Msg("error: scanning error")
		return models.Expense{}, err
	}

	return expense, nil
}

// SaveExpense upserts a single expense by id.
func (r *expenseRepository) SaveExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	log := logger.FromContext(ctx)

	saved, err := r.upsertExpense(ctx, r.db.DB, expense)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.SaveExpense").Str("expense_id", expense.ID).Msg("failed to upsert expense")
		return models.Expense{}, err
	}

	return saved, nil
}

// ReplaceExpenses upserts every expense in the list and deletes stored
// expenses absent from it, inside one transaction. An empty list clears the
// table.
func (r *expenseRepository) ReplaceExpenses(ctx context.Context, expenses []models.Expense) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ReplaceExpenses").Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	saved := make([]models.Expense, 0, len(expenses))
	keepIDs := make([]string, 0, len(expenses))

	for i, expense := range expenses {
		savedExpense, upsertErr := r.upsertExpense(ctx, tx, expense)
		if upsertErr != nil {
			log.Err(upsertErr).
				Str("func", "*expenseRepository.ReplaceExpenses").
				Int("position", i).
				Str("expense_id", expense.ID).
				Msg("failed to upsert expense")
			return nil, upsertErr
		}
		saved = append(saved, savedExpense)
		keepIDs = append(keepIDs, savedExpense.ID)
	}

	// NotEq with an empty slice degenerates to TRUE, clearing the table
	// when the submitted list is empty.
	query, args, err := r.builder.
		Delete("expenses").
		Where(sq.NotEq{"id": keepIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*expenseRepository.ReplaceExpenses").Msg("failed to delete absent expenses")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*expenseRepository.ReplaceExpenses").Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, nil
}

// DeleteExpense removes one expense by id.
//
// Error handling:
//   - Zero affected rows → [ErrExpenseNotFound].
func (r *expenseRepository) DeleteExpense(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete("expenses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.DeleteExpense").Str("expense_id", id).Msg("failed to delete expense")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// execer abstracts over *sql.DB and *sql.Tx so upserts run both standalone
// and inside the replace transaction.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// upsertExpense builds and runs the insert-or-update statement for one
// expense and returns the stored row.
func (r *expenseRepository) upsertExpense(ctx context.Context, db execer, expense models.Expense) (models.Expense, error) {
	roomsJSON, allocationsJSON, err := encodeExpenseDocuments(expense)
	if err != nil {
		return models.Expense{}, err
	}

	var date, completedDate sql.NullTime
	if expense.Date != nil {
		date = sql.NullTime{Time: *expense.Date, Valid: true}
	}
	if expense.CompletedDate != nil {
		completedDate = sql.NullTime{Time: *expense.CompletedDate, Valid: true}
	}

	query, args, err := r.builder.
		Insert("expenses").
		Columns(expenseColumns...).
		Values(
			expense.ID, expense.Description, expense.Category, expense.Amount, expense.Status,
			date, expense.CreatedDate, completedDate,
			roomsJSON, allocationsJSON, expense.IsSharedExpense, expense.Notes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			amount = EXCLUDED.amount,
			status = EXCLUDED.status,
			date = EXCLUDED.date,
			completed_date = EXCLUDED.completed_date,
			rooms = EXCLUDED.rooms,
			room_allocations = EXCLUDED.room_allocations,
			is_shared_expense = EXCLUDED.is_shared_expense,
			notes = EXCLUDED.notes
			RETURNING ` + joinColumns(expenseColumns)).
		ToSql()
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := db.QueryRowContext(ctx, query, args...)
	saved, err := scanExpense(row.Scan)
	if err != nil {
		return models.Expense{}, err
	}

	return saved, nil
}

// joinColumns renders a column list for a RETURNING clause.
func joinColumns(columns []string) string {
	out := ""
	for i, col := range columns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}

// encodeExpenseDocuments marshals the JSONB document columns of an expense.
func encodeExpenseDocuments(expense models.Expense) (rooms, allocations []byte, err error) {
	if expense.Rooms == nil {
		expense.Rooms = []string{}
	}
	if expense.RoomAllocations == nil {
		expense.RoomAllocations = []models.RoomAllocation{}
	}

	rooms, err = json.Marshal(expense.Rooms)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: rooms: %w", ErrEncodingDocument, err)
	}

	allocations, err = json.Marshal(expense.RoomAllocations)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: room allocations: %w", ErrEncodingDocument, err)
	}

	return rooms, allocations, nil
}

// scanExpense reads one expense row, decoding the JSONB document columns and
// the nullable date columns.
func scanExpense(scan func(dest ...any) error) (models.Expense, error) {
	var expense models.Expense
	var roomsJSON, allocationsJSON []byte
	var date, completedDate sql.NullTime

	err := scan(
		&expense.ID,
		&expense.Description,
		&expense.Category,
		&expense.Amount,
		&expense.Status,
		&date,
		&expense.CreatedDate,
		&completedDate,
		&roomsJSON,
		&allocationsJSON,
		&expense.IsSharedExpense,
		&expense.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, err
		}
		return models.Expense{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if date.Valid {
		expense.Date = &date.Time
	}
	if completedDate.Valid {
		expense.CompletedDate = &completedDate.Time
	}

	if err := json.Unmarshal(roomsJSON, &expense.Rooms); err != nil {
		return models.Expense{}, fmt.Errorf("%w: rooms: %w", ErrDecodingDocument, err)
	}
	if err := json.Unmarshal(allocationsJSON, &expense.RoomAllocations); err != nil {
		return models.Expense{}, fmt.Errorf("%w: room allocations: %w", ErrDecodingDocument, err)
	}

	return expense, nil
}
