package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// generalRoomKey is the room bucket general (room-less) expenses fall into in
// the per-room summary.
const generalRoomKey = "general"

// amountToleranceCents is the allowed drift between the sum of explicit
// allocation amounts and the expense amount: one minor currency unit total,
// enough to absorb the unassignable cent of an uneven split.
const amountToleranceCents = 1

// percentageTolerance is how far allocation percentages may drift from 100.
const percentageTolerance = 0.5

// expenseService is the concrete implementation of ExpenseService. Expenses
// live in a flat list; shared ones carry room lists and optional explicit
// allocations that must stay consistent with the amount.
type expenseService struct {
	expenseRepository store.ExpenseRepository
	ids               *utils.UUIDGenerator
	logger            *logger.Logger
}

func NewExpenseService(expenseRepository store.ExpenseRepository, ids *utils.UUIDGenerator, logger *logger.Logger) ExpenseService {
	return &expenseService{
		expenseRepository: expenseRepository,
		ids:               ids,
		logger:            logger,
	}
}

func (e *expenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses, err := e.expenseRepository.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses failed: %w", err)
	}

	return expenses, nil
}

// ReplaceExpenses validates the submitted list as a whole and persists it,
// deleting stored expenses that are absent from it. An empty list clears the
// expense store.
func (e *expenseService) ReplaceExpenses(ctx context.Context, expenses []models.Expense) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	for i := range expenses {
		e.applyDefaults(&expenses[i])
		if err := validateExpense(fmt.Sprintf("expenses[%d]", i), expenses[i]); err != nil {
			log.Err(err).Msg("expense list failed validation")
			return nil, err
		}
	}

	saved, err := e.expenseRepository.ReplaceExpenses(ctx, expenses)
	if err != nil {
		log.Err(err).Int("count", len(expenses)).Msg("expense replacement ended with error")
		return nil, fmt.Errorf("expense replacement ended with error: %w", err)
	}

	return saved, nil
}

// SaveExpense validates and upserts a single expense.
func (e *expenseService) SaveExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	log := logger.FromContext(ctx)

	e.applyDefaults(&expense)
	if err := validateExpense("expense", expense); err != nil {
		log.Err(err).Str("id", expense.ID).Msg("expense failed validation")
		return models.Expense{}, err
	}

	saved, err := e.expenseRepository.SaveExpense(ctx, expense)
	if err != nil {
		log.Err(err).Str("id", expense.ID).Msg("expense save ended with error")
		return models.Expense{}, fmt.Errorf("expense save ended with error: %w", err)
	}

	return saved, nil
}

func (e *expenseService) DeleteExpense(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	if err := e.expenseRepository.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("expense deletion ended with error: %w", err)
	}

	return nil
}

// SummarizeExpenses rolls the expense list up by category and by room. Room
// figures follow the effective allocation: explicit allocations when present,
// an equal split otherwise, and the "general" bucket for room-less expenses.
func (e *expenseService) SummarizeExpenses(ctx context.Context) (models.ExpensesSummary, error) {
	expenses, err := e.expenseRepository.ListExpenses(ctx)
	if err != nil {
		return models.ExpensesSummary{}, fmt.Errorf("listing expenses failed: %w", err)
	}

	byCategory := make(map[string]*models.CategorySummary)
	byRoom := make(map[string]*models.RoomSpendSummary)

	for _, expense := range expenses {
		cat := byCategory[expense.Category]
		if cat == nil {
			cat = &models.CategorySummary{Category: expense.Category}
			byCategory[expense.Category] = cat
		}
		cat.Count++
		cat.TotalAmount += expense.Amount

		shares := expense.AllocatedAmounts()
		if expense.IsGeneral() {
			shares = map[string]float64{generalRoomKey: expense.Amount}
		}
		for room, amount := range shares {
			row := byRoom[room]
			if row == nil {
				row = &models.RoomSpendSummary{Room: room}
				byRoom[room] = row
			}
			row.Count++
			row.TotalAmount += amount
		}
	}

	summary := models.ExpensesSummary{
		ByCategory: make([]models.CategorySummary, 0, len(byCategory)),
		ByRoom:     make([]models.RoomSpendSummary, 0, len(byRoom)),
	}
	for _, cat := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *cat)
	}
	for _, row := range byRoom {
		summary.ByRoom = append(summary.ByRoom, *row)
	}

	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})
	sort.Slice(summary.ByRoom, func(i, j int) bool {
		return summary.ByRoom[i].Room < summary.ByRoom[j].Room
	})

	return summary, nil
}

// applyDefaults fills the server-owned fields of a submitted expense: id,
// creation instant, initial status, and the shared flag for multi-room
// expenses.
func (e *expenseService) applyDefaults(expense *models.Expense) {
	if expense.ID == "" {
		expense.ID = e.ids.Generate()
	}
	if expense.CreatedDate.IsZero() {
		expense.CreatedDate = time.Now().UTC()
	}
	if expense.Status == "" {
		expense.Status = models.StatusPending
	}
	if len(expense.Rooms) > 1 {
		expense.IsSharedExpense = true
	}
}

// validateExpense checks one expense, prefixing validation errors with the
// caller-supplied field path.
func validateExpense(field string, expense models.Expense) error {
	if expense.Description == "" {
		return newValidationError(field+".description", "must not be empty")
	}
	if expense.Amount < 0 {
		return newValidationError(field+".amount", "must not be negative")
	}

	switch expense.Status {
	case models.StatusPlanning, models.StatusPending, models.StatusOrdered, models.StatusCompleted:
	default:
		return newValidationError(field+".status", "unknown status %q", expense.Status)
	}

	if len(expense.RoomAllocations) == 0 {
		return nil
	}

	rooms := make(map[string]bool, len(expense.Rooms))
	for _, room := range expense.Rooms {
		rooms[room] = true
	}

	var amountSum, percentageSum float64
	for i, alloc := range expense.RoomAllocations {
		if !rooms[alloc.Room] {
			return newValidationError(
				fmt.Sprintf("%s.roomAllocations[%d].room", field, i),
				"room %q is not among the expense rooms", alloc.Room,
			)
		}
		if alloc.Amount < 0 {
			return newValidationError(
				fmt.Sprintf("%s.roomAllocations[%d].amount", field, i),
				"must not be negative",
			)
		}
		amountSum += alloc.Amount
		percentageSum += alloc.Percentage
	}

	// compared in whole cents so binary float noise cannot tip the verdict
	if math.Round(math.Abs(amountSum-expense.Amount)*100) > amountToleranceCents {
		return newValidationError(
			field+".roomAllocations",
			"allocated amounts sum to %.2f, expense amount is %.2f", amountSum, expense.Amount,
		)
	}
	if math.Abs(percentageSum-100) > percentageTolerance {
		return newValidationError(
			field+".roomAllocations",
			"allocation percentages sum to %.2f, expected 100", percentageSum,
		)
	}

	return nil
}
