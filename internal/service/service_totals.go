package service

import (
	"context"
	"fmt"
	"sort"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/models"
)

// aggregatorService derives project-wide figures from the room inventories
// and the expense list. It holds no state of its own and recomputes on every
// read.
type aggregatorService struct {
	roomRepository    store.RoomRepository
	expenseRepository store.ExpenseRepository
	logger            *logger.Logger
}

func NewAggregatorService(roomRepository store.RoomRepository, expenseRepository store.ExpenseRepository, logger *logger.Logger) AggregatorService {
	return &aggregatorService{
		roomRepository:    roomRepository,
		expenseRepository: expenseRepository,
		logger:            logger,
	}
}

// ProjectTotals compares the planned budget (every item's quantity times its
// budget rate) against effective spend: completed items at their subtotal
// plus completed expenses at their amount. PercentageUsed stays zero when no
// budget is planned.
func (a *aggregatorService) ProjectTotals(ctx context.Context) (models.Totals, error) {
	rooms, expenses, err := a.load(ctx)
	if err != nil {
		return models.Totals{}, err
	}

	var totals models.Totals
	for _, room := range rooms {
		for _, item := range room.Items {
			totals.TotalBudget += item.Quantity * item.BudgetRate
			totals.TotalExpenses += item.EffectiveSpend()
		}
	}
	for _, expense := range expenses {
		totals.TotalExpenses += expense.EffectiveSpend()
	}

	if totals.TotalBudget > 0 {
		totals.PercentageUsed = totals.TotalExpenses / totals.TotalBudget * 100
	}

	return totals, nil
}

// AllCategories lists every distinct category seen across room items and
// expenses, alphabetically, with occurrence counts and monetary totals.
// Items count at their subtotal, expenses at their amount.
func (a *aggregatorService) AllCategories(ctx context.Context) ([]models.CategoryEntry, error) {
	rooms, expenses, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*models.CategoryEntry)
	record := func(category string, total float64) {
		entry := byName[category]
		if entry == nil {
			entry = &models.CategoryEntry{Category: category}
			byName[category] = entry
		}
		entry.Count++
		entry.Total += total
	}

	for _, room := range rooms {
		for _, item := range room.Items {
			record(item.Category, item.ComputeSubtotal())
		}
	}
	for _, expense := range expenses {
		record(expense.Category, expense.Amount)
	}

	categories := make([]models.CategoryEntry, 0, len(byName))
	for _, entry := range byName {
		categories = append(categories, *entry)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return categories, nil
}

func (a *aggregatorService) load(ctx context.Context) ([]models.Room, []models.Expense, error) {
	rooms, err := a.roomRepository.ListRooms(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing rooms failed: %w", err)
	}

	expenses, err := a.expenseRepository.ListExpenses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing expenses failed: %w", err)
	}

	return rooms, expenses, nil
}
