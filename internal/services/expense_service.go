package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"aitravel/internal/models/db_models"
	"aitravel/internal/models/request_models"
	"aitravel/internal/repositories"
	"aitravel/pkg/utils"
)

type ExpenseServiceInterface interface {
	AddExpense(ctx context.Context, user *db_models.User, request request_models.AddExpenseRequest) (*db_models.Expense, error)
	DeleteExpense(ctx context.Context, user *db_models.User, expenseID uint) error
	ListExpensesByDay(ctx context.Context, user *db_models.User, planID uint, day int) ([]db_models.Expense, error)
	ListExpensesByPlan(ctx context.Context, user *db_models.User, planID uint) ([]db_models.Expense, error)
	SumByDay(ctx context.Context, user *db_models.User, planID uint, day int) (decimal.Decimal, error)
	SumByPlan(ctx context.Context, user *db_models.User, planID uint) (decimal.Decimal, error)
}

type ExpenseService struct {
	planRepo    repositories.TravelPlanRepository
	expenseRepo repositories.ExpenseRepository
}

func NewExpenseService(planRepo repositories.TravelPlanRepository, expenseRepo repositories.ExpenseRepository) ExpenseServiceInterface {
	return &ExpenseService{
		planRepo:    planRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *ExpenseService) AddExpense(ctx context.Context, user *db_models.User, request request_models.AddExpenseRequest) (*db_models.Expense, error) {
	item := strings.TrimSpace(request.Item)
	switch {
	case item == "":
		return nil, fmt.Errorf("%w: item is required", utils.ErrInvalidInput)
	case request.Amount == nil:
		return nil, fmt.Errorf("%w: amount is required", utils.ErrInvalidInput)
	case request.DayNumber < 1:
		return nil, fmt.Errorf("%w: dayNumber must be at least 1", utils.ErrInvalidInput)
	}

	plan, err := s.ownedPlan(ctx, user, request.TravelPlanID)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(request.Category)
	if category == "" {
		category = db_models.DefaultExpenseCategory
	}

	expense := &db_models.Expense{
		TravelPlanID: plan.ID,
		DayNumber:    request.DayNumber,
		Item:         item,
		Amount:       *request.Amount,
		Category:     category,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return expense, nil
}

// DeleteExpense reports ErrExpenseNotFound both for missing expenses and for
// expenses under another user's plan.
func (s *ExpenseService) DeleteExpense(ctx context.Context, user *db_models.User, expenseID uint) error {
	if user == nil {
		return utils.ErrUnauthenticated
	}
	expense, err := s.expenseRepo.FindByIDAndUser(ctx, expenseID, user.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if expense == nil {
		return utils.ErrExpenseNotFound
	}
	if err := s.expenseRepo.Delete(ctx, expense.ID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *ExpenseService) ListExpensesByDay(ctx context.Context, user *db_models.User, planID uint, day int) ([]db_models.Expense, error) {
	if _, err := s.ownedPlan(ctx, user, planID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByPlanAndDay(ctx, planID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return expenses, nil
}

func (s *ExpenseService) ListExpensesByPlan(ctx context.Context, user *db_models.User, planID uint) ([]db_models.Expense, error) {
	if _, err := s.ownedPlan(ctx, user, planID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return expenses, nil
}

func (s *ExpenseService) SumByDay(ctx context.Context, user *db_models.User, planID uint, day int) (decimal.Decimal, error) {
	if _, err := s.ownedPlan(ctx, user, planID); err != nil {
		return decimal.Zero, err
	}
	total, err := s.expenseRepo.SumByPlanAndDay(ctx, planID, day)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return total, nil
}

func (s *ExpenseService) SumByPlan(ctx context.Context, user *db_models.User, planID uint) (decimal.Decimal, error) {
	if _, err := s.ownedPlan(ctx, user, planID); err != nil {
		return decimal.Zero, err
	}
	total, err := s.expenseRepo.SumByPlan(ctx, planID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return total, nil
}

func (s *ExpenseService) ownedPlan(ctx context.Context, user *db_models.User, planID uint) (*db_models.TravelPlan, error) {
	if user == nil {
		return nil, utils.ErrUnauthenticated
	}
	plan, err := s.planRepo.FindByIDAndUser(ctx, planID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return plan, nil
}
