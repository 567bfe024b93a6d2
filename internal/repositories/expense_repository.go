package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"aitravel/internal/models/db_models"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *db_models.Expense) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*db_models.Expense, error)
	Delete(ctx context.Context, id uint) error
	ListByPlanAndDay(ctx context.Context, planID uint, day int) ([]db_models.Expense, error)
	ListByPlan(ctx context.Context, planID uint) ([]db_models.Expense, error)
	SumByPlanAndDay(ctx context.Context, planID uint, day int) (decimal.Decimal, error)
	SumByPlan(ctx context.Context, planID uint) (decimal.Decimal, error)
	DeleteByPlanAndDay(ctx context.Context, planID uint, day int) error
	DeleteByPlan(ctx context.Context, planID uint) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *db_models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// FindByIDAndUser only returns the expense when its plan belongs to userID.
func (r *expenseRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*db_models.Expense, error) {
	var expense db_models.Expense
	err := r.db.WithContext(ctx).
		Joins("JOIN travel_plans ON travel_plans.id = expenses.travel_plan_id").
		Where("expenses.id = ? AND travel_plans.user_id = ?", id, userID).
		First(&expense).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &expense, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&db_models.Expense{}, id).Error
}

func (r *expenseRepository) ListByPlanAndDay(ctx context.Context, planID uint, day int) ([]db_models.Expense, error) {
	var expenses []db_models.Expense
	err := r.db.WithContext(ctx).
		Where("travel_plan_id = ? AND day_number = ?", planID, day).
		Order(newestFirst).
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) ListByPlan(ctx context.Context, planID uint) ([]db_models.Expense, error) {
	var expenses []db_models.Expense
	err := r.db.WithContext(ctx).
		Where("travel_plan_id = ?", planID).
		Order(newestFirst).
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) SumByPlanAndDay(ctx context.Context, planID uint, day int) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Where("travel_plan_id = ? AND day_number = ?", planID, day))
}

func (r *expenseRepository) SumByPlan(ctx context.Context, planID uint) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Where("travel_plan_id = ?", planID))
}

func (r *expenseRepository) DeleteByPlanAndDay(ctx context.Context, planID uint, day int) error {
	return r.db.WithContext(ctx).
		Where("travel_plan_id = ? AND day_number = ?", planID, day).
		Delete(&db_models.Expense{}).Error
}

func (r *expenseRepository) DeleteByPlan(ctx context.Context, planID uint) error {
	return r.db.WithContext(ctx).Where("travel_plan_id = ?", planID).Delete(&db_models.Expense{}).Error
}

// sum never returns NULL: an empty set totals zero.
func (r *expenseRepository) sum(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := query.Model(&db_models.Expense{}).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
