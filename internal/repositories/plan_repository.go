package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"aitravel/internal/models/db_models"
)

type TravelPlanRepository interface {
	Create(ctx context.Context, plan *db_models.TravelPlan) error
	FindLatestByUserAndRequest(ctx context.Context, userID uint, travelRequest string) (*db_models.TravelPlan, error)
	FindLatestByUser(ctx context.Context, userID uint) (*db_models.TravelPlan, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*db_models.TravelPlan, error)
	ListByUser(ctx context.Context, userID uint, destination string) ([]db_models.TravelPlan, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ExistsRequestContaining(ctx context.Context, userID uint, keyword string) (bool, error)
	DeleteWithExpenses(ctx context.Context, id, userID uint) (bool, error)
}

type travelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) TravelPlanRepository {
	return &travelPlanRepository{db: db}
}

const newestFirst = "created_at DESC, id DESC"

func (r *travelPlanRepository) Create(ctx context.Context, plan *db_models.TravelPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// FindLatestByUserAndRequest compares travel_request byte for byte.
func (r *travelPlanRepository) FindLatestByUserAndRequest(ctx context.Context, userID uint, travelRequest string) (*db_models.TravelPlan, error) {
	return r.first(r.db.WithContext(ctx).
		Where("user_id = ? AND travel_request = ?", userID, travelRequest).
		Order(newestFirst))
}

func (r *travelPlanRepository) FindLatestByUser(ctx context.Context, userID uint) (*db_models.TravelPlan, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ?", userID).Order(newestFirst))
}

func (r *travelPlanRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*db_models.TravelPlan, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
}

// ListByUser returns plans newest first. A non-empty destination narrows the
// result to destinations containing it, ignoring case.
func (r *travelPlanRepository) ListByUser(ctx context.Context, userID uint, destination string) ([]db_models.TravelPlan, error) {
	var plans []db_models.TravelPlan
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if destination = strings.TrimSpace(destination); destination != "" {
		query = query.Where(`LOWER(destination) LIKE ? ESCAPE '\'`, containsPattern(destination))
	}
	err := query.Order(newestFirst).Find(&plans).Error
	return plans, err
}

func (r *travelPlanRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.TravelPlan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *travelPlanRepository) ExistsRequestContaining(ctx context.Context, userID uint, keyword string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where(`user_id = ? AND LOWER(travel_request) LIKE ? ESCAPE '\'`, userID, containsPattern(keyword)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// DeleteWithExpenses removes the plan and its expenses atomically. It reports
// false when no plan with that id belongs to the user.
func (r *travelPlanRepository) DeleteWithExpenses(ctx context.Context, id, userID uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan db_models.TravelPlan
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("travel_plan_id = ?", plan.ID).Delete(&db_models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&plan).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *travelPlanRepository) first(query *gorm.DB) (*db_models.TravelPlan, error) {
	var plan db_models.TravelPlan
	err := query.First(&plan).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
