package db_models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultExpenseCategory = "其他"

type Expense struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TravelPlanID uint            `gorm:"not null;index:idx_expense_plan_day" json:"travelPlanId"`
	TravelPlan   TravelPlan      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DayNumber    int             `gorm:"not null;index:idx_expense_plan_day" json:"dayNumber"`
	Item         string          `gorm:"size:200;not null" json:"item"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category     string          `gorm:"size:50" json:"category"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}
