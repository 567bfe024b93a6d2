package request_models

import "github.com/shopspring/decimal"

// AddExpenseRequest accepts amount as a JSON number or numeric string.
type AddExpenseRequest struct {
	TravelPlanID uint             `json:"travelPlanId" binding:"required"`
	DayNumber    int              `json:"dayNumber" binding:"required,min=1"`
	Item         string           `json:"item" binding:"required,max=200"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Category     string           `json:"category" binding:"max=50"`
}
