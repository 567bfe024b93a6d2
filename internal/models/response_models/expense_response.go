package response_models

import "time"

type ExpenseResponse struct {
	ID           uint      `json:"id"`
	TravelPlanID uint      `json:"travelPlanId"`
	DayNumber    int       `json:"dayNumber"`
	Item         string    `json:"item"`
	Amount       float64   `json:"amount"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
}
