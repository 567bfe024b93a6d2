package response_models

import (
	"encoding/json"
	"time"
)

type LatestPlanResponse struct {
	PlanData      json.RawMessage `json:"planData"`
	TravelRequest string          `json:"travelRequest"`
}

type PlanSummary struct {
	ID            uint      `json:"id"`
	Destination   string    `json:"destination"`
	Duration      int       `json:"duration"`
	TotalBudget   float64   `json:"totalBudget"`
	TravelRequest string    `json:"travelRequest"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PlanDetail struct {
	ID            uint            `json:"id"`
	Destination   string          `json:"destination"`
	Duration      int             `json:"duration"`
	TotalBudget   float64         `json:"totalBudget"`
	TravelRequest string          `json:"travelRequest"`
	PlanData      json.RawMessage `json:"planData"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type SimilarPlanResponse struct {
	Similar bool `json:"similar"`
}
