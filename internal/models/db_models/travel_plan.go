package db_models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TravelPlan stores one generated itinerary. PlanData keeps the document
// exactly as it was accepted, so it uses json rather than jsonb.
type TravelPlan struct {
	BaseModel
	UserID        uint            `gorm:"not null;index" json:"userId"`
	User          User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Destination   string          `gorm:"size:100" json:"destination"`
	Duration      int             `json:"duration"`
	TotalBudget   decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalBudget"`
	TravelRequest string          `gorm:"type:text;not null" json:"travelRequest"`
	PlanData      datatypes.JSON  `gorm:"type:json" json:"planData"`
}
