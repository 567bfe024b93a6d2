package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"aitravel/internal/models/db_models"
	"aitravel/internal/models/request_models"
	"aitravel/internal/models/response_models"
	"aitravel/internal/services"
	"aitravel/pkg/middleware"
	"aitravel/pkg/utils"
)

const ServiceName = "AI Travel Planner"

type PlanController struct {
	planService     services.TravelPlanServiceInterface
	calendarService services.CalendarServiceInterface
}

func NewPlanController(planService services.TravelPlanServiceInterface, calendarService services.CalendarServiceInterface) *PlanController {
	return &PlanController{
		planService:     planService,
		calendarService: calendarService,
	}
}

// CreatePlan godoc
// @Summary Generate a travel plan, or reuse an identical earlier one
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreatePlanRequest true "travelRequest and optional forceRegenerate"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /ai/plan [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	var req request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := p.planService.CreatePlan(c.Request.Context(), middleware.CurrentUser(c), req.TravelRequest, bool(req.ForceRegenerate))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Travel plan generated successfully"
	if created.Reused {
		message = "Reused existing travel plan for the same request"
	}
	utils.RespondSuccess(c, json.RawMessage(created.Plan.PlanData), message)
}

// GetLatestPlan godoc
// @Summary Most recent plan of the caller
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.LatestPlanResponse}
// @Router /ai/plan/latest [get]
func (p *PlanController) GetLatestPlan(c *gin.Context) {
	plan, err := p.planService.GetLatestPlan(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if plan == nil {
		utils.RespondSuccess(c, nil, "No travel plan found")
		return
	}

	utils.RespondSuccess(c, response_models.LatestPlanResponse{
		PlanData:      json.RawMessage(plan.PlanData),
		TravelRequest: plan.TravelRequest,
	}, "Latest travel plan")
}

// ListPlans godoc
// @Summary List the caller's plans, newest first
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param destination query string false "Case-insensitive destination filter"
// @Success 200 {object} utils.APIResponse{data=[]response_models.PlanSummary}
// @Router /ai/plan/all [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	plans, err := p.planService.ListPlans(c.Request.Context(), middleware.CurrentUser(c), c.Query("destination"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	summaries := lo.Map(plans, func(plan db_models.TravelPlan, _ int) response_models.PlanSummary {
		return response_models.PlanSummary{
			ID:            plan.ID,
			Destination:   plan.Destination,
			Duration:      plan.Duration,
			TotalBudget:   plan.TotalBudget.InexactFloat64(),
			TravelRequest: plan.TravelRequest,
			CreatedAt:     plan.CreatedAt,
		}
	})
	utils.RespondSuccess(c, summaries, fmt.Sprintf("%d travel plans", len(summaries)))
}

// CountPlans godoc
// @Summary Number of plans owned by the caller
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.CountResponse}
// @Router /ai/plan/count [get]
func (p *PlanController) CountPlans(c *gin.Context) {
	count, err := p.planService.CountPlans(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.CountResponse{Count: count}, "Travel plan count")
}

// SimilarPlan godoc
// @Summary Whether the caller already has a plan resembling the request
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param travelRequest query string true "Travel request text"
// @Success 200 {object} utils.APIResponse{data=response_models.SimilarPlanResponse}
// @Router /ai/plan/similar [get]
func (p *PlanController) SimilarPlan(c *gin.Context) {
	travelRequest := c.Query("travelRequest")
	if travelRequest == "" {
		utils.RespondError(c, http.StatusBadRequest, "travelRequest is required")
		return
	}

	similar, err := p.planService.HasSimilarPlan(c.Request.Context(), middleware.CurrentUser(c), travelRequest)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "No similar travel plan"
	if similar {
		message = "A similar travel plan already exists"
	}
	utils.RespondSuccess(c, response_models.SimilarPlanResponse{Similar: similar}, message)
}

// GetPlan godoc
// @Summary Plan detail
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=response_models.PlanDetail}
// @Failure 404 {object} utils.APIResponse
// @Router /ai/plan/{id} [get]
func (p *PlanController) GetPlan(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	plan, err := p.planService.GetPlanByID(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PlanDetail{
		ID:            plan.ID,
		Destination:   plan.Destination,
		Duration:      plan.Duration,
		TotalBudget:   plan.TotalBudget.InexactFloat64(),
		TravelRequest: plan.TravelRequest,
		PlanData:      json.RawMessage(plan.PlanData),
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}, "Travel plan detail")
}

// DeletePlan godoc
// @Summary Delete a plan and its expenses
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /ai/plan/{id} [delete]
func (p *PlanController) DeletePlan(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	if err := p.planService.DeletePlan(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Travel plan deleted")
}

// ExportPlan godoc
// @Summary Download a plan as an iCalendar file
// @Tags Plans
// @Produce text/calendar
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {string} string "text/calendar"
// @Failure 404 {object} utils.APIResponse
// @Router /ai/plan/{id}/ical [get]
func (p *PlanController) ExportPlan(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	calendar, err := p.calendarService.ExportPlan(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="travel-plan-%d.ics"`, id))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar))
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ai/health [get]
func (p *PlanController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"service":   ServiceName,
		"timestamp": time.Now().UnixMilli(),
	})
}
