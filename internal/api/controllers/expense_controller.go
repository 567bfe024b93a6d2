package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"aitravel/internal/models/db_models"
	"aitravel/internal/models/request_models"
	"aitravel/internal/models/response_models"
	"aitravel/internal/services"
	"aitravel/pkg/middleware"
	"aitravel/pkg/utils"
)

type ExpenseController struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseController(expenseService services.ExpenseServiceInterface) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
	}
}

func toExpenseResponse(e db_models.Expense) response_models.ExpenseResponse {
	return response_models.ExpenseResponse{
		ID:           e.ID,
		TravelPlanID: e.TravelPlanID,
		DayNumber:    e.DayNumber,
		Item:         e.Item,
		Amount:       e.Amount.InexactFloat64(),
		Category:     e.Category,
		CreatedAt:    e.CreatedAt,
	}
}

func toExpenseResponses(expenses []db_models.Expense) []response_models.ExpenseResponse {
	return lo.Map(expenses, func(e db_models.Expense, _ int) response_models.ExpenseResponse {
		return toExpenseResponse(e)
	})
}

// AddExpense godoc
// @Summary Record an expense against a plan day
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.AddExpenseRequest true "Expense payload"
// @Success 200 {object} utils.APIResponse{data=response_models.ExpenseResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /ai/expense [post]
func (e *ExpenseController) AddExpense(c *gin.Context) {
	var req request_models.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := e.expenseService.AddExpense(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toExpenseResponse(*expense), "Expense added")
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /ai/expense/{id} [delete]
func (e *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	if err := e.expenseService.DeleteExpense(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Expense deleted")
}

// ListPlanExpenses godoc
// @Summary All expenses of a plan, newest first
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ExpenseResponse}
// @Router /ai/expense/{planId} [get]
func (e *ExpenseController) ListPlanExpenses(c *gin.Context) {
	planID, ok := pathUint(c, "planId")
	if !ok {
		return
	}

	expenses, err := e.expenseService.ListExpensesByPlan(c.Request.Context(), middleware.CurrentUser(c), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toExpenseResponses(expenses), fmt.Sprintf("%d expenses", len(expenses)))
}

// ListDayExpenses godoc
// @Summary Expenses of one plan day, newest first
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param day path int true "Day number"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ExpenseResponse}
// @Router /ai/expense/{planId}/{day} [get]
func (e *ExpenseController) ListDayExpenses(c *gin.Context) {
	planID, ok := pathUint(c, "planId")
	if !ok {
		return
	}
	day, ok := pathDay(c, "day")
	if !ok {
		return
	}

	expenses, err := e.expenseService.ListExpensesByDay(c.Request.Context(), middleware.CurrentUser(c), planID, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toExpenseResponses(expenses), fmt.Sprintf("%d expenses", len(expenses)))
}

// PlanTotal godoc
// @Summary Sum of all expenses of a plan
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {object} utils.APIResponse{data=number}
// @Router /ai/expense/total/{planId} [get]
func (e *ExpenseController) PlanTotal(c *gin.Context) {
	planID, ok := pathUint(c, "planId")
	if !ok {
		return
	}

	total, err := e.expenseService.SumByPlan(c.Request.Context(), middleware.CurrentUser(c), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, total.InexactFloat64(), "Plan expense total")
}

// DayTotal godoc
// @Summary Sum of the expenses of one plan day
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Param day path int true "Day number"
// @Success 200 {object} utils.APIResponse{data=number}
// @Router /ai/expense/total/{planId}/{day} [get]
func (e *ExpenseController) DayTotal(c *gin.Context) {
	planID, ok := pathUint(c, "planId")
	if !ok {
		return
	}
	day, ok := pathDay(c, "day")
	if !ok {
		return
	}

	total, err := e.expenseService.SumByDay(c.Request.Context(), middleware.CurrentUser(c), planID, day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, total.InexactFloat64(), "Day expense total")
}
