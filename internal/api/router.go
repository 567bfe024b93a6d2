package api

import (
	"github.com/gin-gonic/gin"

	"aitravel/internal/api/controllers"
	"aitravel/internal/config"
	"aitravel/internal/services"
	"aitravel/pkg/middleware"
)

func NewRouter(
	cfg config.Config,
	identity services.IdentityServiceInterface,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	expenseController *controllers.ExpenseController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, identity, accountController, planController, expenseController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	identity services.IdentityServiceInterface,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	expenseController *controllers.ExpenseController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/login", accountController.Login)
	authGroup.POST("/register", accountController.Register)
	authGroup.GET("/check-username", accountController.CheckUsername)
	authGroup.GET("/check-email", accountController.CheckEmail)

	aiGroup := r.Group("/ai")
	aiGroup.GET("/health", planController.Health)

	secured := aiGroup.Group("", middleware.RequireUser(identity))

	planGroup := secured.Group("/plan")
	planGroup.POST("", planController.CreatePlan)
	planGroup.GET("/latest", planController.GetLatestPlan)
	planGroup.GET("/all", planController.ListPlans)
	planGroup.GET("/count", planController.CountPlans)
	planGroup.GET("/similar", planController.SimilarPlan)
	planGroup.GET("/:id", planController.GetPlan)
	planGroup.GET("/:id/ical", planController.ExportPlan)
	planGroup.DELETE("/:id", planController.DeletePlan)

	expenseGroup := secured.Group("/expense")
	expenseGroup.POST("", expenseController.AddExpense)
	expenseGroup.DELETE("/:id", expenseController.DeleteExpense)
	expenseGroup.GET("/total/:planId", expenseController.PlanTotal)
	expenseGroup.GET("/total/:planId/:day", expenseController.DayTotal)
	expenseGroup.GET("/:planId", expenseController.ListPlanExpenses)
	expenseGroup.GET("/:planId/:day", expenseController.ListDayExpenses)
}
