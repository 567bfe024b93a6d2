package expense_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"aitravel/internal/repositories"
	"aitravel/internal/services"
)

var Module = fx.Provide(
	provideExpenseRepo, provideExpenseService)

func provideExpenseRepo(db *gorm.DB) repositories.ExpenseRepository {
	return repositories.NewExpenseRepository(db)
}

func provideExpenseService(planRepo repositories.TravelPlanRepository, expenseRepo repositories.ExpenseRepository) services.ExpenseServiceInterface {
	return services.NewExpenseService(planRepo, expenseRepo)
}
