package prompt_fx

import (
	"fmt"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"aitravel/internal/config"
	"aitravel/internal/repositories"
	"aitravel/internal/services"
	"aitravel/pkg/utils"
)

var Module = fx.Provide(
	ProvideTravelPlanClient,
	ProvidePlanRepo,
	ProvideTravelPlanService,
	ProvideCalendarService)

// ProvideTravelPlanClient creates the chat client selected by AI_PROVIDER.
func ProvideTravelPlanClient(cfg config.Config) (utils.TravelPlanClientInterface, error) {
	if cfg.AI.APIKey == "" {
		log.Printf("No API key configured for %s, plan generation requests will fail", cfg.AI.Provider)
	}
	log.Printf("Initializing %s chat client with model: %s", cfg.AI.Provider, cfg.AI.Model)

	client, err := utils.NewTravelPlanClient(utils.ChatClientConfig{
		Provider:    cfg.AI.Provider,
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat client: %w", err)
	}
	return client, nil
}

func ProvidePlanRepo(db *gorm.DB) repositories.TravelPlanRepository {
	return repositories.NewTravelPlanRepository(db)
}

func ProvideTravelPlanService(planRepo repositories.TravelPlanRepository, aiClient utils.TravelPlanClientInterface) services.TravelPlanServiceInterface {
	return services.NewTravelPlanService(planRepo, aiClient)
}

func ProvideCalendarService(cfg config.Config, planRepo repositories.TravelPlanRepository) services.CalendarServiceInterface {
	return services.NewCalendarService(planRepo, cfg.Location())
}
