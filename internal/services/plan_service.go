package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"aitravel/internal/models/db_models"
	"aitravel/internal/repositories"
	"aitravel/pkg/plandoc"
	"aitravel/pkg/utils"
)

type TravelPlanServiceInterface interface {
	CreatePlan(ctx context.Context, user *db_models.User, travelRequest string, forceRegenerate bool) (*PlanCreation, error)
	GetLatestPlan(ctx context.Context, user *db_models.User) (*db_models.TravelPlan, error)
	ListPlans(ctx context.Context, user *db_models.User, destination string) ([]db_models.TravelPlan, error)
	GetPlanByID(ctx context.Context, user *db_models.User, id uint) (*db_models.TravelPlan, error)
	DeletePlan(ctx context.Context, user *db_models.User, id uint) error
	CountPlans(ctx context.Context, user *db_models.User) (int64, error)
	HasSimilarPlan(ctx context.Context, user *db_models.User, travelRequest string) (bool, error)
}

// PlanCreation is the outcome of CreatePlan. Reused is set when an earlier
// plan for the same request was returned instead of generating a new one.
type PlanCreation struct {
	Plan         *db_models.TravelPlan
	Reused       bool
	UsedFallback bool
}

type TravelPlanService struct {
	planRepo repositories.TravelPlanRepository
	aiClient utils.TravelPlanClientInterface
}

func NewTravelPlanService(planRepo repositories.TravelPlanRepository, aiClient utils.TravelPlanClientInterface) TravelPlanServiceInterface {
	return &TravelPlanService{
		planRepo: planRepo,
		aiClient: aiClient,
	}
}

func (s *TravelPlanService) CreatePlan(ctx context.Context, user *db_models.User, travelRequest string, forceRegenerate bool) (*PlanCreation, error) {
	if user == nil {
		return nil, utils.ErrUnauthenticated
	}
	if strings.TrimSpace(travelRequest) == "" {
		return nil, fmt.Errorf("%w: travel request is required", utils.ErrInvalidInput)
	}

	if !forceRegenerate {
		existing, err := s.planRepo.FindLatestByUserAndRequest(ctx, user.ID, travelRequest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if existing != nil {
			log.Printf("Reusing travel plan %d for user %d", existing.ID, user.ID)
			return &PlanCreation{Plan: existing, Reused: true}, nil
		}
	}

	startTime := time.Now()
	raw, err := s.aiClient.GenerateTravelPlan(ctx, travelRequest)
	if err != nil {
		return nil, err
	}
	log.Printf("AI plan generation took %s", time.Since(startTime))

	doc, usedFallback := plandoc.Normalize(raw, travelRequest)
	if usedFallback {
		log.Printf("AI reply for user %d was not a JSON object, using fallback itinerary", user.ID)
	}
	fields := plandoc.Extract(doc)

	plan := &db_models.TravelPlan{
		UserID:        user.ID,
		Destination:   fields.Destination,
		Duration:      fields.Duration,
		TotalBudget:   fields.TotalBudget,
		TravelRequest: travelRequest,
		PlanData:      datatypes.JSON(doc),
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return &PlanCreation{Plan: plan, UsedFallback: usedFallback}, nil
}

// GetLatestPlan returns nil when the user has no plans yet.
func (s *TravelPlanService) GetLatestPlan(ctx context.Context, user *db_models.User) (*db_models.TravelPlan, error) {
	if user == nil {
		return nil, utils.ErrUnauthenticated
	}
	plan, err := s.planRepo.FindLatestByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return plan, nil
}

func (s *TravelPlanService) ListPlans(ctx context.Context, user *db_models.User, destination string) ([]db_models.TravelPlan, error) {
	if user == nil {
		return nil, utils.ErrUnauthenticated
	}
	plans, err := s.planRepo.ListByUser(ctx, user.ID, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return plans, nil
}

func (s *TravelPlanService) GetPlanByID(ctx context.Context, user *db_models.User, id uint) (*db_models.TravelPlan, error) {
	if user == nil {
		return nil, utils.ErrUnauthenticated
	}
	plan, err := s.planRepo.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return plan, nil
}

// DeletePlan removes the plan together with its expenses.
func (s *TravelPlanService) DeletePlan(ctx context.Context, user *db_models.User, id uint) error {
	if user == nil {
		return utils.ErrUnauthenticated
	}
	deleted, err := s.planRepo.DeleteWithExpenses(ctx, id, user.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrPlanNotFound
	}
	return nil
}

func (s *TravelPlanService) CountPlans(ctx context.Context, user *db_models.User) (int64, error) {
	if user == nil {
		return 0, utils.ErrUnauthenticated
	}
	count, err := s.planRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return count, nil
}

// HasSimilarPlan is a coarse check: an exact earlier request, or any keyword
// of this request appearing inside one of the user's earlier requests.
func (s *TravelPlanService) HasSimilarPlan(ctx context.Context, user *db_models.User, travelRequest string) (bool, error) {
	if user == nil {
		return false, utils.ErrUnauthenticated
	}
	if strings.TrimSpace(travelRequest) == "" {
		return false, nil
	}

	exact, err := s.planRepo.FindLatestByUserAndRequest(ctx, user.ID, travelRequest)
	if err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if exact != nil {
		return true, nil
	}

	for _, keyword := range ExtractKeywords(travelRequest) {
		found, err := s.planRepo.ExistsRequestContaining(ctx, user.ID, keyword)
		if err != nil {
			return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

var nonKeywordRune = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-zA-Z0-9]`)

// ExtractKeywords lower-cases the request, treats every rune outside CJK
// ideographs and ASCII letters and digits as a separator, and returns the
// distinct tokens in order of appearance.
func ExtractKeywords(travelRequest string) []string {
	cleaned := nonKeywordRune.ReplaceAllString(strings.ToLower(travelRequest), " ")
	return lo.Uniq(strings.Fields(cleaned))
}
