package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/samber/lo"

	"aitravel/internal/models/db_models"
	"aitravel/internal/repositories"
	"aitravel/pkg/plandoc"
	"aitravel/pkg/utils"
)

// CalendarServiceInterface renders a stored itinerary as iCalendar text.
type CalendarServiceInterface interface {
	ExportPlan(ctx context.Context, user *db_models.User, planID uint) (string, error)
}

type CalendarService struct {
	planRepo repositories.TravelPlanRepository
	loc      *time.Location
}

func NewCalendarService(planRepo repositories.TravelPlanRepository, loc *time.Location) CalendarServiceInterface {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{planRepo: planRepo, loc: loc}
}

func (s *CalendarService) ExportPlan(ctx context.Context, user *db_models.User, planID uint) (string, error) {
	if user == nil {
		return "", utils.ErrUnauthenticated
	}
	plan, err := s.planRepo.FindByIDAndUser(ctx, planID, user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return "", utils.ErrPlanNotFound
	}

	return BuildCalendar(plan, s.loc), nil
}

// BuildCalendar emits one event per activity. Activities with an
// "HH:MM-HH:MM" time become timed events; the rest span the whole day.
func BuildCalendar(plan *db_models.TravelPlan, loc *time.Location) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ai-travel-planner//travel plan//EN")
	cal.SetXWRCalName(plan.Destination)

	stamp := plan.UpdatedAt.UTC()
	for i, day := range plandoc.Parse(string(plan.PlanData)).Days() {
		dayNumber := day.Day
		if dayNumber < 1 {
			dayNumber = i + 1
		}
		date := utils.DayOf(day.Date, dayNumber, plan.CreatedAt, loc)

		for j, act := range day.Activities {
			event := cal.AddEvent(fmt.Sprintf("plan-%d-day-%d-%d@ai-travel-planner", plan.ID, dayNumber, j+1))
			event.SetDtStampTime(stamp)
			event.SetSummary(lo.CoalesceOrEmpty(act.Name, day.Title, plan.Destination))
			event.SetLocation(plan.Destination)
			event.SetDescription(describe(day, act))

			if start, end, ok := utils.ParseClockRange(date, act.Time, loc); ok {
				event.SetStartAt(start)
				event.SetEndAt(end)
			} else {
				event.SetAllDayStartAt(date)
				event.SetAllDayEndAt(date.AddDate(0, 0, 1))
			}
		}
	}

	return cal.Serialize()
}

func describe(day plandoc.Day, act plandoc.Activity) string {
	var parts []string
	if day.Title != "" {
		parts = append(parts, day.Title)
	}
	if act.Description != "" {
		parts = append(parts, act.Description)
	}
	if act.HasBudget {
		parts = append(parts, "budget: "+act.Budget.String())
	}
	return strings.Join(parts, "\n")
}
