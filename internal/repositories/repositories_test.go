package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"aitravel/internal/config"
	"aitravel/internal/infra"
	"aitravel/internal/models/db_models"
)

type RepositorySuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	users    UserRepository
	plans    TravelPlanRepository
	expenses ExpenseRepository
	alice    *db_models.User
	bob      *db_models.User
}

func (s *RepositorySuite) SetupTest() {
	db, err := infra.OpenDatabase(config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(s.T().TempDir(), "repo.db"),
	})
	require.NoError(s.T(), err)

	s.db = db
	s.ctx = context.Background()
	s.users = NewUserRepository(db)
	s.plans = NewTravelPlanRepository(db)
	s.expenses = NewExpenseRepository(db)

	s.alice = &db_models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	s.bob = &db_models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(s.T(), s.users.Insert(s.ctx, s.alice))
	require.NoError(s.T(), s.users.Insert(s.ctx, s.bob))
}

func (s *RepositorySuite) TearDownTest() {
	infra.CloseDatabase(s.db)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) newPlan(user *db_models.User, request, destination string, createdAt time.Time) *db_models.TravelPlan {
	plan := &db_models.TravelPlan{
		BaseModel:     db_models.BaseModel{CreatedAt: createdAt},
		UserID:        user.ID,
		Destination:   destination,
		Duration:      3,
		TotalBudget:   decimal.NewFromInt(2800),
		TravelRequest: request,
		PlanData:      datatypes.JSON(`{"destination":"` + destination + `"}`),
	}
	require.NoError(s.T(), s.plans.Create(s.ctx, plan))
	return plan
}

func (s *RepositorySuite) TestUserLookups() {
	found, err := s.users.FindByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Equal(s.T(), s.alice.ID, found.ID)

	missing, err := s.users.FindByUsername(s.ctx, "Alice")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), missing, "username match is case-sensitive")

	exists, err := s.users.ExistsByEmail(s.ctx, "bob@example.com")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.users.ExistsByUsername(s.ctx, "carol")
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)

	now := time.Now()
	require.NoError(s.T(), s.users.UpdateLastLogin(s.ctx, s.alice.ID, now))
	reloaded, err := s.users.FindByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), reloaded.LastLogin)
	assert.WithinDuration(s.T(), now, *reloaded.LastLogin, time.Second)
}

func (s *RepositorySuite) TestCreateSetsEqualTimestamps() {
	plan := s.newPlan(s.alice, "去上海三天", "上海", time.Time{})
	assert.NotZero(s.T(), plan.ID)
	assert.False(s.T(), plan.CreatedAt.IsZero())
	assert.Equal(s.T(), plan.CreatedAt, plan.UpdatedAt)
}

func (s *RepositorySuite) TestFindLatestByUserAndRequest() {
	base := time.Now().Add(-time.Hour)
	s.newPlan(s.alice, "去上海三天", "上海", base)
	newer := s.newPlan(s.alice, "去上海三天", "上海", base.Add(time.Minute))
	s.newPlan(s.bob, "去上海三天", "上海", base.Add(2*time.Minute))

	found, err := s.plans.FindLatestByUserAndRequest(s.ctx, s.alice.ID, "去上海三天")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Equal(s.T(), newer.ID, found.ID)

	found, err = s.plans.FindLatestByUserAndRequest(s.ctx, s.alice.ID, "去上海三天 ")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), found, "comparison is exact")
}

func (s *RepositorySuite) TestLatestTieBreaksOnID() {
	at := time.Now().Add(-time.Hour).Truncate(time.Second)
	s.newPlan(s.alice, "same", "北京", at)
	second := s.newPlan(s.alice, "same", "北京", at)

	found, err := s.plans.FindLatestByUser(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), found)
	assert.Equal(s.T(), second.ID, found.ID)
}

func (s *RepositorySuite) TestListByUserFiltersDestination() {
	base := time.Now().Add(-time.Hour)
	s.newPlan(s.alice, "a", "上海", base)
	s.newPlan(s.alice, "b", "Paris", base.Add(time.Minute))
	s.newPlan(s.bob, "c", "Paris", base)

	all, err := s.plans.ListByUser(s.ctx, s.alice.ID, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
	assert.Equal(s.T(), "Paris", all[0].Destination)

	filtered, err := s.plans.ListByUser(s.ctx, s.alice.ID, "pAR")
	require.NoError(s.T(), err)
	require.Len(s.T(), filtered, 1)
	assert.Equal(s.T(), "Paris", filtered[0].Destination)

	none, err := s.plans.ListByUser(s.ctx, s.alice.ID, "%")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)

	count, err := s.plans.CountByUser(s.ctx, s.alice.ID)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 2, count)
}

func (s *RepositorySuite) TestExistsRequestContaining() {
	s.newPlan(s.alice, "Shanghai Food Tour", "上海", time.Time{})

	ok, err := s.plans.ExistsRequestContaining(s.ctx, s.alice.ID, "shanghai")
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)

	ok, err = s.plans.ExistsRequestContaining(s.ctx, s.bob.ID, "shanghai")
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *RepositorySuite) TestExpenseLifecycle() {
	plan := s.newPlan(s.alice, "trip", "上海", time.Time{})
	base := time.Now().Add(-time.Hour)

	first := &db_models.Expense{TravelPlanID: plan.ID, DayNumber: 1, Item: "taxi", Amount: decimal.RequireFromString("12.5"), Category: "交通", CreatedAt: base}
	second := &db_models.Expense{TravelPlanID: plan.ID, DayNumber: 1, Item: "lunch", Amount: decimal.RequireFromString("7.25"), Category: "餐饮", CreatedAt: base.Add(time.Minute)}
	third := &db_models.Expense{TravelPlanID: plan.ID, DayNumber: 2, Item: "ticket", Amount: decimal.NewFromInt(100), Category: "门票", CreatedAt: base.Add(2 * time.Minute)}
	for _, e := range []*db_models.Expense{first, second, third} {
		require.NoError(s.T(), s.expenses.Create(s.ctx, e))
	}

	day1, err := s.expenses.ListByPlanAndDay(s.ctx, plan.ID, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), day1, 2)
	assert.Equal(s.T(), "lunch", day1[0].Item)

	all, err := s.expenses.ListByPlan(s.ctx, plan.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 3)
	assert.Equal(s.T(), "ticket", all[0].Item)

	sum, err := s.expenses.SumByPlanAndDay(s.ctx, plan.ID, 1)
	require.NoError(s.T(), err)
	assert.True(s.T(), sum.Equal(decimal.RequireFromString("19.75")), sum.String())

	sum, err = s.expenses.SumByPlanAndDay(s.ctx, plan.ID, 9)
	require.NoError(s.T(), err)
	assert.True(s.T(), sum.IsZero())

	owned, err := s.expenses.FindByIDAndUser(s.ctx, first.ID, s.alice.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), owned)

	foreign, err := s.expenses.FindByIDAndUser(s.ctx, first.ID, s.bob.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), foreign)

	require.NoError(s.T(), s.expenses.DeleteByPlanAndDay(s.ctx, plan.ID, 2))
	sum, err = s.expenses.SumByPlan(s.ctx, plan.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), sum.Equal(decimal.RequireFromString("19.75")), sum.String())

	require.NoError(s.T(), s.expenses.Delete(s.ctx, first.ID))
	require.NoError(s.T(), s.expenses.DeleteByPlan(s.ctx, plan.ID))
	all, err = s.expenses.ListByPlan(s.ctx, plan.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), all)
}

func (s *RepositorySuite) TestDeleteWithExpenses() {
	plan := s.newPlan(s.alice, "trip", "北京", time.Time{})
	require.NoError(s.T(), s.expenses.Create(s.ctx, &db_models.Expense{TravelPlanID: plan.ID, DayNumber: 1, Item: "tea", Amount: decimal.NewFromInt(5)}))

	deleted, err := s.plans.DeleteWithExpenses(s.ctx, plan.ID, s.bob.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	deleted, err = s.plans.DeleteWithExpenses(s.ctx, plan.ID, s.alice.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	gone, err := s.plans.FindByIDAndUser(s.ctx, plan.ID, s.alice.ID)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), gone)

	remaining, err := s.expenses.ListByPlan(s.ctx, plan.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), remaining)
}
