package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"aitravel/internal/api/controllers"
	"aitravel/internal/config"
	"aitravel/internal/infra"
	"aitravel/internal/repositories"
	"aitravel/internal/services"
	mem "aitravel/pkg/memcache"
	"aitravel/pkg/utils"
)

type countingClient struct {
	reply string
	err   error
	calls int
}

func (c *countingClient) GenerateTravelPlan(context.Context, string) (string, error) {
	c.calls++
	return c.reply, c.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type RouterSuite struct {
	suite.Suite
	db     *gorm.DB
	ai     *countingClient
	router *gin.Engine
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(s.T().TempDir(), "api.db"),
		CORSOrigins: []string{"*"},
	}
	db, err := infra.OpenDatabase(cfg)
	require.NoError(s.T(), err)
	s.db = db
	s.ai = &countingClient{reply: "I'd be happy to help with your trip!"}

	users := repositories.NewUserRepository(db)
	plans := repositories.NewTravelPlanRepository(db)
	expenses := repositories.NewExpenseRepository(db)
	tokens := utils.NewTokenManager("router-secret", "test", time.Hour)

	s.router = NewRouter(cfg,
		services.NewIdentityService(users, tokens, mem.NewUserCache(time.Minute)),
		controllers.NewAccountController(services.NewAccountService(users, tokens)),
		controllers.NewPlanController(
			services.NewTravelPlanService(plans, s.ai),
			services.NewCalendarService(plans, time.UTC)),
		controllers.NewExpenseController(services.NewExpenseService(plans, expenses)),
	)
}

func (s *RouterSuite) TearDownTest() {
	infra.CloseDatabase(s.db)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// signup registers and logs in, returning the bearer token.
func (s *RouterSuite) signup(name string) string {
	w, env := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"username": name, "email": name + "@example.com", "password": "password1", "confirmPassword": "password1",
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	require.True(s.T(), env.Success)

	w, env = s.do(http.MethodPost, "/auth/login", "", gin.H{"username": name, "password": "password1"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token    string `json:"token"`
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &login))
	require.Equal(s.T(), name, login.Username)
	require.NotEmpty(s.T(), login.Token)
	return login.Token
}

func (s *RouterSuite) TestHealth() {
	w, _ := s.do(http.MethodGet, "/ai/health", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var health map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(s.T(), "UP", health["status"])
	assert.Equal(s.T(), controllers.ServiceName, health["service"])
	assert.NotZero(s.T(), health["timestamp"])
}

func (s *RouterSuite) TestAuthFlow() {
	s.signup("alice")

	w, env := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice", "email": "x@example.com", "password": "password1", "confirmPassword": "password1",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.False(s.T(), env.Success)

	w, _ = s.do(http.MethodPost, "/auth/register", "", gin.H{
		"username": "carol", "email": "carol@example.com", "password": "password1", "confirmPassword": "different",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/login", "", gin.H{"username": "alice", "password": "wrong-password"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/auth/check-username?username=alice", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"exists":true}`, string(env.Data))

	w, env = s.do(http.MethodGet, "/auth/check-email?email=nobody@example.com", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"exists":false}`, string(env.Data))
}

func (s *RouterSuite) TestSecuredRoutesRequireToken() {
	for _, path := range []string{"/ai/plan/latest", "/ai/plan/all", "/ai/plan/1", "/ai/expense/1/1", "/ai/expense/total/1"} {
		w, env := s.do(http.MethodGet, path, "", nil)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code, path)
		assert.False(s.T(), env.Success, path)
	}

	w, _ := s.do(http.MethodPost, "/ai/plan", "not-a-jwt", gin.H{"travelRequest": "x"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), 0, s.ai.calls)
}

func (s *RouterSuite) TestCreatePlanEndToEnd() {
	token := s.signup("alice")

	w, env := s.do(http.MethodPost, "/ai/plan", token, gin.H{
		"travelRequest":   "3 days in Shanghai budget trip",
		"forceRegenerate": false,
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.True(s.T(), env.Success)

	var doc struct {
		Destination string `json:"destination"`
		Duration    int    `json:"duration"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &doc))
	assert.Equal(s.T(), "上海", doc.Destination)
	assert.Equal(s.T(), 3, doc.Duration)

	// Same request again: reused, no second AI call.
	w, again := s.do(http.MethodPost, "/ai/plan", token, gin.H{"travelRequest": "3 days in Shanghai budget trip"})
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), string(env.Data), string(again.Data))
	assert.Equal(s.T(), 1, s.ai.calls)

	// String "true" forces regeneration.
	w, _ = s.do(http.MethodPost, "/ai/plan", token, gin.H{"travelRequest": "3 days in Shanghai budget trip", "forceRegenerate": "true"})
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), 2, s.ai.calls)

	w, env = s.do(http.MethodGet, "/ai/plan/count", token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"count":2}`, string(env.Data))

	w, env = s.do(http.MethodGet, "/ai/plan/latest", token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var latest struct {
		PlanData      map[string]any `json:"planData"`
		TravelRequest string         `json:"travelRequest"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &latest))
	assert.Equal(s.T(), "3 days in Shanghai budget trip", latest.TravelRequest)
	assert.Equal(s.T(), "上海", latest.PlanData["destination"])

	w, env = s.do(http.MethodGet, "/ai/plan/similar?travelRequest=shanghai+food", token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"similar":true}`, string(env.Data))
}

func (s *RouterSuite) TestCreatePlanValidation() {
	token := s.signup("alice")

	w, env := s.do(http.MethodPost, "/ai/plan", token, gin.H{"travelRequest": "   "})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.False(s.T(), env.Success)
	assert.Equal(s.T(), 0, s.ai.calls)

	s.ai.err = fmt.Errorf("%w: quota exceeded", utils.ErrUnexpectedBehaviorOfAI)
	w, env = s.do(http.MethodPost, "/ai/plan", token, gin.H{"travelRequest": "Kyoto"})
	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.Contains(s.T(), env.Message, "quota exceeded")

	w, env = s.do(http.MethodGet, "/ai/plan/latest", token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "null", string(env.Data))
}

func (s *RouterSuite) TestCrossUserIsolation() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, _ = s.do(http.MethodPost, "/ai/plan", alice, gin.H{"travelRequest": "Beijing"})
	w, env := s.do(http.MethodGet, "/ai/plan/all", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var plans []struct {
		ID          uint   `json:"id"`
		Destination string `json:"destination"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &plans))
	require.Len(s.T(), plans, 1)
	assert.Equal(s.T(), "北京", plans[0].Destination)
	planPath := fmt.Sprintf("/ai/plan/%d", plans[0].ID)

	w, _ = s.do(http.MethodGet, planPath, alice, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, planPath, bob, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), "null", string(env.Data))

	w, env = s.do(http.MethodGet, "/ai/plan/all", bob, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `[]`, string(env.Data))

	w, _ = s.do(http.MethodPost, "/ai/expense", bob, gin.H{"travelPlanId": plans[0].ID, "dayNumber": 1, "item": "x", "amount": 1})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/ai/expense/total/%d", plans[0].ID), bob, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodDelete, planPath, bob, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodDelete, planPath, alice, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, planPath, alice, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestExpenseEndpoints() {
	token := s.signup("alice")
	_, _ = s.do(http.MethodPost, "/ai/plan", token, gin.H{"travelRequest": "上海 trip"})
	_, env := s.do(http.MethodGet, "/ai/plan/all", token, nil)
	var plans []struct {
		ID uint `json:"id"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &plans))
	require.Len(s.T(), plans, 1)
	planID := plans[0].ID

	w, env := s.do(http.MethodGet, fmt.Sprintf("/ai/expense/total/%d", planID), token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "0", string(env.Data))

	w, env = s.do(http.MethodPost, "/ai/expense", token, gin.H{"travelPlanId": planID, "dayNumber": 1, "item": "地铁", "amount": "12.50"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID       uint    `json:"id"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &created))
	assert.Equal(s.T(), 12.5, created.Amount)
	assert.Equal(s.T(), "其他", created.Category)

	w, _ = s.do(http.MethodPost, "/ai/expense", token, gin.H{"travelPlanId": planID, "dayNumber": 1, "item": "午餐", "amount": 7.25, "category": "餐饮"})
	require.Equal(s.T(), http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/ai/expense", token, gin.H{"travelPlanId": planID, "dayNumber": 2, "item": "门票", "amount": 120})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/ai/expense", token, gin.H{"travelPlanId": planID, "dayNumber": 1, "item": "bad", "amount": "twelve"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/ai/expense/%d/1", planID), token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var day1 []struct {
		Item string `json:"item"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &day1))
	require.Len(s.T(), day1, 2)
	assert.Equal(s.T(), "午餐", day1[0].Item)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/ai/expense/%d", planID), token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var all []json.RawMessage
	require.NoError(s.T(), json.Unmarshal(env.Data, &all))
	assert.Len(s.T(), all, 3)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/ai/expense/total/%d/1", planID), token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "19.75", string(env.Data))

	w, env = s.do(http.MethodGet, fmt.Sprintf("/ai/expense/total/%d", planID), token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "139.75", string(env.Data))

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/ai/expense/%d", created.ID), token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	w, env = s.do(http.MethodDelete, fmt.Sprintf("/ai/expense/%d", created.ID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), utils.ErrExpenseNotFound.Error(), env.Message)

	w, _ = s.do(http.MethodGet, "/ai/expense/abc/1", token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/ai/plan/%d/ical", planID), token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.True(s.T(), strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(s.T(), w.Body.String(), "BEGIN:VEVENT")
}
