package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"aitravel/internal/models/db_models"
	"aitravel/pkg/utils"
)

type stubIdentity struct {
	user *db_models.User
	err  error
}

func (s stubIdentity) ResolveUser(_ context.Context, header string) (*db_models.User, error) {
	if header != "Bearer good" {
		return nil, s.err
	}
	return s.user, s.err
}

func newEngine(identity stubIdentity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware(), CORSMiddleware([]string{"http://app.test"}))
	r.GET("/me", RequireUser(identity), func(c *gin.Context) {
		utils.RespondSuccess(c, CurrentUser(c).Username, "ok")
	})
	return r
}

func TestRequireUser(t *testing.T) {
	user := &db_models.User{Username: "alice"}
	r := newEngine(stubIdentity{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":"alice"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireUser_StorageFailure(t *testing.T) {
	r := newEngine(stubIdentity{err: errors.Join(utils.ErrDatabaseError, errors.New("down"))})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTraceID(t *testing.T) {
	r := newEngine(stubIdentity{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	_, err := uuid.Parse(w.Header().Get(TraceHeader))
	assert.NoError(t, err)

	inbound := uuid.NewString()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(TraceHeader, inbound)
	r.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(TraceHeader))
	assert.Contains(t, w.Body.String(), inbound)
}

func TestCORS(t *testing.T) {
	r := newEngine(stubIdentity{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "http://APP.test")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://APP.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Origin", "http://evil.test")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
