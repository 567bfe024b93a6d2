package utils

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	TraceID string      `json:"trace_id,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Success: false,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinels to a status and envelope.
// Unknown errors surface their text with a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, detail(err, ErrInvalidInput))
	case errors.Is(err, ErrPasswordMismatch):
		RespondError(c, http.StatusBadRequest, ErrPasswordMismatch.Error())
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, ErrPlanNotFound.Error())
	case errors.Is(err, ErrExpenseNotFound):
		RespondError(c, http.StatusNotFound, ErrExpenseNotFound.Error())
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, ErrUsernameTaken.Error())
	case errors.Is(err, ErrEmailTaken):
		RespondError(c, http.StatusConflict, ErrEmailTaken.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error: "+err.Error())
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		log.Printf("AI provider error: %v", err)
		RespondError(c, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

// detail strips the sentinel prefix from a wrapped error, keeping the cause.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return "Invalid request"
	}
	return msg
}
