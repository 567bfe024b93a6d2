package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aitravel/internal/models/request_models"
	"aitravel/internal/models/response_models"
	"aitravel/internal/services"
	"aitravel/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, "Registration successful")
}

// Login godoc
// @Summary Login and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse{data=response_models.LoginResponse}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// CheckUsername godoc
// @Summary Check whether a username is taken
// @Tags Auth
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} utils.APIResponse{data=response_models.ExistsResponse}
// @Router /auth/check-username [get]
func (a *AccountController) CheckUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		utils.RespondError(c, http.StatusBadRequest, "username is required")
		return
	}

	exists, err := a.accountService.UsernameExists(c.Request.Context(), username)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Username is available"
	if exists {
		message = "Username already exists"
	}
	utils.RespondSuccess(c, response_models.ExistsResponse{Exists: exists}, message)
}

// CheckEmail godoc
// @Summary Check whether an email is registered
// @Tags Auth
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} utils.APIResponse{data=response_models.ExistsResponse}
// @Router /auth/check-email [get]
func (a *AccountController) CheckEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		utils.RespondError(c, http.StatusBadRequest, "email is required")
		return
	}

	exists, err := a.accountService.EmailExists(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Email is available"
	if exists {
		message = "Email already registered"
	}
	utils.RespondSuccess(c, response_models.ExistsResponse{Exists: exists}, message)
}
