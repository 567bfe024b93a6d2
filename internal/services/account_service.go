package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"aitravel/internal/infra"
	"aitravel/internal/models/db_models"
	"aitravel/internal/models/request_models"
	"aitravel/internal/models/response_models"
	"aitravel/internal/repositories"
	"aitravel/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*db_models.User, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager
}

func NewAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*db_models.User, error) {
	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)
	if username == "" || email == "" || request.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", utils.ErrInvalidInput)
	}
	if request.Password != request.ConfirmPassword {
		return nil, utils.ErrPasswordMismatch
	}

	taken, err := a.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if taken {
		return nil, utils.ErrUsernameTaken
	}

	taken, err = a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if taken {
		return nil, utils.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if infra.IsUniqueViolation(err) {
			return nil, a.registrationConflict(ctx, username, email)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	log.Printf("Registered user %q (id=%d)", user.Username, user.ID)
	return user, nil
}

// registrationConflict reports which unique column a racing insert collided
// on, checking username first like Register does.
func (a *AccountService) registrationConflict(ctx context.Context, username, email string) error {
	if taken, err := a.userRepo.ExistsByUsername(ctx, username); err == nil && taken {
		return utils.ErrUsernameTaken
	}
	if taken, err := a.userRepo.ExistsByEmail(ctx, email); err == nil && taken {
		return utils.ErrEmailTaken
	}
	return utils.ErrUsernameTaken
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	token, err := a.tokens.CreateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Printf("Login for %q took %s", user.Username, time.Since(startTime))

	return &response_models.LoginResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (a *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := a.userRepo.ExistsByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return exists, nil
}

func (a *AccountService) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := a.userRepo.ExistsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return exists, nil
}
