package services

import (
	"context"
	"fmt"
	"strings"

	"aitravel/internal/models/db_models"
	"aitravel/internal/repositories"
	mem "aitravel/pkg/memcache"
	"aitravel/pkg/utils"
)

const bearerPrefix = "Bearer "

// IdentityServiceInterface resolves the caller behind an Authorization header.
// A nil user with a nil error means the caller is not authenticated.
type IdentityServiceInterface interface {
	ResolveUser(ctx context.Context, authorizationHeader string) (*db_models.User, error)
}

type IdentityService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenManager
	cache    mem.UserCache
}

func NewIdentityService(userRepo repositories.UserRepository, tokens *utils.TokenManager, cache mem.UserCache) IdentityServiceInterface {
	return &IdentityService{
		userRepo: userRepo,
		tokens:   tokens,
		cache:    cache,
	}
}

func (i *IdentityService) ResolveUser(ctx context.Context, authorizationHeader string) (*db_models.User, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return nil, nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if token == "" {
		return nil, nil
	}

	claims, err := i.tokens.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	if user, ok := i.cache.Get(claims.Username); ok {
		return user, nil
	}

	user, err := i.userRepo.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, nil
	}

	i.cache.Set(user)
	return user, nil
}
