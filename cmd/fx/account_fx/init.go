package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"aitravel/internal/config"
	"aitravel/internal/repositories"
	"aitravel/internal/services"
	mem "aitravel/pkg/memcache"
	"aitravel/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo, provideTokenManager, provideAccountService, provideIdentityService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideTokenManager(cfg config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
}

func provideAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, tokens)
}

func provideIdentityService(userRepo repositories.UserRepository, tokens *utils.TokenManager, cache mem.UserCache) services.IdentityServiceInterface {
	return services.NewIdentityService(userRepo, tokens, cache)
}
