package memcache_fx

import (
	"go.uber.org/fx"

	"aitravel/internal/config"
	mem "aitravel/pkg/memcache"
)

var Module = fx.Provide(provideUserCache)

func provideUserCache(cfg config.Config) mem.UserCache {
	return mem.NewUserCache(cfg.IdentityCacheTTL)
}
