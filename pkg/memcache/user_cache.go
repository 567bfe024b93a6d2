package mem

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"aitravel/internal/models/db_models"
)

// UserCache memoizes resolved users by username. It only ever holds users
// that were read from storage.
type UserCache interface {
	Get(username string) (*db_models.User, bool)
	Set(user *db_models.User)
}

type userCache struct {
	store *gocache.Cache
}

// NewUserCache returns a cache with the given TTL; ttl <= 0 disables caching.
func NewUserCache(ttl time.Duration) UserCache {
	if ttl <= 0 {
		return &userCache{}
	}
	return &userCache{store: gocache.New(ttl, 2*ttl)}
}

func (u *userCache) Get(username string) (*db_models.User, bool) {
	if u.store == nil {
		return nil, false
	}
	v, ok := u.store.Get(username)
	if !ok {
		return nil, false
	}
	user := v.(db_models.User)
	return &user, true
}

// Set stores a copy so callers cannot mutate the cached entry.
func (u *userCache) Set(user *db_models.User) {
	if u.store == nil || user == nil {
		return
	}
	u.store.SetDefault(user.Username, *user)
}
