package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/redisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/gomodule/redigo/redis"
)

// Backend names accepted by Config.Store.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultRedisAddr is dialed when Config.RedisAddr is empty.
const DefaultRedisAddr = "localhost:6379"

// Config configures the session manager backing a Store. Empty values
// fall back to an in-memory store and the scs cookie defaults.
type Config struct {
	Store      string        `yaml:"store" env:"STORE"`
	RedisAddr  string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB    int           `yaml:"redis_db" env:"REDIS_DB"`
	CookieName string        `yaml:"cookie_name" env:"COOKIE_NAME"`
	Lifetime   time.Duration `yaml:"lifetime" env:"LIFETIME"`
	Secure     bool          `yaml:"secure" env:"SECURE"`
}

// NewManager builds an scs session manager for cfg.
func NewManager(cfg Config) (*scs.SessionManager, error) {
	manager := scs.New()
	if cfg.Lifetime > 0 {
		manager.Lifetime = cfg.Lifetime
	}
	if name := strings.TrimSpace(cfg.CookieName); name != "" {
		manager.Cookie.Name = name
	}
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	if cfg.Secure {
		manager.Cookie.Secure = true
		manager.Cookie.Persist = true
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case "", BackendMemory:
		manager.Store = memstore.New()
	case BackendRedis:
		manager.Store = redisstore.New(newRedisPool(cfg.RedisAddr, cfg.RedisDB))
	default:
		return nil, fmt.Errorf("session: unknown store backend %q", cfg.Store)
	}
	return manager, nil
}

func newRedisPool(addr string, db int) *redis.Pool {
	if strings.TrimSpace(addr) == "" {
		addr = DefaultRedisAddr
	}
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr, redis.DialDatabase(db))
		},
	}
}
