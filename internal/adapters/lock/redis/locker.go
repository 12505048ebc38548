package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-adoption-hub/internal/ports/lock"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Borra la key solo si el valor sigue siendo el token de quien la tomó.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implementa lock.Locker con SET NX PX.
type Locker struct {
	client goredis.UniversalClient
	prefix string
}

func NewLocker(client goredis.UniversalClient, prefix string) *Locker {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if p == "" {
		p = "pet-adoption-hub:lock"
	}
	return &Locker{client: client, prefix: p}
}

// NewClient parsea REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, rawURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	c := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return c, nil
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	full := l.prefix + ":" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire %s: %w", full, err)
	}
	if !ok {
		return nil, lock.ErrNotAcquired
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{full}, token).Err(); err != nil {
			return fmt.Errorf("redis: release %s: %w", full, err)
		}
		return nil
	}, nil
}
