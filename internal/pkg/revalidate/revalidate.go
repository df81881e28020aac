package revalidate

import (
	"context"
	"time"

	"github.com/skykintech/skyblog-core/internal/pkg/redis"
	"go.uber.org/zap"
)

const keyPrefix = "skyblog:page:"

// Invalidator drops cached renderings of public pages after a mutation.
// From the engagement core's point of view this is a fire-and-forget hook;
// failures are logged and never surfaced.
type Invalidator interface {
	Revalidate(paths ...string)
}

// Redis invalidates pages cached in Redis under skyblog:page:<path>.
type Redis struct {
	rc     *redis.Client
	logger *zap.Logger
}

// New returns a Redis-backed invalidator. A nil client degrades to a no-op.
func New(rc *redis.Client, logger *zap.Logger) Invalidator {
	if rc == nil {
		return Noop{}
	}
	return &Redis{rc: rc, logger: logger}
}

func (r *Redis) Revalidate(paths ...string) {
	if len(paths) == 0 {
		return
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = keyPrefix + p
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.rc.Del(ctx, keys...); err != nil {
		r.logger.Warn("page revalidation failed", zap.Strings("paths", paths), zap.Error(err))
	}
}

// Noop is used when no cache backend is configured (and in tests).
type Noop struct{}

func (Noop) Revalidate(...string) {}
