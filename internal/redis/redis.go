package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// SeenCallback records a provider callback ID and reports whether it was
// already seen inside the TTL window. Chat providers redeliver webhooks on
// slow or lost acks; a replayed callback must not run the interpreter or
// queue a second reply. Without Redis configured the check is a no-op and
// every callback is treated as new.
func SeenCallback(ctx context.Context, callbackID string, ttl time.Duration) bool {
	if Rdb == nil || callbackID == "" {
		return false
	}
	fresh, err := Rdb.SetNX(ctx, "callback:"+callbackID, 1, ttl).Result()
	if err != nil {
		log.Error().Err(err).Str("callback_id", callbackID).Msg("failed to check callback dedupe key")
		return false
	}
	return !fresh
}
