// Package redis connects to the Redis server behind session.RedisStore.
//
// Connect retries the first ping according to Config, which is loaded from
// REDIS_* environment variables:
//
//	cfg, err := config.Load[redis.Config]()
//	client, err := redis.Connect(ctx, cfg, log)
//	store := session.NewRedisStore(client, session.WithKeyPrefix(cfg.KeyPrefix))
//
// Healthcheck adapts the client to a readiness check.
package redis
