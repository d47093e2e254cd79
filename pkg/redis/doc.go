// Package redis opens and supervises the Redis client that backs folio's
// session store. It wraps [github.com/redis/go-redis/v9].
//
// # Configuration
//
// Settings are loaded from environment variables:
//
//	REDIS_URL             - redis:// or rediss:// URL; empty disables Redis
//	REDIS_POOL_SIZE       - Maximum connections (default: 10)
//	REDIS_MIN_IDLE_CONNS  - Minimum idle connections (default: 2)
//	REDIS_MAX_IDLE_TIME   - Maximum connection idle time (default: 10m)
//	REDIS_MAX_ACTIVE_TIME - Maximum connection lifetime (default: 30m)
//	REDIS_DIAL_TIMEOUT    - Dial timeout (default: 5s)
//	REDIS_READ_TIMEOUT    - Read timeout (default: 3s)
//	REDIS_WRITE_TIMEOUT   - Write timeout (default: 3s)
//	REDIS_RETRY_ATTEMPTS  - Startup ping attempts (default: 3)
//	REDIS_RETRY_INTERVAL  - Base retry interval (default: 2s)
//
// # Usage
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//
// [Healthcheck] plugs into readiness probes and [Shutdown] into the server's
// shutdown hooks.
package redis
