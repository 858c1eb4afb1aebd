// Package redis connects to Redis with retries and exposes a readiness probe.
//
// The connection is optional: Config.Enabled reports whether REDIS_URL is set,
// and the service keeps rate limit state in memory when it is not.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//	}
package redis
