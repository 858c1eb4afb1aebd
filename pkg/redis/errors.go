package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: REDIS_URL is not set")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	ErrRedisNotReady                = errors.New("redis: server did not answer within the connect budget")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
)
