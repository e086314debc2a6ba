package config

import "github.com/redis/go-redis/v9"

func ConnectToRedis(cfg Redis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Host})
}
