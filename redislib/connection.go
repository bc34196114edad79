package redislib

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/t2bot/stream-metadata-backup/common/config"
)

func makeConnection(conf config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        conf.Address,
		Password:    conf.Password,
		DB:          conf.DbNum,
		DialTimeout: 10 * time.Second,
		MaxRetries:  -1, // failures surface immediately
	})
}
