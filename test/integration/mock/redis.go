package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisConn   *redis.Client
)

// NewRedis returns a client for a process-wide miniredis instance.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// ClearRedis drops every cached key.
func ClearRedis() {
	if redisServer != nil {
		redisServer.FlushAll()
	}
}
