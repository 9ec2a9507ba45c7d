package containers

import (
	"context"
	"log"
	"strings"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.2-alpine"

type RedisContainer struct {
	container *redis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	container, err := redis.Run(context.Background(), redisImage)
	if err != nil {
		log.Fatalf("error starting redis container: %v", err)
	}

	return &RedisContainer{
		container: container,
	}
}

func (c *RedisContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating redis container: %v", err)
	}
}

// Addr returns the host:port of the redis server.
func (c *RedisContainer) Addr() string {
	connStr, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting redis connection string: %v", err)
	}
	return strings.TrimPrefix(connStr, "redis://")
}
