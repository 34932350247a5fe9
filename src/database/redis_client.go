package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var RedisCtx = context.Background()

// InitRedis connects the shared Redis client. Redis is optional in
// development: a failed connection leaves RedisClient nil and callers fall
// back gracefully.
func InitRedis() {
	if RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Refresh token store disabled.")
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     RedisURI, // เช่น localhost:6379
		Password: "",       // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	_, err := RedisClient.Ping(RedisCtx).Result()
	if err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		RedisClient = nil
		return
	}
	log.Println("✅ Redis connected successfully")
}
