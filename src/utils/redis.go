package utils

import (
	"fmt"
	"time"

	DB "Backend-Formgenie-007/src/database"

	"github.com/redis/go-redis/v9"
)

// ensureClient returns the shared Redis client managed by the database
// package. Nil means Redis is not configured (development mode) and callers
// skip the check.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// StoreRefreshToken เก็บ refresh token ใน Redis พร้อม expiration
func StoreRefreshToken(userID, refreshToken string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	if err := client.Set(DB.RedisCtx, key, refreshToken, expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

// ValidateRefreshToken ตรวจสอบว่า refresh token ตรงกับที่เก็บไว้หรือไม่
// Returns true if Redis is not available (development mode - skip validation)
func ValidateRefreshToken(userID, refreshToken string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return true, nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	storedToken, err := client.Get(DB.RedisCtx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get refresh token: %v", err)
	}
	return storedToken == refreshToken, nil
}

// DeleteRefreshToken ลบ refresh token จาก Redis (ใช้ตอน logout)
func DeleteRefreshToken(userID string) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", userID)
	if err := client.Del(DB.RedisCtx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	return nil
}
