package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for token revocation.
// It stays nil when REDIS_ADDR is not configured; revocation checks are then
// skipped.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		log.Printf("[warn] redis ping failed, token revocation disabled: %v", err)
		return
	}
	RedisClient = rc
}

type contextKey string

const AdminIDKey = contextKey("adminID")
const RequestIDKey = contextKey("requestID")

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateJWT creates a signed access token for an admin.
func GenerateJWT(id int64, username string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	jti, err := generateJTI()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"role":     "admin",
		"exp":      now.Add(6 * time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken verifies signature and registered claims and checks the
// revocation store when one is configured.
func ValidateAccessToken(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if RedisClient != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			exists, err := RedisClient.Exists(context.Background(), "revoked:"+jti).Result()
			if err == nil && exists > 0 {
				return nil, errors.New("token revoked")
			}
		}
	}
	return claims, nil
}

// RevokeToken marks a token's jti as revoked until its natural expiry.
func RevokeToken(claims jwt.MapClaims) error {
	if RedisClient == nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no jti")
	}
	ttl := time.Hour
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	return RedisClient.Set(context.Background(), "revoked:"+jti, "1", ttl).Err()
}

// AdminIDFromClaims extracts the admin id, tolerating the numeric types JSON
// decoding produces.
func AdminIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch v := claims["id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, errors.New("token has no admin id")
	}
}
