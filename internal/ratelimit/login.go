package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one counted attempt.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter interface {
	// Allow records an attempt for key and reports whether it may proceed.
	Allow(ctx context.Context, key string) (*Decision, error)
}

type loginLimiter struct {
	client    *redis.Client
	cfg       config.RateLimit
	namespace string
	now       func() time.Time
}

// NewLoginLimiter keeps one sorted set per email, scored by attempt time in
// milliseconds.
func NewLoginLimiter(client *redis.Client, cfg config.RateLimit, namespace string, now func() time.Time) Limiter {
	if now == nil {
		now = time.Now
	}

	return &loginLimiter{client: client, cfg: cfg, namespace: namespace, now: now}
}

func (l *loginLimiter) key(email string) string {
	return storage.Key(l.namespace, "login_attempts:"+strings.ToLower(strings.TrimSpace(email)))
}

func (l *loginLimiter) Allow(ctx context.Context, email string) (*Decision, error) {

	log := logger.FromContext(ctx)

	key := l.key(email)
	now := l.now().UnixMilli()
	windowStart := now - l.cfg.WindowSize.Milliseconds()

	pipe := l.client.Pipeline()

	// drop attempts that left the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})

	count := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, l.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts <= l.cfg.MaxAttempts {
		log.Debug("Rate limit check passed", slog.Int64("attempts", attempts))
		return &Decision{Allowed: true, Remaining: l.cfg.MaxAttempts - attempts}, nil
	}

	scores, err := l.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
	if err == nil && len(scores) == 0 {
		err = redis.Nil
	}
	if err != nil {
		log.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get oldest attempt time: %w", err)
	}

	oldest := int64(scores[0].Score)
	retryAfter := max(oldest+l.cfg.WindowSize.Milliseconds()-now, 0)

	log.Warn("Login rate limit exceeded", slog.Int64("attempts", attempts))

	return &Decision{RetryAfter: time.Duration(retryAfter) * time.Millisecond}, nil
}
