package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	IncrVoiceUsage(ctx context.Context, clientID string, day time.Time) (int, error)
	GetVoiceUsage(ctx context.Context, clientID string, day time.Time) (int, error)
	SetCreditSnapshot(ctx context.Context, remaining int, expiration time.Duration) error
	GetCreditSnapshot(ctx context.Context) (int, error)
}

var ErrSnapshotMissing = errors.New("redis: credit snapshot not set")

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func usageKey(clientID string, day time.Time) string {
	return fmt.Sprintf("voice_usage:%s:%s", clientID, day.Format("2006-01-02"))
}

const creditSnapshotKey = "voice_credits:snapshot"

// IncrVoiceUsage bumps the per-client daily voice counter. The key expires
// shortly after local midnight so counters reset on their own.
func (r *redisClient) IncrVoiceUsage(ctx context.Context, clientID string, day time.Time) (int, error) {
	key := usageKey(clientID, day)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error incrementing voice usage for %s: %v", key, err))
		return 0, err
	}

	if count == 1 {
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).Add(25 * time.Hour)
		if err := r.client.ExpireAt(ctx, key, midnight).Err(); err != nil {
			logrus.Error(fmt.Sprintf("Error setting expiry for %s: %v", key, err))
		}
	}
	return int(count), nil
}

func (r *redisClient) GetVoiceUsage(ctx context.Context, clientID string, day time.Time) (int, error) {
	val, err := r.client.Get(ctx, usageKey(clientID, day)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting voice usage for %s: %v", clientID, err))
		return 0, err
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SetCreditSnapshot caches the upstream credit balance so the webhook path
// does not hit the provider account endpoint on every message.
func (r *redisClient) SetCreditSnapshot(ctx context.Context, remaining int, expiration time.Duration) error {
	err := r.client.Set(ctx, creditSnapshotKey, remaining, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting credit snapshot: %v", err))
	}
	return err
}

func (r *redisClient) GetCreditSnapshot(ctx context.Context) (int, error) {
	val, err := r.client.Get(ctx, creditSnapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSnapshotMissing
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting credit snapshot: %v", err))
		return 0, err
	}
	return strconv.Atoi(val)
}
