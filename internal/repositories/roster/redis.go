package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	rosterKeyPrefix = "roster:"
)

// ErrRosterNotFound is returned when a table has no saved roster
var ErrRosterNotFound = errors.New("roster not found")

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveRoster persists a roster to Redis
func (r *redisRepository) SaveRoster(ctx context.Context, input *SaveRosterInput) error {
	if input == nil || input.Roster == nil {
		return errors.New("input and roster cannot be nil")
	}

	if input.Roster.TableID == "" {
		return errors.New("table ID cannot be empty")
	}

	rosterJSON, err := json.Marshal(input.Roster)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	if err := r.client.Set(ctx, rosterKeyPrefix+input.Roster.TableID, rosterJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	return nil
}

// GetRoster retrieves a table's roster from Redis
func (r *redisRepository) GetRoster(ctx context.Context, input *GetRosterInput) (*models.Roster, error) {
	if input == nil || input.TableID == "" {
		return nil, errors.New("input and table ID cannot be empty")
	}

	rosterJSON, err := r.client.Get(ctx, rosterKeyPrefix+input.TableID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var roster models.Roster
	if err := json.Unmarshal([]byte(rosterJSON), &roster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	return &roster, nil
}
