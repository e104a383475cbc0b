package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix    = "game:"
	historyKeyPrefix = "game_history:"
	activeGamesKey   = "active_games"

	// DefaultHistoryLimit is how many snapshots are kept for undo
	DefaultHistoryLimit = 100
)

var (
	// ErrGameNotFound is returned when a table has no game
	ErrGameNotFound = errors.New("game not found")

	// ErrNothingToUndo is returned when a table has no earlier snapshot
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrVersionConflict is returned when another writer changed the table first
	ErrVersionConflict = errors.New("game was changed by another action")
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// HistoryLimit caps the undo history per table, DefaultHistoryLimit if zero
	HistoryLimit int64
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client       *redis.Client
	historyLimit int64
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
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

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &redisRepository{
		client:       cfg.RedisClient,
		historyLimit: limit,
	}, nil
}

func gameKey(tableID string) string {
	return gameKeyPrefix + tableID
}

func historyKey(tableID string) string {
	return historyKeyPrefix + tableID
}

// SaveGame persists a snapshot to Redis if the stored snapshot is still at
// ExpectedVersion, and stamps Game.Version with the next version
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.TableID == "" {
		return errors.New("table ID cannot be empty")
	}

	var previousJSON []byte
	if input.Previous != nil {
		var err error
		previousJSON, err = json.Marshal(input.Previous)
		if err != nil {
			return fmt.Errorf("failed to marshal previous game: %w", err)
		}
	}

	key := gameKey(input.TableID)
	txf := func(tx *redis.Tx) error {
		current, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != input.ExpectedVersion {
			return ErrVersionConflict
		}

		next := input.Game.Copy()
		next.Version = current + 1
		gameJSON, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0) // No expiration for now

			if input.ClearHistory {
				pipe.Del(ctx, historyKey(input.TableID))
			}

			if previousJSON != nil {
				pipe.LPush(ctx, historyKey(input.TableID), previousJSON)
				pipe.LTrim(ctx, historyKey(input.TableID), 0, r.historyLimit-1)
			}

			// Ended games drop out of the active set but stay undoable
			if next.Status.IsActive() {
				pipe.SAdd(ctx, activeGamesKey, input.TableID)
			} else {
				pipe.SRem(ctx, activeGamesKey, input.TableID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		input.Game.Version = next.Version
		return nil
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, ErrVersionConflict) || errors.Is(err, redis.TxFailedErr) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves the current snapshot for a table from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.TableID == "" {
		return nil, errors.New("input and table ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.TableID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return unmarshalGame(gameJSON)
}

// Undo pops the most recent previous snapshot and makes it current. The pop
// and the restore commit together or not at all.
func (r *redisRepository) Undo(ctx context.Context, input *UndoInput) (*models.Game, error) {
	if input == nil || input.TableID == "" {
		return nil, errors.New("input and table ID cannot be empty")
	}

	key := gameKey(input.TableID)
	hKey := historyKey(input.TableID)

	var restored *models.Game
	txf := func(tx *redis.Tx) error {
		previousJSON, err := tx.LIndex(ctx, hKey, 0).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNothingToUndo
			}
			return fmt.Errorf("failed to read game history: %w", err)
		}

		previous, err := unmarshalGame(previousJSON)
		if err != nil {
			return err
		}

		current, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}

		// The restored snapshot gets a fresh version so writers holding the undone one conflict
		previous.Version = current + 1
		gameJSON, err := json.Marshal(previous)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LPop(ctx, hKey)
			pipe.Set(ctx, key, gameJSON, 0)
			if previous.Status.IsActive() {
				pipe.SAdd(ctx, activeGamesKey, input.TableID)
			} else {
				pipe.SRem(ctx, activeGamesKey, input.TableID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		restored = previous
		return nil
	}

	if err := r.client.Watch(ctx, txf, key, hKey); err != nil {
		switch {
		case errors.Is(err, ErrNothingToUndo), errors.Is(err, ErrVersionConflict):
			return nil, err
		case errors.Is(err, redis.TxFailedErr):
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to undo: %w", err)
	}

	return restored, nil
}

// GetHistoryLength returns the number of snapshots available to undo
func (r *redisRepository) GetHistoryLength(ctx context.Context, input *GetHistoryLengthInput) (int64, error) {
	if input == nil || input.TableID == "" {
		return 0, errors.New("input and table ID cannot be empty")
	}

	n, err := r.client.LLen(ctx, historyKey(input.TableID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get history length: %w", err)
	}
	return n, nil
}

// DeleteGame removes a table's game and history from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.TableID == "" {
		return errors.New("input and table ID cannot be empty")
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, gameKey(input.TableID), historyKey(input.TableID))
		pipe.SRem(ctx, activeGamesKey, input.TableID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// GetActiveGames retrieves all active games from Redis
func (r *redisRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	// Get all active table IDs from the set
	tableIDs, err := r.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active table IDs: %w", err)
	}

	games := make(map[string]*models.Game, len(tableIDs))
	if len(tableIDs) == 0 {
		return &GetActiveGamesOutput{Games: games}, nil
	}

	// Get all games in one round trip
	pipe := r.client.Pipeline()
	gameCommands := make(map[string]*redis.StringCmd, len(tableIDs))
	for _, tableID := range tableIDs {
		gameCommands[tableID] = pipe.Get(ctx, gameKey(tableID))
	}

	// redis.Nil from a single missing key is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}

	for tableID, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Game was deleted between getting the IDs and fetching the game
				continue
			}
			return nil, fmt.Errorf("failed to get game for table %s: %w", tableID, err)
		}

		game, err := unmarshalGame(gameJSON)
		if err != nil {
			return nil, err
		}
		games[tableID] = game
	}

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

// storedVersion reads the version of the table's current snapshot, 0 if there is none
func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	gameJSON, err := tx.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get game: %w", err)
	}

	game, err := unmarshalGame(gameJSON)
	if err != nil {
		return 0, err
	}
	return game.Version, nil
}

func unmarshalGame(gameJSON string) (*models.Game, error) {
	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &game, nil
}
