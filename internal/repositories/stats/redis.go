package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/davemolk/countryguessr/internal/models"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix = "stats:player:"
	eventsKey       = "stats:events"
)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gamesField(kind models.GameKind) string {
	return fmt.Sprintf("game.%s:games", kind)
}

func scoreField(kind models.GameKind) string {
	return fmt.Sprintf("game.%s:score", kind)
}

// Record increments the player's play count and cumulative score, and appends
// an audit event, in a single pipeline
func (r *redisRepository) Record(ctx context.Context, input *RecordInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	event := &models.StatsEvent{
		ID:        uuid.New().String(),
		PlayerID:  input.PlayerID,
		Kind:      input.Kind,
		Score:     input.Score,
		Timestamp: time.Now(),
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stats event: %w", err)
	}

	playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, input.PlayerID)

	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, playerKey, gamesField(input.Kind), 1)
	pipe.HIncrBy(ctx, playerKey, scoreField(input.Kind), int64(input.Score))
	pipe.RPush(ctx, eventsKey, eventJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record stats: %w", err)
	}

	return nil
}

// GetPlayerStats reads the accumulated counters for a player. Players with no
// recorded games get zero counters, not an error.
func (r *redisRepository) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, input.PlayerID)

	values, err := r.client.HMGet(ctx, playerKey, gamesField(input.Kind), scoreField(input.Kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	out := &models.PlayerStats{
		PlayerID: input.PlayerID,
		Kind:     input.Kind,
	}

	if games, err := parseCounter(values[0]); err == nil {
		out.GamesPlayed = games
	}
	if score, err := parseCounter(values[1]); err == nil {
		out.TotalScore = score
	}

	return out, nil
}

func parseCounter(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, errors.New("counter not set")
	}
	return strconv.ParseInt(s, 10, 64)
}
