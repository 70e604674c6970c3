package stats

import (
	"github.com/davemolk/countryguessr/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// RecordInput contains parameters for recording a session result
type RecordInput struct {
	// PlayerID is the Discord user ID of the participant
	PlayerID string

	// Kind is the game the score was earned in
	Kind models.GameKind

	// Score is the score increment for this session
	Score int
}

// GetPlayerStatsInput contains parameters for reading a player's counters
type GetPlayerStatsInput struct {
	// PlayerID is the Discord user ID of the participant
	PlayerID string

	// Kind is the game to read counters for
	Kind models.GameKind
}
