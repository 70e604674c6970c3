package models

import (
	"time"
)

// PlayerStats holds the persisted aggregate counters for one player and game kind
type PlayerStats struct {
	// PlayerID is the Discord user ID the counters belong to
	PlayerID string

	// Kind is the game the counters were accumulated in
	Kind GameKind

	// GamesPlayed counts sessions the player scored in
	GamesPlayed int64

	// TotalScore is the cumulative score across all sessions
	TotalScore int64
}

// StatsEvent is the audit record written alongside every counter increment
type StatsEvent struct {
	// ID is the unique identifier for this event
	ID string `json:"id"`

	// PlayerID is the player whose counters were incremented
	PlayerID string `json:"player_id"`

	// Kind is the game the increment came from
	Kind GameKind `json:"kind"`

	// Score is the score increment applied
	Score int `json:"score"`

	// Timestamp is when the session ended
	Timestamp time.Time `json:"timestamp"`
}
