package stats

import (
	"context"

	"github.com/davemolk/countryguessr/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/davemolk/countryguessr/internal/repositories/stats Repository

// Repository defines persistence operations for per-player game statistics
type Repository interface {
	// Record increments the play count and cumulative score for a player.
	// Callers invoke it exactly once per (session, participant) pair.
	Record(ctx context.Context, input *RecordInput) error

	// GetPlayerStats returns the accumulated counters for a player and kind
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error)
}
