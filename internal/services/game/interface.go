package game

import "context"

// Service is the interface for the game service
type Service interface {
	// CreateSession creates a pending session awaiting configuration
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// Configure changes one setting of a pending session
	Configure(ctx context.Context, input *ConfigureInput) (*ConfigureOutput, error)

	// StartSession registers a pending session and starts its round loop
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// CancelSession discards a pending session without registering it
	CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error)

	// QuitSession lets the gamemaster end a running session early
	QuitSession(ctx context.Context, input *QuitSessionInput) (*QuitSessionOutput, error)

	// DeleteSession force-removes a session by identifier (moderation)
	DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// GetSession returns a snapshot of a session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions returns snapshots of all active sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// GetPlayerStats reads a player's persisted counters
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error)
}
