package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/common/clock"
	"github.com/davemolk/countryguessr/internal/common/token"
	"github.com/davemolk/countryguessr/internal/countries"
	"github.com/davemolk/countryguessr/internal/metrics"
	"github.com/davemolk/countryguessr/internal/models"
	"github.com/davemolk/countryguessr/internal/registry"
	statsRepo "github.com/davemolk/countryguessr/internal/repositories/stats"
	"github.com/davemolk/countryguessr/internal/services/narrator"
)

const (
	// DefaultResponseTimeout is how long a round waits for a qualifying answer
	DefaultResponseTimeout = 120 * time.Second

	// DefaultRoundDelay is the pause between a round result and the next prompt
	DefaultRoundDelay = 10 * time.Second

	// DefaultRounds is the round count before the gamemaster configures one
	DefaultRounds = 5
)

// Setting names accepted by Configure
const (
	SettingRegion = "region"
	SettingRounds = "rounds"
)

// RoundChoices lists every legal rounds setting value
var RoundChoices = []int{5, 10, 15, 20}

// Config holds configuration for the game service
type Config struct {
	// Registry tracks active sessions
	Registry *registry.Registry

	// StatsRepo persists per-player aggregate counters
	StatsRepo statsRepo.Repository

	// Picker draws candidate pools from the country dataset
	Picker *countries.Picker

	// Courier is the chat-platform boundary
	Courier Courier

	// Narrator picks the flavor lines spoken during a game
	Narrator narrator.Service

	// Clock provides timestamps
	Clock clock.Clock

	// TokenGenerator produces session identifiers
	TokenGenerator token.Generator

	// Metrics is optional; counters are skipped when nil
	Metrics *metrics.Set

	// Logger is optional; the logrus standard logger is used when nil
	Logger *logrus.Logger

	// ResponseTimeout overrides DefaultResponseTimeout when nonzero
	ResponseTimeout time.Duration

	// RoundDelay overrides DefaultRoundDelay when nonzero
	RoundDelay time.Duration
}

// SessionConfig is the typed per-session configuration chosen in the menu
type SessionConfig struct {
	// Region filters the candidate pool (countries.RegionGlobal for no filter)
	Region string

	// Rounds is the number of rounds to play
	Rounds int

	// ResponseTimeout is how long each round waits for an answer
	ResponseTimeout time.Duration

	// RoundDelay is the pause between rounds
	RoundDelay time.Duration
}

// SessionInfo is a read-only snapshot of a session for display
type SessionInfo struct {
	ID             string
	Kind           models.GameKind
	GuildID        string
	ChannelID      string
	GamemasterID   string
	GamemasterName string
	State          string
	Round          int
	Config         SessionConfig
	Scores         []models.ScoreEntry
}

// CreateSessionInput contains parameters for creating a pending session
type CreateSessionInput struct {
	// GuildID is the Discord guild the session is scoped to
	GuildID string

	// ChannelID is the channel rounds will be played in
	ChannelID string

	// GamemasterID is the Discord user ID of the session owner
	GamemasterID string

	// GamemasterName is the display name of the session owner
	GamemasterName string
}

// CreateSessionOutput contains the result of creating a pending session
type CreateSessionOutput struct {
	// SessionID is the short identifier for the new session
	SessionID string

	// Config is the session's default configuration
	Config SessionConfig
}

// ConfigureInput contains parameters for changing a pending session's setting
type ConfigureInput struct {
	SessionID string
	ActorID   string

	// Setting is the name of the setting to change (region, rounds)
	Setting string

	// Value is the requested value, as the user supplied it
	Value string
}

// ConfigureOutput contains the result of a configuration change
type ConfigureOutput struct {
	Config SessionConfig
}

// StartSessionInput contains parameters for starting a configured session
type StartSessionInput struct {
	SessionID string
	ActorID   string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// ExistingSessionID is set when start failed with ErrDuplicateSession
	ExistingSessionID string
}

// CancelSessionInput contains parameters for discarding a pending session
type CancelSessionInput struct {
	SessionID string
	ActorID   string
}

// CancelSessionOutput contains the result of a cancellation
type CancelSessionOutput struct{}

// QuitSessionInput contains parameters for the gamemaster ending a running session
type QuitSessionInput struct {
	SessionID string
	ActorID   string
}

// QuitSessionOutput contains the result of a quit
type QuitSessionOutput struct{}

// DeleteSessionInput contains parameters for a moderator removing a session
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionOutput contains the result of a deletion
type DeleteSessionOutput struct{}

// GetSessionInput contains parameters for inspecting a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the session snapshot
type GetSessionOutput struct {
	Session *SessionInfo
}

// ListSessionsInput contains parameters for listing active sessions
type ListSessionsInput struct {
	// GuildID restricts the listing to one guild when nonempty
	GuildID string
}

// ListSessionsOutput contains the active session snapshots
type ListSessionsOutput struct {
	Sessions []*SessionInfo
}

// GetPlayerStatsInput contains parameters for reading persisted counters
type GetPlayerStatsInput struct {
	PlayerID string
}

// GetPlayerStatsOutput contains the persisted counters
type GetPlayerStatsOutput struct {
	Stats *models.PlayerStats
}
