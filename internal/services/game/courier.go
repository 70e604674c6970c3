package game

import (
	"context"

	"github.com/davemolk/countryguessr/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_courier.go github.com/davemolk/countryguessr/internal/services/game Courier

// Courier is the chat-platform boundary the round loop talks through. The
// Discord handler implements it; tests substitute a mock.
type Courier interface {
	// SendPrompt shows the round's flag in the session channel
	SendPrompt(ctx context.Context, input *SendPromptInput) error

	// SendRoundResult announces how a round resolved
	SendRoundResult(ctx context.Context, input *SendRoundResultInput) error

	// SendScoreboard announces the final standings when a session ends
	SendScoreboard(ctx context.Context, input *SendScoreboardInput) error

	// Subscribe opens a buffered inbox for the channel. Messages arriving
	// while no NextMessage call is outstanding are held, not dropped, so the
	// round loop sees every message in arrival order.
	Subscribe(channelID string)

	// Unsubscribe discards the channel's inbox
	Unsubscribe(channelID string)

	// NextMessage blocks until the next user message arrives in the channel's
	// inbox or ctx is done. The channel must be subscribed.
	NextMessage(ctx context.Context, channelID string) (*IncomingMessage, error)
}

// IncomingMessage is one user message seen in a session's channel
type IncomingMessage struct {
	// AuthorID is the Discord user ID of the sender
	AuthorID string

	// AuthorName is the display name of the sender
	AuthorName string

	// Content is the raw message text
	Content string
}

// SendPromptInput contains parameters for showing a round prompt
type SendPromptInput struct {
	// ChannelID is the session's channel
	ChannelID string

	// SessionID identifies the session the prompt belongs to
	SessionID string

	// Round is the 1-based round number
	Round int

	// Rounds is the total number of rounds
	Rounds int

	// Country is the round's candidate; only the flag is shown
	Country models.Country
}

// SendRoundResultInput contains parameters for announcing a round result
type SendRoundResultInput struct {
	// ChannelID is the session's channel
	ChannelID string

	// Outcome is how the round resolved
	Outcome models.RoundOutcome

	// Message is the narrator line to show
	Message string

	// Country is the round's candidate, revealed in the announcement
	Country models.Country
}

// SendScoreboardInput contains parameters for announcing final standings
type SendScoreboardInput struct {
	// ChannelID is the session's channel
	ChannelID string

	// SessionID identifies the finished session
	SessionID string

	// Reason is why the session ended
	Reason models.EndReason

	// Message is the narrator farewell line
	Message string

	// Reveal is the unanswered country when the session timed out, nil otherwise
	Reveal *models.Country

	// Entries is the final scoreboard, highest score first
	Entries []models.ScoreEntry
}
