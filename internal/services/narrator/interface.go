package narrator

import "context"

// Service picks the flavor text the bot speaks during a game
type Service interface {
	// GetRoundResultMessage returns a line announcing how a round resolved
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetFarewellMessage returns a line announcing why a session ended
	GetFarewellMessage(ctx context.Context, input *GetFarewellMessageInput) (*GetFarewellMessageOutput, error)
}
