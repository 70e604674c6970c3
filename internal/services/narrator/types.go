package narrator

import (
	"github.com/davemolk/countryguessr/internal/models"
)

// ServiceConfig holds configuration for the narrator service
type ServiceConfig struct {
	// Optional seed for testing
	Seed int64
}

// GetRoundResultMessageInput contains parameters for a round result line
type GetRoundResultMessageInput struct {
	// Outcome is how the round resolved
	Outcome models.RoundOutcome

	// WinnerName is the display name of the winner, when there is one
	WinnerName string

	// CountryName is the primary name of the round's country
	CountryName string

	// Accuracy is the winner's match ratio in [0, 1]
	Accuracy float64
}

// GetRoundResultMessageOutput contains the selected line
type GetRoundResultMessageOutput struct {
	Message string
}

// GetFarewellMessageInput contains parameters for an end-of-session line
type GetFarewellMessageInput struct {
	// Reason is why the session ended
	Reason models.EndReason
}

// GetFarewellMessageOutput contains the selected line
type GetFarewellMessageOutput struct {
	Message string
}
