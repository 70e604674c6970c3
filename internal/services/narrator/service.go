package narrator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/davemolk/countryguessr/internal/models"
)

// service implements the Service interface. Round loops of concurrent
// sessions share one narrator, so the generator sits behind a mutex.
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// pick returns one of the candidate lines
func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// NewService creates a new narrator service
func NewService(config *ServiceConfig) (Service, error) {
	var seed int64
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetRoundResultMessage returns a line announcing how a round resolved
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	var messages []string

	switch input.Outcome {
	case models.RoundOutcomeAnswered:
		percent := int(input.Accuracy * 100)
		messages = []string{
			fmt.Sprintf("%s got it! It was **%s** (%d%% match). 🎉", input.WinnerName, input.CountryName, percent),
			fmt.Sprintf("**%s**, nailed by %s with a %d%% match!", input.CountryName, input.WinnerName, percent),
			fmt.Sprintf("Geography degree confirmed: %s recognized **%s** (%d%%).", input.WinnerName, input.CountryName, percent),
		}
	case models.RoundOutcomeSkipped:
		messages = []string{
			fmt.Sprintf("Skipped! That was **%s**. Better luck with the next flag.", input.CountryName),
			fmt.Sprintf("The gamemaster took mercy. It was **%s**.", input.CountryName),
			fmt.Sprintf("Moving on! The answer was **%s**.", input.CountryName),
		}
	default:
		messages = []string{
			fmt.Sprintf("The answer was **%s**.", input.CountryName),
		}
	}

	return &GetRoundResultMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetFarewellMessage returns a line announcing why a session ended
func (s *service) GetFarewellMessage(ctx context.Context, input *GetFarewellMessageInput) (*GetFarewellMessageOutput, error) {
	var messages []string

	switch input.Reason {
	case models.EndReasonCompleted:
		messages = []string{
			"That's the last flag! Final standings below. 🏁",
			"All rounds played. Well travelled, everyone!",
			"The atlas is closed. Here's how it ended:",
		}
	case models.EndReasonQuit:
		messages = []string{
			"The gamemaster called it a day. Final standings below.",
			"Session ended early by the gamemaster.",
		}
	case models.EndReasonTimeout:
		messages = []string{
			"Everyone fell asleep at the map. Session timed out.",
			"No answers in time. The game ends here.",
		}
	case models.EndReasonRemoved:
		messages = []string{
			"This session was removed by a moderator.",
		}
	default:
		messages = []string{
			"Something went wrong and the session had to stop. Scores so far:",
		}
	}

	return &GetFarewellMessageOutput{
		Message: s.pick(messages),
	}, nil
}
