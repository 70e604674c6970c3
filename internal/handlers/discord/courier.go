package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/davemolk/countryguessr/internal/models"
	"github.com/davemolk/countryguessr/internal/services/game"
)

// inboxCapacity bounds how many messages a subscribed channel holds while the
// round loop is busy between NextMessage calls
const inboxCapacity = 32

// ErrNotSubscribed is returned by NextMessage for a channel with no open inbox
var ErrNotSubscribed = errors.New("channel has no open subscription")

// Courier delivers game traffic over a Discord session. Outbound calls are
// plain channel sends; inbound delivery works through per-channel buffered
// inboxes fed by the bot's MessageCreate handler. The inbox persists across
// NextMessage calls, so messages arriving while the round loop is scoring a
// guess or pausing between rounds are held in arrival order, not dropped.
type Courier struct {
	session *discordgo.Session

	mu      sync.Mutex
	inboxes map[string]chan *game.IncomingMessage
}

// NewCourier creates a courier bound to a Discord session
func NewCourier(session *discordgo.Session) (*Courier, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &Courier{
		session: session,
		inboxes: make(map[string]chan *game.IncomingMessage),
	}, nil
}

// SendPrompt shows the round's flag in the session channel
func (c *Courier) SendPrompt(ctx context.Context, input *game.SendPromptInput) error {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Round %d of %d", input.Round, input.Rounds),
		Description: "Which country does this flag belong to? First correct answer wins the round!",
		Color:       colorBlue,
		Image: &discordgo.MessageEmbedImage{
			URL: input.Country.FlagURL,
		},
	}

	quitButton := discordgo.Button{
		Label:    "End Game",
		Style:    discordgo.DangerButton,
		CustomID: componentID(actionQuit, input.SessionID),
	}

	_, err := c.session.ChannelMessageSendComplex(input.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{quitButton},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send round prompt: %w", err)
	}
	return nil
}

// SendRoundResult announces how a round resolved
func (c *Courier) SendRoundResult(ctx context.Context, input *game.SendRoundResultInput) error {
	title := "Round Over"
	color := colorGreen
	if input.Outcome == models.RoundOutcomeSkipped {
		title = "Round Skipped"
		color = colorBlue
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: input.Message,
		Color:       color,
	}
	if input.Country.Capital != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{
				Name:   "Capital",
				Value:  input.Country.Capital,
				Inline: true,
			},
		}
	}

	_, err := c.session.ChannelMessageSendEmbed(input.ChannelID, embed)
	if err != nil {
		return fmt.Errorf("failed to send round result: %w", err)
	}
	return nil
}

// SendScoreboard announces the final standings when a session ends
func (c *Courier) SendScoreboard(ctx context.Context, input *game.SendScoreboardInput) error {
	var description strings.Builder

	if input.Message != "" {
		description.WriteString(input.Message)
		description.WriteString("\n\n")
	}

	if input.Reveal != nil {
		description.WriteString(fmt.Sprintf("The unanswered flag was **%s**.\n\n", input.Reveal.Name()))
	}

	if len(input.Entries) == 0 {
		description.WriteString("Nobody scored this time.")
	} else {
		rankEmojis := []string{"🥇", "🥈", "🥉"}
		for rank, entry := range input.Entries {
			emoji := "🏅"
			if rank < len(rankEmojis) {
				emoji = rankEmojis[rank]
			}
			description.WriteString(fmt.Sprintf("%s **%s**: %d points\n", emoji, entry.PlayerName, entry.Score))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Final Standings",
		Description: description.String(),
		Color:       colorGreen,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Session %s · %s", input.SessionID, endReasonLabel(input.Reason)),
		},
	}

	_, err := c.session.ChannelMessageSendEmbed(input.ChannelID, embed)
	if err != nil {
		return fmt.Errorf("failed to send scoreboard: %w", err)
	}
	return nil
}

// Subscribe opens the channel's inbox. Subscribing an already subscribed
// channel keeps the existing inbox and its held messages.
func (c *Courier) Subscribe(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inboxes[channelID]; !ok {
		c.inboxes[channelID] = make(chan *game.IncomingMessage, inboxCapacity)
	}
}

// Unsubscribe discards the channel's inbox and anything still held in it
func (c *Courier) Unsubscribe(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inboxes, channelID)
}

// NextMessage blocks until a message is available in the channel's inbox or
// ctx is done
func (c *Courier) NextMessage(ctx context.Context, channelID string) (*game.IncomingMessage, error) {
	c.mu.Lock()
	ch, ok := c.inboxes[channelID]
	c.mu.Unlock()

	if !ok {
		return nil, ErrNotSubscribed
	}

	select {
	case msg := <-ch:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Dispatch appends an inbound channel message to the channel's inbox, if one
// is open. Messages for unsubscribed channels are dropped; a full inbox also
// drops, which only happens if a session is flooded faster than its round
// loop can read.
func (c *Courier) Dispatch(channelID string, msg *game.IncomingMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.inboxes[channelID]
	if !ok {
		return
	}

	select {
	case ch <- msg:
	default:
	}
}

func endReasonLabel(reason models.EndReason) string {
	switch reason {
	case models.EndReasonCompleted:
		return "all rounds played"
	case models.EndReasonQuit:
		return "ended by the gamemaster"
	case models.EndReasonTimeout:
		return "timed out"
	case models.EndReasonRemoved:
		return "removed by a moderator"
	default:
		return "ended unexpectedly"
	}
}
