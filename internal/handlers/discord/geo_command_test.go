package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoCommand_RegisteredGuildOnly(t *testing.T) {
	cmd := NewGeoCommand(nil, nil)

	def := cmd.GetCommand()
	require.NotNil(t, def.DMPermission)
	assert.False(t, *def.DMPermission, "the geo command must be disabled in DMs")
}

func TestGeoCommand_Handle_NoMember(t *testing.T) {
	cmd := NewGeoCommand(nil, nil)

	// a DM interaction carries User instead of Member
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "geo",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "start", Type: discordgo.ApplicationCommandOptionSubCommand},
				},
			},
			User: &discordgo.User{ID: "dm-user"},
		},
	}

	err := cmd.Handle(nil, i)
	assert.Error(t, err, "a memberless interaction must be rejected, not panic")
}

func TestGeoCommand_HandleComponent_NoMember(t *testing.T) {
	cmd := NewGeoCommand(nil, nil)

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: "geo:play:abc123",
			},
			User: &discordgo.User{ID: "dm-user"},
		},
	}

	err := cmd.HandleComponent(nil, i)
	assert.Error(t, err, "a memberless component click must be rejected, not panic")
}
