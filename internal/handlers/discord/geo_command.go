package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/countries"
	"github.com/davemolk/countryguessr/internal/services/game"
)

// Component custom ID pieces. Components carry "geo:<action>:<sessionID>" so
// the handler can route a click back to its session.
const (
	componentPrefix = "geo"

	actionRegion = "region"
	actionRounds = "rounds"
	actionPlay   = "play"
	actionCancel = "cancel"
	actionQuit   = "quit"
)

// GeoCommand handles the /geo command
type GeoCommand struct {
	BaseCommand
	gameService game.Service
	logger      *logrus.Logger
}

// NewGeoCommand creates a new geo command handler
func NewGeoCommand(gameService game.Service, logger *logrus.Logger) *GeoCommand {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &GeoCommand{
		BaseCommand: BaseCommand{
			Name:        "geo",
			Description: "Flag guessing game commands",
			GuildOnly:   true,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Set up a new game in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Remove a game session by ID (moderators)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "session",
							Description: "The session ID to remove",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the games running in this server",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show a player's all-time results",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "player",
							Description: "The player to look up (defaults to you)",
							Required:    false,
						},
					},
				},
			},
		},
		gameService: gameService,
		logger:      logger,
	}
}

// Handle processes a Discord interaction for the geo command
func (c *GeoCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	// the command is registered guild-only, so a missing member means a stale
	// DM-registered copy of the command
	if i.Member == nil || i.Member.User == nil {
		return errors.New("geo command invoked outside a guild")
	}

	userID := i.Member.User.ID
	username := i.Member.User.Username
	if i.Member.Nick != "" {
		username = i.Member.Nick
	}

	switch data.Options[0].Name {
	case "start":
		return c.handleStart(s, i, userID, username)
	case "delete":
		return c.handleDelete(s, i, data.Options[0])
	case "list":
		return c.handleList(s, i)
	case "stats":
		return c.handleStats(s, i, data.Options[0], userID, username)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart creates a pending session and shows its configuration menu
func (c *GeoCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, userID, username string) error {
	ctx := context.Background()

	out, err := c.gameService.CreateSession(ctx, &game.CreateSessionInput{
		GuildID:        i.GuildID,
		ChannelID:      i.ChannelID,
		GamemasterID:   userID,
		GamemasterName: username,
	})
	if err != nil {
		c.logger.WithError(err).Error("failed to create session")
		return RespondWithError(s, i, "Failed to set up the game. Try again in a moment.")
	}

	embed, components := renderConfigMenu(out.SessionID, out.Config)

	// the menu is ephemeral so only the gamemaster drives the setup
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// handleDelete force-removes a session by ID
func (c *GeoCommand) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	if i.Member.Permissions&discordgo.PermissionManageServer == 0 {
		return RespondWithEphemeralMessage(s, i, "You need the Manage Server permission to remove game sessions.")
	}

	var sessionID string
	for _, opt := range sub.Options {
		if opt.Name == "session" {
			sessionID = opt.StringValue()
		}
	}
	if sessionID == "" {
		return RespondWithEphemeralMessage(s, i, "Please provide a session ID.")
	}

	_, err := c.gameService.DeleteSession(context.Background(), &game.DeleteSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, game.ErrSessionNotFound) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("No session with ID `%s` exists.", sessionID))
		}
		c.logger.WithError(err).WithField("session", sessionID).Error("failed to delete session")
		return RespondWithError(s, i, "Failed to remove the session.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Session `%s` has been removed.", sessionID))
}

// handleList shows the sessions running in the guild
func (c *GeoCommand) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.gameService.ListSessions(context.Background(), &game.ListSessionsInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		c.logger.WithError(err).Error("failed to list sessions")
		return RespondWithError(s, i, "Failed to list game sessions.")
	}

	if len(out.Sessions) == 0 {
		return RespondWithEphemeralMessage(s, i, "No games are running in this server. Use `/geo start` to set one up!")
	}

	var description strings.Builder
	for _, sess := range out.Sessions {
		description.WriteString(fmt.Sprintf("`%s` · <#%s> · round %d of %d · run by %s\n",
			sess.ID, sess.ChannelID, sess.Round, sess.Config.Rounds, sess.GamemasterName))
	}

	return RespondWithEmbed(s, i, "Active Games", description.String(), nil)
}

// handleStats shows a player's persisted counters
func (c *GeoCommand) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption, userID, username string) error {
	playerID := userID
	playerName := username
	for _, opt := range sub.Options {
		if opt.Name == "player" {
			target := opt.UserValue(s)
			if target != nil {
				playerID = target.ID
				playerName = target.Username
			}
		}
	}

	out, err := c.gameService.GetPlayerStats(context.Background(), &game.GetPlayerStatsInput{
		PlayerID: playerID,
	})
	if err != nil {
		c.logger.WithError(err).WithField("player", playerID).Error("failed to get player stats")
		return RespondWithError(s, i, "Failed to look up player stats.")
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Games Played",
			Value:  strconv.FormatInt(out.Stats.GamesPlayed, 10),
			Inline: true,
		},
		{
			Name:   "Total Score",
			Value:  strconv.FormatInt(out.Stats.TotalScore, 10),
			Inline: true,
		},
	}

	if out.Stats.GamesPlayed == 0 {
		return RespondWithEmbed(s, i, fmt.Sprintf("Stats for %s", playerName),
			"No games on record yet. Time to study the atlas!", fields)
	}

	average := float64(out.Stats.TotalScore) / float64(out.Stats.GamesPlayed)
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Average Score",
		Value:  fmt.Sprintf("%.1f", average),
		Inline: true,
	})

	return RespondWithEmbed(s, i, fmt.Sprintf("Stats for %s", playerName), "", fields)
}

// HandleComponent processes a click on one of the command's menus or buttons.
// The custom ID has already been validated to carry the geo prefix.
func (c *GeoCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	parts := strings.SplitN(i.MessageComponentData().CustomID, ":", 3)
	if len(parts) != 3 {
		return RespondWithError(s, i, "Unrecognized component.")
	}
	action, sessionID := parts[1], parts[2]

	if i.Member == nil || i.Member.User == nil {
		return errors.New("geo component interaction outside a guild")
	}

	userID := i.Member.User.ID
	ctx := context.Background()

	switch action {
	case actionRegion, actionRounds:
		values := i.MessageComponentData().Values
		if len(values) == 0 {
			return RespondWithEphemeralMessage(s, i, "Nothing selected.")
		}

		setting := game.SettingRegion
		if action == actionRounds {
			setting = game.SettingRounds
		}

		out, err := c.gameService.Configure(ctx, &game.ConfigureInput{
			SessionID: sessionID,
			ActorID:   userID,
			Setting:   setting,
			Value:     values[0],
		})
		if err != nil {
			return c.respondServiceError(s, i, err)
		}

		embed, components := renderConfigMenu(sessionID, out.Config)
		return UpdateWithEmbedAndComponents(s, i, embed, components)

	case actionPlay:
		out, err := c.gameService.StartSession(ctx, &game.StartSessionInput{
			SessionID: sessionID,
			ActorID:   userID,
		})
		if err != nil {
			if errors.Is(err, game.ErrDuplicateSession) {
				msg := "A game is already running in this server. Finish it before starting another."
				if out != nil && out.ExistingSessionID != "" {
					msg = fmt.Sprintf("A game is already running in this server (session `%s`). Finish it before starting another.", out.ExistingSessionID)
				}
				return RespondWithEphemeralMessage(s, i, msg)
			}
			if errors.Is(err, game.ErrNotEnoughCountries) {
				return RespondWithEphemeralMessage(s, i, "That region doesn't have enough countries for the chosen round count. Pick fewer rounds or a wider region.")
			}
			return c.respondServiceError(s, i, err)
		}

		// collapse the menu; the first prompt lands in the channel momentarily
		embed := &discordgo.MessageEmbed{
			Title:       "Game On!",
			Description: "The first flag is on its way. Type `quit` or `skip` to steer the game.",
			Color:       colorGreen,
		}
		return UpdateWithEmbedAndComponents(s, i, embed, []discordgo.MessageComponent{})

	case actionCancel:
		_, err := c.gameService.CancelSession(ctx, &game.CancelSessionInput{
			SessionID: sessionID,
			ActorID:   userID,
		})
		if err != nil {
			return c.respondServiceError(s, i, err)
		}

		embed := &discordgo.MessageEmbed{
			Title:       "Setup Cancelled",
			Description: "No game was started.",
			Color:       colorRed,
		}
		return UpdateWithEmbedAndComponents(s, i, embed, []discordgo.MessageComponent{})

	case actionQuit:
		_, err := c.gameService.QuitSession(ctx, &game.QuitSessionInput{
			SessionID: sessionID,
			ActorID:   userID,
		})
		if err != nil {
			return c.respondServiceError(s, i, err)
		}
		return RespondWithEphemeralMessage(s, i, "Ending the game. Final standings coming up.")

	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown action: %s", action))
	}
}

// respondServiceError maps game service errors to user-facing notices
func (c *GeoCommand) respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	switch {
	case errors.Is(err, game.ErrNotAuthorized):
		return RespondWithEphemeralMessage(s, i, "Only the gamemaster can do that.")
	case errors.Is(err, game.ErrSessionNotFound):
		return RespondWithEphemeralMessage(s, i, "That game session no longer exists.")
	case errors.Is(err, game.ErrInvalidValue), errors.Is(err, game.ErrInvalidSetting):
		return RespondWithEphemeralMessage(s, i, "That setting isn't valid.")
	default:
		c.logger.WithError(err).Error("component interaction failed")
		return RespondWithError(s, i, "Something went wrong. Try again in a moment.")
	}
}

// renderConfigMenu builds the setup embed and its select menus and buttons
func renderConfigMenu(sessionID string, cfg game.SessionConfig) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "Game Setup",
		Description: "Pick a region and round count, then hit Play. Flags will appear in this channel.",
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Region",
				Value:  regionLabel(cfg.Region),
				Inline: true,
			},
			{
				Name:   "Rounds",
				Value:  strconv.Itoa(cfg.Rounds),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Session %s", sessionID),
		},
	}

	regionOptions := []discordgo.SelectMenuOption{
		{
			Label:   "Whole World",
			Value:   countries.RegionGlobal,
			Default: cfg.Region == countries.RegionGlobal,
			Emoji:   &discordgo.ComponentEmoji{Name: "🌍"},
		},
	}
	for _, region := range countries.Regions {
		if region == countries.RegionGlobal {
			continue
		}
		regionOptions = append(regionOptions, discordgo.SelectMenuOption{
			Label:   regionLabel(region),
			Value:   region,
			Default: cfg.Region == region,
		})
	}

	regionSelect := discordgo.SelectMenu{
		CustomID:    componentID(actionRegion, sessionID),
		Placeholder: "Region",
		Options:     regionOptions,
	}

	var roundsOptions []discordgo.SelectMenuOption
	for _, choice := range game.RoundChoices {
		roundsOptions = append(roundsOptions, discordgo.SelectMenuOption{
			Label:   fmt.Sprintf("%d rounds", choice),
			Value:   strconv.Itoa(choice),
			Default: cfg.Rounds == choice,
		})
	}

	roundsSelect := discordgo.SelectMenu{
		CustomID:    componentID(actionRounds, sessionID),
		Placeholder: "Rounds",
		Options:     roundsOptions,
	}

	playButton := discordgo.Button{
		Label:    "Play",
		Style:    discordgo.SuccessButton,
		CustomID: componentID(actionPlay, sessionID),
		Emoji:    &discordgo.ComponentEmoji{Name: "🚩"},
	}

	cancelButton := discordgo.Button{
		Label:    "Cancel",
		Style:    discordgo.DangerButton,
		CustomID: componentID(actionCancel, sessionID),
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{regionSelect}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{roundsSelect}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{playButton, cancelButton}},
	}

	return embed, components
}

func componentID(action, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", componentPrefix, action, sessionID)
}

func regionLabel(region string) string {
	switch region {
	case countries.RegionGlobal:
		return "Whole World"
	case "americas":
		return "The Americas"
	default:
		if region == "" {
			return region
		}
		return strings.ToUpper(region[:1]) + region[1:]
	}
}
