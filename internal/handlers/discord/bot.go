package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/davemolk/countryguessr/internal/services/game"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	geoCommand  *GeoCommand
	courier     *Courier
	gameService game.Service
	config      *Config
	logger      *logrus.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Optional logger; the logrus standard logger is used when nil
	Logger *logrus.Logger
}

// New creates a new Discord bot. The game service is attached afterwards with
// SetGameService, once it has been built around this bot's Courier.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// guesses arrive as plain channel messages, so the bot needs message
	// content on top of the interaction events
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	courier, err := NewCourier(session)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		courier:    courier,
		config:     cfg,
		logger:     logger,
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Courier returns the courier backed by this bot's Discord session. Hand it
// to the game service so round traffic flows through the same connection.
func (b *Bot) Courier() *Courier {
	return b.courier
}

// SetGameService attaches the game service. Must be called before Start.
func (b *Bot) SetGameService(svc game.Service) {
	b.gameService = svc
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if b.gameService == nil {
		return errors.New("game service must be set before starting")
	}

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	b.geoCommand = NewGeoCommand(b.gameService, b.logger)
	if err := b.RegisterCommand(b.geoCommand); err != nil {
		return fmt.Errorf("failed to register geo command: %w", err)
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.WithError(err).WithField("command", cmdName).Warn("failed to delete command")
		} else {
			b.logger.WithField("command", cmdName).Info("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		b.logger.WithFields(logrus.Fields{"command": cmd.GetName(), "guild": guildID}).Info("registering guild command")
	} else {
		b.logger.WithField("command", cmd.GetName()).Info("registering global command")
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.WithError(err).WithField("command", i.ApplicationCommandData().Name).Error("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.WithError(err).Error("error handling component interaction")
		}
	}
}

// handleComponentInteraction routes button clicks and menu selections
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	if strings.HasPrefix(customID, componentPrefix+":") && b.geoCommand != nil {
		return b.geoCommand.HandleComponent(s, i)
	}

	return RespondWithError(s, i, fmt.Sprintf("Unknown component: %s", customID))
}

// handleMessageCreate feeds channel messages to whichever round loop is
// listening on that channel
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	name := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}

	b.courier.Dispatch(m.ChannelID, &game.IncomingMessage{
		AuthorID:   m.Author.ID,
		AuthorName: name,
		Content:    m.Content,
	})
}
