package discord

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/KirkDiggler/bank/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	components []ComponentHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *log.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	GameService      game.Service
	MessagingService messaging.Service

	// Logger defaults to log.Default()
	Logger *log.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.WithPrefix("bot"),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	bankCmd, err := NewBankCommand(&BankCommandConfig{
		GameService:      b.config.GameService,
		MessagingService: b.config.MessagingService,
		Logger:           b.config.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create bank command: %w", err)
	}

	if err := b.RegisterCommand(bankCmd); err != nil {
		return fmt.Errorf("failed to register bank command: %w", err)
	}

	b.logger.Info("bot is now running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "id", cmdID, "err", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "id", cmdID)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. If a guild ID is
// configured the command is registered for that guild only.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.logger.Info("registering command for guild", "command", cmd.GetName(), "guild", guildID)
	} else {
		b.logger.Info("registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	if ch, ok := cmd.(ComponentHandler); ok {
		b.components = append(b.components, ch)
	}

	b.logger.Info("registered command", "command", cmd.GetName(), "id", createdCmd.ID)
	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "err", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction", "err", err)
		}
	}
}

// handleComponentInteraction routes a button click to the command that owns it
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	for _, h := range b.components {
		if h.HandlesComponent(customID) {
			return h.HandleComponent(s, i)
		}
	}

	return RespondWithError(s, i, "Unknown Button", fmt.Sprintf("Unknown button: %s", customID))
}
