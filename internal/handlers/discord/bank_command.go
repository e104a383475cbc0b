package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/KirkDiggler/bank/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Button IDs
const (
	ButtonBankPrefix = "bank:"
	ButtonRollDice   = "roll_dice"
	ButtonNextRound  = "next_round"
	ButtonUndo       = "undo"
)

// BankCommand handles the /bank command and the buttons on its game message
type BankCommand struct {
	BaseCommand
	gameService      game.Service
	messagingService messaging.Service
	logger           *log.Logger
}

// BankCommandConfig holds the dependencies of the /bank command
type BankCommandConfig struct {
	GameService      game.Service
	MessagingService messaging.Service
	Logger           *log.Logger
}

func floatPtr(v float64) *float64 {
	return &v
}

// NewBankCommand creates a new bank command handler
func NewBankCommand(cfg *BankCommandConfig) (*BankCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
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

	return &BankCommand{
		BaseCommand: BaseCommand{
			Name:        "bank",
			Description: "Bank dice game commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new game at this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "players",
							Description: "Comma separated player names in turn order (defaults to the last roster)",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "rounds",
							Description: "Number of rounds",
							MinValue:    floatPtr(1),
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "seven_rule",
							Description: "Sevens on the first three rolls add 70 instead of ending the round",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "replace",
							Description: "Replace a game still in progress",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Enter a roll as a sum",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "sum",
							Description: "Sum of both dice",
							Required:    true,
							MinValue:    floatPtr(2),
							MaxValue:    12,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "doubles",
							Description: "Both dice showed the same face",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "dice",
					Description: "Enter a roll as two dice",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "die1",
							Description: "First die",
							Required:    true,
							MinValue:    floatPtr(1),
							MaxValue:    6,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "die2",
							Description: "Second die",
							Required:    true,
							MinValue:    floatPtr(1),
							MaxValue:    6,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "random",
					Description: "Roll the dice for the current player",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bank",
					Description: "Bank the pot for a player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "player",
							Description: "Player name",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "next",
					Description: "Start the next round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the game at this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Undo the last roll, bank or round change",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Discard the game at this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "games",
					Description: "List every channel with a game in progress",
				},
			},
		},
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		logger:           logger.WithPrefix("discord"),
	}, nil
}

// Handle processes a Discord interaction for the bank command
func (c *BankCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()

	resp, err := c.handleSubcommand(ctx, i.ChannelID, data.Options[0])
	if err != nil {
		return RespondWithData(s, i, c.errorResponse(ctx, err, interactionUserName(i)))
	}

	return RespondWithData(s, i, resp)
}

// HandlesComponent reports whether the custom ID is one of the game message buttons
func (c *BankCommand) HandlesComponent(customID string) bool {
	switch customID {
	case ButtonRollDice, ButtonNextRound, ButtonUndo:
		return true
	}
	return strings.HasPrefix(customID, ButtonBankPrefix)
}

// HandleComponent processes a click on a game message button
func (c *BankCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	resp, err := c.handleButton(ctx, i.ChannelID, i.MessageComponentData().CustomID)
	if err != nil {
		// Errors go to the clicker only, the game message stays as is
		return RespondWithData(s, i, c.errorResponse(ctx, err, interactionUserName(i)))
	}

	return UpdateWithData(s, i, resp)
}

func (c *BankCommand) handleSubcommand(ctx context.Context, tableID string, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "start":
		return c.handleStart(ctx, tableID, opts)
	case "roll":
		sum := int(opts["sum"].IntValue())
		doubles := false
		if o, ok := opts["doubles"]; ok {
			doubles = o.BoolValue()
		}
		out, err := c.gameService.RollSum(ctx, &game.RollSumInput{
			TableID:   tableID,
			Sum:       sum,
			IsDoubles: doubles,
		})
		if err != nil {
			return nil, err
		}
		return c.rollResponse(ctx, out)
	case "dice":
		out, err := c.gameService.RollDice(ctx, &game.RollDiceInput{
			TableID: tableID,
			Die1:    int(opts["die1"].IntValue()),
			Die2:    int(opts["die2"].IntValue()),
		})
		if err != nil {
			return nil, err
		}
		return c.rollResponse(ctx, out)
	case "random":
		return c.handleRandom(ctx, tableID)
	case "bank":
		return c.handleBankByName(ctx, tableID, opts["player"].StringValue())
	case "next":
		return c.handleNextRound(ctx, tableID)
	case "status":
		return c.handleStatus(ctx, tableID)
	case "undo":
		return c.handleUndo(ctx, tableID)
	case "reset":
		if _, err := c.gameService.ResetGame(ctx, &game.ResetGameInput{TableID: tableID}); err != nil {
			return nil, err
		}
		return &discordgo.InteractionResponseData{
			Content: "Game discarded. Use `/bank start` to play again.",
		}, nil
	case "games":
		out, err := c.gameService.ListActiveGames(ctx, &game.ListActiveGamesInput{})
		if err != nil {
			return nil, err
		}
		return renderActiveGames(out.Games), nil
	default:
		return nil, fmt.Errorf("unknown subcommand: %s", sub.Name)
	}
}

func (c *BankCommand) handleButton(ctx context.Context, tableID, customID string) (*discordgo.InteractionResponseData, error) {
	switch {
	case customID == ButtonRollDice:
		return c.handleRandom(ctx, tableID)
	case customID == ButtonNextRound:
		return c.handleNextRound(ctx, tableID)
	case customID == ButtonUndo:
		return c.handleUndo(ctx, tableID)
	case strings.HasPrefix(customID, ButtonBankPrefix):
		return c.handleBank(ctx, tableID, strings.TrimPrefix(customID, ButtonBankPrefix))
	default:
		return nil, fmt.Errorf("unknown button: %s", customID)
	}
}

func (c *BankCommand) handleStart(ctx context.Context, tableID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	input := &game.StartGameInput{
		TableID: tableID,
	}

	if o, ok := opts["players"]; ok {
		input.PlayerNames = strings.Split(o.StringValue(), ",")
	} else {
		roster, err := c.gameService.GetRoster(ctx, &game.GetRosterInput{TableID: tableID})
		if err != nil {
			return nil, err
		}
		input.PlayerNames = roster.PlayerNames
	}

	if o, ok := opts["rounds"]; ok {
		input.TotalRounds = int(o.IntValue())
	}

	if o, ok := opts["seven_rule"]; ok {
		input.Settings = &models.Settings{FirstThreeRollsSevenRule: o.BoolValue()}
	}

	if o, ok := opts["replace"]; ok {
		input.Replace = o.BoolValue()
	}

	out, err := c.gameService.StartGame(ctx, input)
	if err != nil {
		return nil, err
	}

	g := out.State.Game
	description := fmt.Sprintf("%d players, %d rounds. %s rolls first.", len(g.Players), g.TotalRounds, g.CurrentPlayer().Name)

	return renderGameState(out.State, "New Game of Bank", description), nil
}

func (c *BankCommand) handleRandom(ctx context.Context, tableID string) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.RollRandom(ctx, &game.RollRandomInput{TableID: tableID})
	if err != nil {
		return nil, err
	}
	return c.rollResponse(ctx, out)
}

func (c *BankCommand) rollResponse(ctx context.Context, out *game.RollDiceOutput) (*discordgo.InteractionResponseData, error) {
	msg, err := c.messagingService.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		PlayerName:   out.RollerName,
		Roll:         out.Roll,
		PreviousPot:  out.PreviousPot,
		NewPot:       out.State.Game.BankTotal,
		Doubled:      out.Doubled,
		BonusApplied: out.BonusApplied,
		SevenRolled:  out.SevenRolled,
	})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("🎲 %d + %d = **%d**\n%s", out.Roll.Die1, out.Roll.Die2, out.Roll.Sum, msg.Message)

	if out.RoundEnded {
		g := out.State.Game
		end, err := c.messagingService.GetRoundEndMessage(ctx, &messaging.GetRoundEndMessageInput{
			Reason:      g.RoundEndReason,
			PlayerName:  out.RollerName,
			LostPot:     out.PreviousPot,
			Round:       g.CurrentRound,
			TotalRounds: g.TotalRounds,
		})
		if err != nil {
			return nil, err
		}
		description += "\n\n**" + end.Title + "**\n" + end.Message
	}

	return renderGameState(out.State, msg.Title, description), nil
}

func (c *BankCommand) handleBankByName(ctx context.Context, tableID, name string) (*discordgo.InteractionResponseData, error) {
	status, err := c.gameService.GetStatus(ctx, &game.GetStatusInput{TableID: tableID})
	if err != nil {
		return nil, err
	}

	playerID, ok := findPlayer(status.State.Game, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errPlayerName, name)
	}

	return c.handleBank(ctx, tableID, playerID)
}

func (c *BankCommand) handleBank(ctx context.Context, tableID, playerID string) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.Bank(ctx, &game.BankInput{
		TableID:  tableID,
		PlayerID: playerID,
	})
	if err != nil {
		return nil, err
	}

	g := out.State.Game
	remaining := 0
	totalScore := 0
	for _, p := range g.Players {
		if !p.BankedThisRound {
			remaining++
		}
		if p.ID == playerID {
			totalScore = p.TotalScore
		}
	}

	msg, err := c.messagingService.GetBankMessage(ctx, &messaging.GetBankMessageInput{
		PlayerName:       out.PlayerName,
		Amount:           out.Amount,
		TotalScore:       totalScore,
		RemainingPlayers: remaining,
	})
	if err != nil {
		return nil, err
	}

	return renderGameState(out.State, msg.Title, msg.Message), nil
}

func (c *BankCommand) handleNextRound(ctx context.Context, tableID string) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.NextRound(ctx, &game.NextRoundInput{TableID: tableID})
	if err != nil {
		return nil, err
	}

	if out.GameEnded {
		msg, err := c.messagingService.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
			Leaderboard: out.State.Leaderboard,
		})
		if err != nil {
			return nil, err
		}
		return renderGameState(out.State, msg.Title, msg.Message), nil
	}

	g := out.State.Game
	title := fmt.Sprintf("Round %d", g.CurrentRound)
	description := fmt.Sprintf("%s rolls first.", g.CurrentPlayer().Name)

	return renderGameState(out.State, title, description), nil
}

func (c *BankCommand) handleStatus(ctx context.Context, tableID string) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.GetStatus(ctx, &game.GetStatusInput{TableID: tableID})
	if err != nil {
		return nil, err
	}

	msg, err := c.messagingService.GetGameStatusMessage(ctx, &messaging.GetGameStatusMessageInput{
		Game: out.State.Game,
	})
	if err != nil {
		return nil, err
	}

	return renderGameState(out.State, "Bank", msg.Message), nil
}

func (c *BankCommand) handleUndo(ctx context.Context, tableID string) (*discordgo.InteractionResponseData, error) {
	out, err := c.gameService.Undo(ctx, &game.UndoInput{TableID: tableID})
	if err != nil {
		return nil, err
	}

	return renderGameState(out.State, "Undone", "The last action was taken back."), nil
}

// errorResponse renders a service error as an ephemeral message. userName is
// whoever acted and is only logged; a bank rejection names its target itself.
func (c *BankCommand) errorResponse(ctx context.Context, err error, userName string) *discordgo.InteractionResponseData {
	if errors.Is(err, errPlayerName) {
		return renderError("Unknown Player", err.Error())
	}

	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		c.logger.Error("failed to get error message", "err", msgErr)
		return renderError("Error", err.Error())
	}

	c.logger.Debug("bank command rejected", "user", userName, "err", err)

	return renderError(msg.Title, msg.Message)
}

var errPlayerName = errors.New("no player with that name in this game")

// findPlayer matches a player by ID or by case-insensitive name
func findPlayer(g *models.Game, nameOrID string) (string, bool) {
	nameOrID = strings.TrimSpace(nameOrID)
	for _, p := range g.Players {
		if p.ID == nameOrID || strings.EqualFold(p.Name, nameOrID) {
			return p.ID, true
		}
	}
	return "", false
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, o := range options {
		m[o.Name] = o
	}
	return m
}
