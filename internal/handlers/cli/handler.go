// Package cli runs game actions for a terminal table and prints the board.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/KirkDiggler/bank/internal/services/messaging"
)

// ErrUnknownPlayer is returned when a name matches no player at the table
var ErrUnknownPlayer = errors.New("no player with that name in this game")

// Config holds the dependencies of the CLI handler
type Config struct {
	GameService      game.Service
	MessagingService messaging.Service

	// Out receives rendered output
	Out io.Writer
}

// Handler runs actions against one table
type Handler struct {
	gameService      game.Service
	messagingService messaging.Service
	out              io.Writer
}

// New creates a new CLI handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Out == nil {
		return nil, errors.New("output cannot be nil")
	}

	return &Handler{
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		out:              cfg.Out,
	}, nil
}

// StartInput contains parameters for starting a game from the terminal
type StartInput struct {
	TableID     string
	PlayerNames []string
	TotalRounds int
	Settings    *models.Settings
	Replace     bool
}

// Start begins a new game, reusing the saved roster when no names are given
func (h *Handler) Start(ctx context.Context, input *StartInput) error {
	names := input.PlayerNames
	if len(names) == 0 {
		roster, err := h.gameService.GetRoster(ctx, &game.GetRosterInput{TableID: input.TableID})
		if err != nil {
			return err
		}
		names = roster.PlayerNames
	}

	// Accept both "Alice Bob" and "Alice,Bob"
	var split []string
	for _, n := range names {
		split = append(split, strings.Split(n, ",")...)
	}

	out, err := h.gameService.StartGame(ctx, &game.StartGameInput{
		TableID:     input.TableID,
		PlayerNames: split,
		TotalRounds: input.TotalRounds,
		Settings:    input.Settings,
		Replace:     input.Replace,
	})
	if err != nil {
		return err
	}

	starter := out.State.Game.CurrentPlayer()
	h.println(RenderMessage("New game!", fmt.Sprintf("%s rolls first.", starter.Name)))
	h.println(RenderBoard(out.State))
	return nil
}

// Roll applies a roll entered as a sum
func (h *Handler) Roll(ctx context.Context, tableID string, sum int, doubles bool) error {
	out, err := h.gameService.RollSum(ctx, &game.RollSumInput{
		TableID:   tableID,
		Sum:       sum,
		IsDoubles: doubles,
	})
	if err != nil {
		return err
	}
	return h.printRoll(ctx, out)
}

// Dice applies a roll entered as two dice
func (h *Handler) Dice(ctx context.Context, tableID string, die1, die2 int) error {
	out, err := h.gameService.RollDice(ctx, &game.RollDiceInput{
		TableID: tableID,
		Die1:    die1,
		Die2:    die2,
	})
	if err != nil {
		return err
	}
	return h.printRoll(ctx, out)
}

// Random rolls the dice for the current player
func (h *Handler) Random(ctx context.Context, tableID string) error {
	out, err := h.gameService.RollRandom(ctx, &game.RollRandomInput{TableID: tableID})
	if err != nil {
		return err
	}
	return h.printRoll(ctx, out)
}

func (h *Handler) printRoll(ctx context.Context, out *game.RollDiceOutput) error {
	msg, err := h.messagingService.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		PlayerName:   out.RollerName,
		Roll:         out.Roll,
		PreviousPot:  out.PreviousPot,
		NewPot:       out.State.Game.BankTotal,
		Doubled:      out.Doubled,
		BonusApplied: out.BonusApplied,
		SevenRolled:  out.SevenRolled,
	})
	if err != nil {
		return err
	}

	h.println(fmt.Sprintf("%d + %d = %d", out.Roll.Die1, out.Roll.Die2, out.Roll.Sum))
	h.println(RenderMessage(msg.Title, msg.Message))

	if out.RoundEnded {
		g := out.State.Game
		end, err := h.messagingService.GetRoundEndMessage(ctx, &messaging.GetRoundEndMessageInput{
			Reason:      g.RoundEndReason,
			PlayerName:  out.RollerName,
			LostPot:     out.PreviousPot,
			Round:       g.CurrentRound,
			TotalRounds: g.TotalRounds,
		})
		if err != nil {
			return err
		}
		h.println(RenderMessage(end.Title, end.Message))
	}

	h.println(RenderBoard(out.State))
	return nil
}

// Bank banks the pot for the named player
func (h *Handler) Bank(ctx context.Context, tableID, name string) error {
	status, err := h.gameService.GetStatus(ctx, &game.GetStatusInput{TableID: tableID})
	if err != nil {
		return err
	}

	playerID := ""
	for _, p := range status.State.Game.Players {
		if p.ID == name || strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			playerID = p.ID
			break
		}
	}
	if playerID == "" {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}

	out, err := h.gameService.Bank(ctx, &game.BankInput{
		TableID:  tableID,
		PlayerID: playerID,
	})
	if err != nil {
		return err
	}

	remaining := 0
	total := 0
	for _, p := range out.State.Game.Players {
		if !p.BankedThisRound {
			remaining++
		}
		if p.ID == playerID {
			total = p.TotalScore
		}
	}

	msg, err := h.messagingService.GetBankMessage(ctx, &messaging.GetBankMessageInput{
		PlayerName:       out.PlayerName,
		Amount:           out.Amount,
		TotalScore:       total,
		RemainingPlayers: remaining,
	})
	if err != nil {
		return err
	}

	h.println(RenderMessage(msg.Title, msg.Message))
	h.println(RenderBoard(out.State))
	return nil
}

// Next advances past an ended round
func (h *Handler) Next(ctx context.Context, tableID string) error {
	out, err := h.gameService.NextRound(ctx, &game.NextRoundInput{TableID: tableID})
	if err != nil {
		return err
	}

	if out.GameEnded {
		msg, err := h.messagingService.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
			Leaderboard: out.State.Leaderboard,
		})
		if err != nil {
			return err
		}
		h.println(RenderMessage(msg.Title, msg.Message))
	} else {
		h.println(RenderMessage(fmt.Sprintf("Round %d", out.State.Game.CurrentRound),
			fmt.Sprintf("%s rolls first.", out.State.Game.CurrentPlayer().Name)))
	}

	h.println(RenderBoard(out.State))
	return nil
}

// Status prints the board
func (h *Handler) Status(ctx context.Context, tableID string) error {
	out, err := h.gameService.GetStatus(ctx, &game.GetStatusInput{TableID: tableID})
	if err != nil {
		return err
	}

	h.println(RenderBoard(out.State))
	return nil
}

// Undo restores the snapshot before the last action
func (h *Handler) Undo(ctx context.Context, tableID string) error {
	out, err := h.gameService.Undo(ctx, &game.UndoInput{TableID: tableID})
	if err != nil {
		return err
	}

	h.println(RenderMessage("Undone.", "The last action was taken back."))
	h.println(RenderBoard(out.State))
	return nil
}

// Reset discards the game at the table
func (h *Handler) Reset(ctx context.Context, tableID string) error {
	if _, err := h.gameService.ResetGame(ctx, &game.ResetGameInput{TableID: tableID}); err != nil {
		return err
	}

	h.println(RenderMessage("Reset.", "The game was discarded."))
	return nil
}

// Games lists every table with a game in progress
func (h *Handler) Games(ctx context.Context) error {
	out, err := h.gameService.ListActiveGames(ctx, &game.ListActiveGamesInput{})
	if err != nil {
		return err
	}

	h.println(RenderActiveGames(out.Games))
	return nil
}

// Roster prints the player names last used at the table
func (h *Handler) Roster(ctx context.Context, tableID string) error {
	out, err := h.gameService.GetRoster(ctx, &game.GetRosterInput{TableID: tableID})
	if err != nil {
		return err
	}

	if len(out.PlayerNames) == 0 {
		h.println(InfoStyle.Render("No saved roster."))
		return nil
	}

	h.println(strings.Join(out.PlayerNames, ", "))
	return nil
}

// PrintError renders an error the way players see it
func (h *Handler) PrintError(ctx context.Context, err error) {
	if errors.Is(err, ErrUnknownPlayer) {
		h.println(RenderError("Unknown Player", err.Error()))
		return
	}

	msg, msgErr := h.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		h.println(RenderError("Error", err.Error()))
		return
	}

	h.println(RenderError(msg.Title, msg.Message))
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}
