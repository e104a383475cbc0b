package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/engine"
	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/services/game"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	r := (*rand.Rand)(nil)
	if cfg != nil {
		r = cfg.Rand
	}

	if r == nil {
		// Create a new random source with the current time as seed
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[s.rand.Intn(len(options))]
}

// GetRollResultMessage returns a message for a roll and what it did to the pot
func (s *service) GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	sum := input.Roll.Sum

	var titles, messages []string
	tone := ToneNeutral

	switch {
	case input.SevenRolled:
		tone = ToneSarcastic
		titles = []string{
			"SEVEN!",
			"Bank Robbed!",
			"The Pot Is Gone!",
			"Lucky Number... Not.",
		}
		messages = []string{
			fmt.Sprintf("%s rolled a 7 and the %d point pot goes up in smoke.", name, input.PreviousPot),
			fmt.Sprintf("Seven! %s just wiped out %d points for everyone still in.", name, input.PreviousPot),
			fmt.Sprintf("%s found the seven. Anyone who didn't bank gets nothing this round.", name),
			fmt.Sprintf("And %s ends it with a 7. Hope you banked!", name),
		}

	case input.BonusApplied:
		tone = ToneCelebration
		titles = []string{
			"Seventy!",
			"Safe Seven!",
			"Jackpot!",
		}
		messages = []string{
			fmt.Sprintf("%s rolled a 7 while it's safe. +70! The pot is now %d.", name, input.NewPot),
			fmt.Sprintf("A protected seven from %s adds 70 points. Pot: %d.", name, input.NewPot),
			fmt.Sprintf("%s turns a 7 into 70 points. The pot jumps to %d.", name, input.NewPot),
		}

	case input.Doubled:
		tone = ToneCelebration
		titles = []string{
			"DOUBLES!",
			"Double Trouble!",
			"Pot Doubled!",
		}
		messages = []string{
			fmt.Sprintf("%s rolled double %ds! The pot doubles from %d to %d.", name, input.Roll.Die1, input.PreviousPot, input.NewPot),
			fmt.Sprintf("Doubles from %s! %d becomes %d.", name, input.PreviousPot, input.NewPot),
			fmt.Sprintf("%s doubles the pot. It's %d now, who's brave enough to keep rolling?", name, input.NewPot),
		}

	default:
		titles = []string{
			fmt.Sprintf("%s rolled %d", name, sum),
			fmt.Sprintf("+%d", input.NewPot-input.PreviousPot),
			fmt.Sprintf("Roll: %d", sum),
		}
		messages = []string{
			fmt.Sprintf("%s rolled %d. The pot is now %d.", name, sum, input.NewPot),
			fmt.Sprintf("A %d from %s brings the pot to %d.", sum, name, input.NewPot),
			fmt.Sprintf("%s adds %d. Pot: %d.", name, input.NewPot-input.PreviousPot, input.NewPot),
		}
	}

	return &GetRollResultMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetBankMessage returns a message for a player banking the pot
func (s *service) GetBankMessage(ctx context.Context, input *GetBankMessageInput) (*GetBankMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName

	titles := []string{
		"Banked!",
		"Cashing Out!",
		"Safe!",
		"Money in the Bank!",
	}

	messages := []string{
		fmt.Sprintf("%s banks %d points and now has %d.", name, input.Amount, input.TotalScore),
		fmt.Sprintf("%s takes the %d and runs. Total: %d.", name, input.Amount, input.TotalScore),
		fmt.Sprintf("Playing it safe, %s locks in %d points (%d total).", name, input.Amount, input.TotalScore),
	}

	tone := ToneNeutral
	switch {
	case input.RemainingPlayers == 0:
		messages = []string{
			fmt.Sprintf("%s banks %d and that's everyone. Round over!", name, input.Amount),
			fmt.Sprintf("Last one out, %s grabs %d points. Round over!", name, input.Amount),
		}
	case input.RemainingPlayers == 1:
		tone = ToneSarcastic
		messages = append(messages,
			fmt.Sprintf("%s banks %d. One brave soul is still rolling...", name, input.Amount),
		)
	}

	return &GetBankMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetRoundEndMessage returns a message for the end of a round
func (s *service) GetRoundEndMessage(ctx context.Context, input *GetRoundEndMessageInput) (*GetRoundEndMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("Round %d of %d Over", input.Round, input.TotalRounds)

	var messages []string
	tone := ToneNeutral

	switch input.Reason {
	case models.RoundEndReasonSevenRolled:
		tone = ToneSarcastic
		messages = []string{
			fmt.Sprintf("%s rolled the seven. %d points lost to the house.", input.PlayerName, input.LostPot),
			fmt.Sprintf("The seven strikes! Blame %s for the %d points nobody got.", input.PlayerName, input.LostPot),
		}
	case models.RoundEndReasonAllBanked:
		tone = ToneEncouraging
		messages = []string{
			"Everyone banked. Nobody got greedy this time!",
			fmt.Sprintf("All players banked, %s was the last to cash out.", input.PlayerName),
		}
	default:
		messages = []string{"The round is over."}
	}

	if input.Round >= input.TotalRounds {
		messages = []string{messages[0] + " That was the final round, start the next round to see who won."}
	}

	return &GetRoundEndMessageOutput{
		Title:   title,
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetGameOverMessage returns a message announcing the winner or a tie
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil || input.Leaderboard == nil {
		return nil, errors.New("input and leaderboard cannot be nil")
	}

	board := input.Leaderboard
	if board.Winner == nil {
		return &GetGameOverMessageOutput{
			Title:   "Game Over",
			Message: "The game is over.",
			Tone:    ToneNeutral,
		}, nil
	}

	if board.IsTie {
		names := make([]string, len(board.Winners))
		for i, w := range board.Winners {
			names[i] = w.Name
		}
		return &GetGameOverMessageOutput{
			Title:   "It's a Tie!",
			Message: fmt.Sprintf("%s share the win with %d points each.", joinNames(names), board.Winner.TotalScore),
			Tone:    ToneCelebration,
		}, nil
	}

	winner := board.Winner
	messages := []string{
		fmt.Sprintf("%s wins with %d points!", winner.Name, winner.TotalScore),
		fmt.Sprintf("The bank belongs to %s: %d points.", winner.Name, winner.TotalScore),
		fmt.Sprintf("%s knew when to hold 'em. Winner with %d points!", winner.Name, winner.TotalScore),
	}

	return &GetGameOverMessageOutput{
		Title:   s.pick([]string{"Game Over!", "We Have a Winner!", "Champion!"}),
		Message: s.pick(messages),
		Tone:    ToneCelebration,
	}, nil
}

// GetGameStatusMessage returns a flavour line for the game status
func (s *service) GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error) {
	if input == nil || input.Game == nil {
		return nil, errors.New("input and game cannot be nil")
	}

	g := input.Game

	var messages []string
	switch {
	case g.Status.IsEnded():
		messages = []string{
			"Game over. Start a new one whenever you're ready.",
			"The vault is closed.",
		}
	case g.RoundEnded:
		messages = []string{
			"Round's done. Hit Next Round when everyone is ready.",
			"Catch your breath, then start the next round.",
		}
	case g.RollCountInRound < 3 && g.Settings.FirstThreeRollsSevenRule:
		messages = []string{
			"Sevens are worth 70 on the first three rolls. Roll with confidence!",
			"Still safe for now. Sevens pay out big.",
		}
	case g.BankTotal >= 200:
		messages = []string{
			fmt.Sprintf("The pot is at %d. Feeling lucky?", g.BankTotal),
			"That's a big pot. Somebody is going to regret not banking.",
		}
	default:
		messages = []string{
			"Sevens end the round now. Bank when you've seen enough.",
			"Roll or bank, the choice is yours.",
		}
	}

	return &GetGameStatusMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	err := input.Err
	who := input.PlayerName

	// A rejection for a known player names that player, not whoever asked
	var playerErr *game.PlayerError
	if errors.As(err, &playerErr) {
		who = playerErr.PlayerName
	}
	if who == "" {
		who = "That player"
	}

	var title, message string
	switch {
	case errors.Is(err, engine.ErrInvalidDice):
		title, message = "Invalid Dice", "Each die must be between 1 and 6."
	case errors.Is(err, dice.ErrInvalidSum):
		title, message = "Invalid Roll", "The sum of two dice must be between 2 and 12."
	case errors.Is(err, dice.ErrOddDoubles):
		title, message = "Invalid Roll", "Doubles always add up to an even number."
	case errors.Is(err, engine.ErrAlreadyBanked):
		title, message = "Already Banked", fmt.Sprintf("%s already banked this round.", who)
	case errors.Is(err, engine.ErrInvalidAmount):
		title, message = "Nothing to Bank", "The pot is empty. Roll first!"
	case errors.Is(err, engine.ErrPlayerNotFound):
		title, message = "Unknown Player", "That player isn't in this game."
	case errors.Is(err, engine.ErrRoundNotEnded):
		title, message = "Round Still Going", "The round isn't over yet. Keep rolling or bank."
	case errors.Is(err, engine.ErrRoundEnded):
		title, message = "Round Over", "This round has ended. Start the next round."
	case errors.Is(err, engine.ErrGameEnded):
		title, message = "Game Over", "This game has ended. Start a new game to play again."
	case errors.Is(err, game.ErrGameNotFound):
		title, message = "No Game", "There's no game at this table. Start one first."
	case errors.Is(err, game.ErrGameAlreadyExists):
		title, message = "Game in Progress", "A game is already running here. Reset it or start with replace."
	case errors.Is(err, game.ErrConcurrentUpdate):
		title, message = "Table Busy", "Someone else just changed the game. Check the board and try again."
	case errors.Is(err, game.ErrNothingToUndo):
		title, message = "Nothing to Undo", "There's nothing left to undo."
	case errors.Is(err, game.ErrNotEnoughPlayers), errors.Is(err, engine.ErrNotEnoughPlayers):
		title, message = "Not Enough Players", "Please enter at least 2 player names."
	case errors.Is(err, game.ErrTooManyPlayers):
		title, message = "Too Many Players", err.Error()
	case errors.Is(err, game.ErrInvalidRounds), errors.Is(err, engine.ErrInvalidRounds):
		title, message = "Invalid Rounds", "A game needs at least 1 round."
	case errors.Is(err, engine.ErrDuplicatePlayer):
		title, message = "Duplicate Player", "Every player needs a unique name."
	default:
		title = "Something Went Wrong"
		message = s.pick([]string{
			"The bank is closed for maintenance. Try again in a moment.",
			"Something went wrong. Please try again.",
		})
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}

	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " and " + names[len(names)-1]
}
