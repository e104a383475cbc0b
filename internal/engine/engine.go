// Package engine composes the rule packages into whole-game transitions.
//
// Every transition takes a snapshot and returns a new one. The snapshot passed
// in is never modified, so a caller that keeps the previous pointer can undo a
// transition by simply going back to it. A failed transition returns an error
// and no snapshot.
package engine

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/bank/internal/banking"
	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/common/uuid"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/round"
	"github.com/KirkDiggler/bank/internal/scoring"
	"github.com/KirkDiggler/bank/internal/turn"
)

// Engine creates games. Creation is the only transition that needs a clock
// and randomness; everything else is a package-level pure function.
type Engine struct {
	clock         clock.Clock
	uuidGenerator uuid.UUID
	diceRoller    dice.Roller
}

// New creates a new game engine
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &Engine{
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		diceRoller:    cfg.DiceRoller,
	}, nil
}

// Initialize creates a new game at round 1 with an empty pot and a random
// starting player
func (e *Engine) Initialize(input *InitializeInput) (*models.Game, error) {
	if input == nil {
		return nil, ErrNotEnoughPlayers
	}

	if len(input.Players) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughPlayers, len(input.Players))
	}

	if input.TotalRounds < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, input.TotalRounds)
	}

	seen := make(map[string]bool, len(input.Players))
	players := make([]models.Player, 0, len(input.Players))
	for _, pc := range input.Players {
		if pc.ID == "" || pc.Name == "" {
			return nil, ErrInvalidPlayer
		}
		if seen[pc.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, pc.ID)
		}
		seen[pc.ID] = true

		players = append(players, models.Player{
			ID:   pc.ID,
			Name: pc.Name,
		})
	}

	// Roll a die with one face per player
	startIndex := e.diceRoller.Roll(len(players)) - 1
	if startIndex < 0 || startIndex >= len(players) {
		startIndex = 0
	}

	return &models.Game{
		ID:                  e.uuidGenerator.NewUUID(),
		CreatedAt:           e.clock.Now(),
		Players:             players,
		TotalRounds:         input.TotalRounds,
		CurrentRound:        1,
		BankTotal:           0,
		RollCountInRound:    0,
		Status:              models.GameStatusActive,
		Settings:            input.Settings,
		RoundEnded:          false,
		RoundEndReason:      models.RoundEndReasonNone,
		RoundEndPlayerIndex: models.NoPlayerIndex,
		CurrentPlayerIndex:  startIndex,
	}, nil
}

// ApplyRoll applies a die pair to the game
func ApplyRoll(game *models.Game, die1, die2 int) (*models.Game, error) {
	result, err := Roll(game, die1, die2)
	if err != nil {
		return nil, err
	}
	return result.Game, nil
}

// Roll applies a die pair to the game and reports how the pot changed
func Roll(game *models.Game, die1, die2 int) (*RollResult, error) {
	if game == nil {
		return nil, ErrNilGame
	}

	roll, err := dice.Classify(die1, die2)
	if err != nil {
		return nil, err
	}

	if err := CheckAcceptsActions(game); err != nil {
		return nil, err
	}

	rollIndex := game.RollCountInRound + 1
	scored := scoring.ApplyRoll(&scoring.ApplyRollInput{
		CurrentPot:               game.BankTotal,
		Roll:                     roll,
		RollIndex:                rollIndex,
		FirstThreeRollsSevenRule: game.Settings.FirstThreeRollsSevenRule,
	})

	next := game.Copy()
	next.BankTotal = scored.NewPot
	next.RollCountInRound = rollIndex
	next.CurrentPlayerIndex = turn.Next(game.Players, game.CurrentPlayerIndex)

	if scored.RoundEnded {
		ended, reason := round.ShouldEnd(scored.SevenRolled, next.Players)
		next.RoundEnded = ended
		next.RoundEndReason = reason
		next.RoundEndPlayerIndex = game.CurrentPlayerIndex
	}

	return &RollResult{
		Game:        next,
		Roll:        roll,
		RollerIndex: game.CurrentPlayerIndex,
		PreviousPot: game.BankTotal,
		Scoring:     scored,
	}, nil
}

// ApplyBank banks the current pot for the given player
func ApplyBank(game *models.Game, playerID string) (*models.Game, error) {
	result, err := Bank(game, playerID)
	if err != nil {
		return nil, err
	}
	return result.Game, nil
}

// Bank banks the current pot for the given player and reports the amount.
// Any player may bank at any time; only a bank by the current player passes
// the turn.
func Bank(game *models.Game, playerID string) (*BankResult, error) {
	if game == nil {
		return nil, ErrNilGame
	}

	playerIndex := game.PlayerIndex(playerID)
	if playerIndex == -1 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	if err := CheckAcceptsActions(game); err != nil {
		return nil, err
	}

	banked, err := banking.Bank(game.Players[playerIndex], game.BankTotal)
	if err != nil {
		return nil, err
	}

	next := game.Copy()
	next.Players[playerIndex] = banked

	if turn.ShouldAdvanceOnBank(playerIndex, game.CurrentPlayerIndex) {
		next.CurrentPlayerIndex = turn.Next(next.Players, game.CurrentPlayerIndex)
	}

	if ended, reason := round.ShouldEnd(false, next.Players); ended {
		next.RoundEnded = true
		next.RoundEndReason = reason
		next.RoundEndPlayerIndex = playerIndex
	}

	return &BankResult{
		Game:        next,
		PlayerIndex: playerIndex,
		Amount:      game.BankTotal,
	}, nil
}

// AdvanceRound closes out an ended round and either starts the next one or
// ends the game
func AdvanceRound(game *models.Game) (*models.Game, error) {
	if game == nil {
		return nil, ErrNilGame
	}

	if !game.RoundEnded {
		return nil, ErrRoundNotEnded
	}

	players := round.ResetState(round.Finalize(game.Players, game.RoundEndReason))

	next := game.Copy()
	next.Players = players
	next.RoundEnded = false
	next.RoundEndReason = models.RoundEndReasonNone
	next.RoundEndPlayerIndex = models.NoPlayerIndex

	if round.IsGameComplete(game.CurrentRound, game.TotalRounds) {
		next.Status = models.GameStatusEnded
		return next, nil
	}

	next.CurrentRound = game.CurrentRound + 1
	next.BankTotal = 0
	next.RollCountInRound = 0
	next.CurrentPlayerIndex = turn.NextRoundStarter(game.RoundEndPlayerIndex, game.CurrentPlayerIndex, len(players))

	return next, nil
}

// GetStatus projects the leaderboard and winners. It is safe to call in any state.
func GetStatus(game *models.Game) *models.Leaderboard {
	if game == nil {
		return &models.Leaderboard{}
	}

	standings := make([]models.Player, len(game.Players))
	copy(standings, game.Players)
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})

	status := &models.Leaderboard{
		Status:         game.Status,
		CurrentRound:   game.CurrentRound,
		TotalRounds:    game.TotalRounds,
		IsGameComplete: game.Status.IsEnded(),
		Standings:      standings,
	}

	if len(standings) == 0 {
		return status
	}

	var winners []models.Player
	for _, p := range standings {
		if p.TotalScore != standings[0].TotalScore {
			break
		}
		winners = append(winners, p)
	}

	winner := winners[0]
	status.Winner = &winner
	status.IsTie = len(winners) > 1
	if status.IsTie {
		status.Winners = winners
	}

	return status
}

// CheckAcceptsActions reports why a game cannot take a roll or a bank, nil if it can
func CheckAcceptsActions(game *models.Game) error {
	if game == nil {
		return ErrNilGame
	}
	if game.Status.IsEnded() {
		return ErrGameEnded
	}
	if game.RoundEnded {
		return ErrRoundEnded
	}
	return nil
}
