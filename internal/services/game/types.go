package game

import (
	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/common/uuid"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/models"
	gameRepo "github.com/KirkDiggler/bank/internal/repositories/game"
	rosterRepo "github.com/KirkDiggler/bank/internal/repositories/roster"
	"github.com/charmbracelet/log"
)

// Defaults used when the config leaves a value unset
const (
	DefaultMaxPlayers  = 50
	DefaultTotalRounds = 10
)

// Config holds configuration for the game service
type Config struct {
	// Maximum number of players per game
	MaxPlayers int

	// Rounds used when StartGame does not ask for a number
	DefaultTotalRounds int

	// Rules used when StartGame does not pass settings
	DefaultSettings models.Settings

	// Repository dependencies
	GameRepo   gameRepo.Repository
	RosterRepo rosterRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to log.Default()
	Logger *log.Logger
}

// GameState is the snapshot held for a table after an action
type GameState struct {
	// Game is the current snapshot
	Game *models.Game

	// Leaderboard is derived from Game
	Leaderboard *models.Leaderboard

	// CanUndo indicates an earlier snapshot is available
	CanUndo bool
}

// StartGameInput contains parameters for starting a new game
type StartGameInput struct {
	// TableID is the Discord channel or CLI table the game is played at
	TableID string

	// PlayerNames in turn order; blank names are dropped
	PlayerNames []string

	// TotalRounds is the number of rounds, the configured default if zero
	TotalRounds int

	// Settings overrides the configured default rules
	Settings *models.Settings

	// Replace discards a game still in progress at the table
	Replace bool
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	State *GameState
}

// RollDiceInput contains parameters for rolling explicit dice
type RollDiceInput struct {
	TableID string
	Die1    int
	Die2    int
}

// RollSumInput contains parameters for a roll entered as a sum
type RollSumInput struct {
	TableID   string
	Sum       int
	IsDoubles bool
}

// RollRandomInput contains parameters for a random roll
type RollRandomInput struct {
	TableID string
}

// RollDiceOutput contains the result of a roll
type RollDiceOutput struct {
	State *GameState

	// Roll is the classified dice
	Roll models.Roll

	// RollerName is the player who rolled
	RollerName string

	// PreviousPot is the pot before the roll
	PreviousPot int

	// Roll outcome flags
	Doubled      bool
	BonusApplied bool
	SevenRolled  bool
	RoundEnded   bool
}

// BankInput contains parameters for banking
type BankInput struct {
	TableID  string
	PlayerID string
}

// BankOutput contains the result of banking
type BankOutput struct {
	State *GameState

	// PlayerName is the player who banked
	PlayerName string

	// Amount is what was added to their score
	Amount int

	// RoundEnded indicates everyone has now banked
	RoundEnded bool
}

// NextRoundInput contains parameters for advancing the round
type NextRoundInput struct {
	TableID string
}

// NextRoundOutput contains the result of advancing the round
type NextRoundOutput struct {
	State *GameState

	// GameEnded indicates the final round was just closed
	GameEnded bool
}

// GetStatusInput contains parameters for getting the game status
type GetStatusInput struct {
	TableID string
}

// GetStatusOutput contains the current game status
type GetStatusOutput struct {
	State *GameState
}

// UndoInput contains parameters for undoing the last action
type UndoInput struct {
	TableID string
}

// UndoOutput contains the restored game
type UndoOutput struct {
	State *GameState
}

// ResetGameInput contains parameters for discarding a game
type ResetGameInput struct {
	TableID string
}

// ResetGameOutput contains the result of discarding a game
type ResetGameOutput struct {
	Success bool
}

// GetRosterInput contains parameters for getting the saved roster
type GetRosterInput struct {
	TableID string
}

// GetRosterOutput contains the saved roster, empty if none was saved
type GetRosterOutput struct {
	PlayerNames []string
}

// ListActiveGamesInput contains parameters for listing active games
type ListActiveGamesInput struct {
}

// ActiveGame summarises one table with a game in progress
type ActiveGame struct {
	TableID      string
	GameID       string
	CurrentRound int
	TotalRounds  int
	PlayerCount  int
}

// ListActiveGamesOutput contains every active table, sorted by table ID
type ListActiveGamesOutput struct {
	Games []ActiveGame
}
