package engine

import (
	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/common/uuid"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/scoring"
)

// Config holds the sources of non-determinism used when creating a game
type Config struct {
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// DiceRoller picks the starting player
	DiceRoller dice.Roller
}

// PlayerConfig identifies a player at game creation
type PlayerConfig struct {
	ID   string
	Name string
}

// InitializeInput contains parameters for creating a new game
type InitializeInput struct {
	// Players in turn order
	Players []PlayerConfig

	// TotalRounds is the number of rounds to play
	TotalRounds int

	// Settings is the rule configuration
	Settings models.Settings
}

// RollResult describes a scored roll and the snapshot it produced
type RollResult struct {
	// Game is the new snapshot
	Game *models.Game

	// Roll is the classified dice
	Roll models.Roll

	// RollerIndex is the player who rolled
	RollerIndex int

	// PreviousPot is the pot before the roll
	PreviousPot int

	// Scoring is the pot calculation for the roll
	Scoring *scoring.ApplyRollOutput
}

// BankResult describes a bank action and the snapshot it produced
type BankResult struct {
	// Game is the new snapshot
	Game *models.Game

	// PlayerIndex is the player who banked
	PlayerIndex int

	// Amount is the pot that was banked
	Amount int
}
