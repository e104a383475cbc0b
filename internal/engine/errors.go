package engine

import (
	"github.com/KirkDiggler/bank/internal/banking"
	"github.com/KirkDiggler/bank/internal/dice"
)

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilGame          GameError = "game cannot be nil"
	ErrPlayerNotFound   GameError = "player not found"
	ErrRoundNotEnded    GameError = "cannot advance: round has not ended"
	ErrRoundEnded       GameError = "round has ended"
	ErrGameEnded        GameError = "game has ended"
	ErrNotEnoughPlayers GameError = "at least 2 players are required"
	ErrInvalidRounds    GameError = "total rounds must be at least 1"
	ErrInvalidPlayer    GameError = "player ID and name cannot be empty"
	ErrDuplicatePlayer  GameError = "player IDs must be unique"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
)

// Errors raised by the rule packages, re-exported so callers only need this package
const (
	ErrInvalidDice   = dice.ErrInvalidDice
	ErrAlreadyBanked = banking.ErrAlreadyBanked
	ErrInvalidAmount = banking.ErrInvalidAmount
)
