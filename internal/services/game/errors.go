package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "no game at this table"
	ErrGameAlreadyExists GameError = "a game is already in progress at this table"
	ErrNothingToUndo     GameError = "nothing to undo"
	ErrConcurrentUpdate  GameError = "the game changed while this action was running"
	ErrNotEnoughPlayers  GameError = "please enter at least 2 player names"
	ErrTooManyPlayers    GameError = "too many players"
	ErrInvalidRounds     GameError = "total rounds must be at least 1"
	ErrEmptyTableID      GameError = "table ID cannot be empty"
	ErrNilInput          GameError = "input cannot be nil"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilGameRepo       GameError = "game repository cannot be nil"
	ErrNilRosterRepo     GameError = "roster repository cannot be nil"
	ErrNilDiceRoller     GameError = "dice roller cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
)

// PlayerError ties a rejected action to the player it was for
type PlayerError struct {
	PlayerName string
	Err        error
}

// Error implements the error interface
func (e *PlayerError) Error() string {
	return e.PlayerName + ": " + e.Err.Error()
}

// Unwrap returns the underlying rejection
func (e *PlayerError) Unwrap() error {
	return e.Err
}
