package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/bank/internal/services/game Service

import "context"

// Service defines the interface for game operations at a table
type Service interface {
	// StartGame creates a new game at a table
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// RollDice applies an explicit die pair
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// RollSum applies a roll entered as a sum and a doubles flag
	RollSum(ctx context.Context, input *RollSumInput) (*RollDiceOutput, error)

	// RollRandom rolls the dice for the current player
	RollRandom(ctx context.Context, input *RollRandomInput) (*RollDiceOutput, error)

	// Bank locks in the pot for a player
	Bank(ctx context.Context, input *BankInput) (*BankOutput, error)

	// NextRound advances past an ended round
	NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error)

	// GetStatus returns the current game and leaderboard
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// Undo restores the snapshot before the last action
	Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error)

	// ResetGame discards the game at a table
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// GetRoster returns the player names last used at a table
	GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error)

	// ListActiveGames returns every table with a game in progress
	ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error)
}
