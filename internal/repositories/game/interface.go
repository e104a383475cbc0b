package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/bank/internal/repositories/game Repository

import (
	"context"

	"github.com/KirkDiggler/bank/internal/models"
)

// Repository defines the interface for game snapshot persistence.
// Each table holds one current snapshot plus a stack of earlier ones for undo.
type Repository interface {
	// SaveGame replaces the current snapshot, pushing the previous one onto the undo history.
	// It fails with ErrVersionConflict if the stored snapshot moved past ExpectedVersion.
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves the current snapshot for a table
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// Undo restores the most recent previous snapshot and returns it
	Undo(ctx context.Context, input *UndoInput) (*models.Game, error)

	// GetHistoryLength returns how many snapshots can be undone
	GetHistoryLength(ctx context.Context, input *GetHistoryLengthInput) (int64, error)

	// DeleteGame removes the snapshot and its history
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// GetActiveGames retrieves all active games
	GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error)
}
