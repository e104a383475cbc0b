package game

import "github.com/KirkDiggler/bank/internal/models"

type SaveGameInput struct {
	TableID string
	Game    *models.Game

	// Previous is pushed onto the undo history when set
	Previous *models.Game

	// ExpectedVersion is the version of the stored snapshot this one was built
	// from, 0 for an empty table. The save fails with ErrVersionConflict otherwise.
	ExpectedVersion int64

	// ClearHistory drops the undo history before saving
	ClearHistory bool
}

type GetGameInput struct {
	TableID string
}

type UndoInput struct {
	TableID string
}

type GetHistoryLengthInput struct {
	TableID string
}

type DeleteGameInput struct {
	TableID string
}

type GetActiveGamesInput struct {
}

type GetActiveGamesOutput struct {
	// Games keyed by table ID
	Games map[string]*models.Game
}
