package roster

import "github.com/KirkDiggler/bank/internal/models"

// SaveRosterInput contains parameters for saving a roster
type SaveRosterInput struct {
	Roster *models.Roster
}

// GetRosterInput contains parameters for retrieving a roster
type GetRosterInput struct {
	TableID string
}
