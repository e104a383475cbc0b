package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/bank/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/bank/internal/models"
)

// Repository defines the interface for remembering who played at a table
type Repository interface {
	// SaveRoster persists the player names used at a table
	SaveRoster(ctx context.Context, input *SaveRosterInput) error

	// GetRoster retrieves the last roster used at a table
	GetRoster(ctx context.Context, input *GetRosterInput) (*models.Roster, error)
}
