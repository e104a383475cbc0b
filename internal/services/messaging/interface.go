package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/bank/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRollResultMessage returns a message for a roll and what it did to the pot
	GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error)

	// GetBankMessage returns a message for a player banking the pot
	GetBankMessage(ctx context.Context, input *GetBankMessageInput) (*GetBankMessageOutput, error)

	// GetRoundEndMessage returns a message for the end of a round
	GetRoundEndMessage(ctx context.Context, input *GetRoundEndMessageInput) (*GetRoundEndMessageOutput, error)

	// GetGameOverMessage returns a message announcing the winner or a tie
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)

	// GetGameStatusMessage returns a flavour line for the game status
	GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
