package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/bank/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// Rand picks between message variants, seeded from the clock if nil
	Rand *rand.Rand
}

// GetRollResultMessageInput contains parameters for a roll message
type GetRollResultMessageInput struct {
	// PlayerName is the player who rolled
	PlayerName string

	// Roll is the classified dice
	Roll models.Roll

	// PreviousPot and NewPot are the pot before and after the roll
	PreviousPot int
	NewPot      int

	// Outcome flags from scoring
	Doubled      bool
	BonusApplied bool
	SevenRolled  bool
}

// GetRollResultMessageOutput contains a roll message
type GetRollResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetBankMessageInput contains parameters for a bank message
type GetBankMessageInput struct {
	// PlayerName is the player who banked
	PlayerName string

	// Amount is what they banked
	Amount int

	// TotalScore is their score after banking
	TotalScore int

	// RemainingPlayers is how many players have not banked yet
	RemainingPlayers int
}

// GetBankMessageOutput contains a bank message
type GetBankMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetRoundEndMessageInput contains parameters for a round end message
type GetRoundEndMessageInput struct {
	// Reason is why the round ended
	Reason models.RoundEndReason

	// PlayerName is who rolled the seven or banked last
	PlayerName string

	// LostPot is the pot that went unbanked
	LostPot int

	// Round and TotalRounds place the round in the game
	Round       int
	TotalRounds int
}

// GetRoundEndMessageOutput contains a round end message
type GetRoundEndMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetGameOverMessageInput contains parameters for a game over message
type GetGameOverMessageInput struct {
	// Leaderboard is the final standings
	Leaderboard *models.Leaderboard
}

// GetGameOverMessageOutput contains a game over message
type GetGameOverMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetGameStatusMessageInput contains parameters for a status flavour line
type GetGameStatusMessageInput struct {
	// Game is the current snapshot
	Game *models.Game

	// Tone is the preferred tone, funny if empty
	Tone MessageTone
}

// GetGameStatusMessageOutput contains a status flavour line
type GetGameStatusMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the game service
	Err error

	// PlayerName is the player the failed action was for, if known.
	// A game.PlayerError in Err takes precedence.
	PlayerName string
}

// GetErrorMessageOutput contains an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
