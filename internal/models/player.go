package models

// Player represents a participant in a Bank game.
// Players are owned by the Game snapshot and copied by value.
type Player struct {
	// ID is the stable identifier of the player
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// TotalScore never decreases during a game
	TotalScore int `json:"totalScore"`

	// BankedThisRound is reset every round
	BankedThisRound bool `json:"bankedThisRound"`

	// BanksCount is the number of times the player has banked
	BanksCount int `json:"banksCount"`

	// BiggestBank is the largest single amount the player has banked
	BiggestBank int `json:"biggestBank"`

	// StreakCount is the number of consecutive rounds the player banked in
	StreakCount int `json:"streakCount"`
}
