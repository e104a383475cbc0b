package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusActive indicates rounds are still being played
	GameStatusActive GameStatus = "active"

	// GameStatusEnded indicates the final round has been advanced past
	GameStatusEnded GameStatus = "ended"
)

// IsActive returns true if the game is still being played
func (s GameStatus) IsActive() bool {
	return s == GameStatusActive
}

// IsEnded returns true if the game is over
func (s GameStatus) IsEnded() bool {
	return s == GameStatusEnded
}

// RoundEndReason represents why a round ended
type RoundEndReason string

const (
	// RoundEndReasonNone is used while a round is still in progress
	RoundEndReasonNone RoundEndReason = ""

	// RoundEndReasonSevenRolled indicates a seven wiped the pot
	RoundEndReasonSevenRolled RoundEndReason = "seven_rolled"

	// RoundEndReasonAllBanked indicates every player banked
	RoundEndReasonAllBanked RoundEndReason = "all_banked"
)

// NoPlayerIndex marks RoundEndPlayerIndex as unset between rounds
const NoPlayerIndex = -1

// Settings holds the per-game rule configuration
type Settings struct {
	// FirstThreeRollsSevenRule makes a seven in rolls 1-3 add 70 instead of ending the round
	FirstThreeRollsSevenRule bool `json:"firstThreeRollsSevenRule"`
}

// Game is an immutable snapshot of a Bank game.
// Transitions build a new Game rather than changing an existing one.
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// CreatedAt is when the game was created
	CreatedAt time.Time `json:"createdAt"`

	// Version increases with every stored snapshot of this table, including undos
	Version int64 `json:"version"`

	// Players in turn order, fixed for the lifetime of the game
	Players []Player `json:"players"`

	// TotalRounds is the number of rounds chosen at creation
	TotalRounds int `json:"totalRounds"`

	// CurrentRound is 1-indexed
	CurrentRound int `json:"currentRound"`

	// BankTotal is the pot at risk in the current round
	BankTotal int `json:"bankTotal"`

	// RollCountInRound is the number of rolls made this round
	RollCountInRound int `json:"rollCountInRound"`

	// Status is the current state of the game
	Status GameStatus `json:"status"`

	// Settings is the rule configuration
	Settings Settings `json:"settings"`

	// RoundEnded is true between the round-ending action and AdvanceRound
	RoundEnded bool `json:"roundEnded"`

	// RoundEndReason is set only while RoundEnded is true
	RoundEndReason RoundEndReason `json:"roundEndReason"`

	// RoundEndPlayerIndex is the player whose action ended the round, or NoPlayerIndex
	RoundEndPlayerIndex int `json:"roundEndPlayerIndex"`

	// CurrentPlayerIndex is whose turn it is to roll
	CurrentPlayerIndex int `json:"currentPlayerIndex"`
}

// Copy returns a new snapshot with its own player slice
func (g *Game) Copy() *Game {
	players := make([]Player, len(g.Players))
	copy(players, g.Players)

	return &Game{
		ID:                  g.ID,
		CreatedAt:           g.CreatedAt,
		Version:             g.Version,
		Players:             players,
		TotalRounds:         g.TotalRounds,
		CurrentRound:        g.CurrentRound,
		BankTotal:           g.BankTotal,
		RollCountInRound:    g.RollCountInRound,
		Status:              g.Status,
		Settings:            g.Settings,
		RoundEnded:          g.RoundEnded,
		RoundEndReason:      g.RoundEndReason,
		RoundEndPlayerIndex: g.RoundEndPlayerIndex,
		CurrentPlayerIndex:  g.CurrentPlayerIndex,
	}
}

// PlayerIndex returns the index of the player with the given ID, or -1
func (g *Game) PlayerIndex(playerID string) int {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// AcceptsActions returns true if rolls and banks are currently allowed
func (g *Game) AcceptsActions() bool {
	return g.Status.IsActive() && !g.RoundEnded
}
