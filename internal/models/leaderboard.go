package models

// Leaderboard is the derived standings of a game
type Leaderboard struct {
	// Status is the game status at the time of the projection
	Status GameStatus

	// CurrentRound and TotalRounds describe game progress
	CurrentRound int
	TotalRounds  int

	// IsGameComplete is true once the game has ended
	IsGameComplete bool

	// Standings is every player sorted by score, ties kept in turn order
	Standings []Player

	// Winner is the first player with the highest score, nil for an empty game
	Winner *Player

	// Winners holds every tied leader, only set when IsTie
	Winners []Player

	// IsTie is true if more than one player shares the highest score
	IsTie bool
}
