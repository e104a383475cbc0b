// Package turn works out whose turn it is.
package turn

import (
	"github.com/KirkDiggler/bank/internal/models"
)

// Next scans forward from fromIndex, wrapping around, and returns the first
// player who has not banked this round. The scan stops after one full lap, so
// when everyone has banked the result is arbitrary and the round must already
// be treated as over.
func Next(players []models.Player, fromIndex int) int {
	count := len(players)
	if count == 0 {
		return 0
	}

	next := wrap(fromIndex+1, count)
	for i := 0; i < count && players[next].BankedThisRound; i++ {
		next = wrap(next+1, count)
	}
	return next
}

// ShouldAdvanceOnBank returns true if a bank by bankerIndex passes the turn.
// Players may bank out of turn without disturbing the rotation.
func ShouldAdvanceOnBank(bankerIndex, currentIndex int) bool {
	return bankerIndex == currentIndex
}

// NextRoundStarter returns who rolls first next round: the player after the
// one who ended this round, or the current player if nobody was recorded.
func NextRoundStarter(roundEndPlayerIndex, currentPlayerIndex, playerCount int) int {
	if playerCount == 0 {
		return 0
	}
	if roundEndPlayerIndex == models.NoPlayerIndex {
		return currentPlayerIndex
	}
	return wrap(roundEndPlayerIndex+1, playerCount)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
