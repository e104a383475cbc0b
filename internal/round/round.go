// Package round decides when a round is over and closes it out.
package round

import (
	"github.com/KirkDiggler/bank/internal/banking"
	"github.com/KirkDiggler/bank/internal/models"
)

// ShouldEnd reports whether the round is over and why.
// A rolled seven wins over everyone having banked.
func ShouldEnd(sevenRolled bool, players []models.Player) (bool, models.RoundEndReason) {
	if sevenRolled {
		return true, models.RoundEndReasonSevenRolled
	}

	if allBanked(players) {
		return true, models.RoundEndReasonAllBanked
	}

	return false, models.RoundEndReasonNone
}

// Finalize updates every player's streak for the round that just ended.
// Scores are not touched; banking already moved the pot into them.
func Finalize(players []models.Player, reason models.RoundEndReason) []models.Player {
	finalized := make([]models.Player, len(players))
	for i, p := range players {
		finalized[i] = banking.UpdateStreak(p, p.BankedThisRound)
	}
	return finalized
}

// ResetState clears the per-round banked flag
func ResetState(players []models.Player) []models.Player {
	reset := make([]models.Player, len(players))
	for i, p := range players {
		reset[i] = p
		reset[i].BankedThisRound = false
	}
	return reset
}

// IsGameComplete returns true once the last round has been played
func IsGameComplete(currentRound, totalRounds int) bool {
	return currentRound >= totalRounds
}

func allBanked(players []models.Player) bool {
	for _, p := range players {
		if !p.BankedThisRound {
			return false
		}
	}
	return true
}
