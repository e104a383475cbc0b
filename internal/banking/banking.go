// Package banking applies banking and streak updates to a single player.
// Every function returns a new Player value and leaves its argument alone.
package banking

import (
	"fmt"

	"github.com/KirkDiggler/bank/internal/models"
)

// CanBank returns true if the player may bank the given pot
func CanBank(player models.Player, pot int) bool {
	return !player.BankedThisRound && pot > 0
}

// Bank moves the pot into the player's score
func Bank(player models.Player, pot int) (models.Player, error) {
	if player.BankedThisRound {
		return player, fmt.Errorf("%w: %s", ErrAlreadyBanked, player.ID)
	}

	if pot <= 0 {
		return player, fmt.Errorf("%w: got %d", ErrInvalidAmount, pot)
	}

	banked := player
	banked.TotalScore = player.TotalScore + pot
	banked.BankedThisRound = true
	banked.BanksCount = player.BanksCount + 1
	banked.BiggestBank = max(player.BiggestBank, pot)

	return banked, nil
}

// UpdateStreak extends the streak after a successful round or resets it
func UpdateStreak(player models.Player, bankedSuccessfully bool) models.Player {
	updated := player
	if bankedSuccessfully {
		updated.StreakCount = player.StreakCount + 1
	} else {
		updated.StreakCount = 0
	}
	return updated
}
