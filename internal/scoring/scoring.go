// Package scoring calculates how a roll changes the pot.
package scoring

import "github.com/KirkDiggler/bank/internal/models"

const (
	// SevenBonus is added to the pot for a seven inside the protected window
	SevenBonus = 70

	// ProtectedRolls is the size of the opening window of each round
	ProtectedRolls = 3
)

// ApplyRollInput contains the pot and the roll to score
type ApplyRollInput struct {
	// CurrentPot is the pot before this roll
	CurrentPot int

	// Roll is the classified roll
	Roll models.Roll

	// RollIndex is the 1-indexed position of this roll within the round
	RollIndex int

	// FirstThreeRollsSevenRule enables the seventy-point seven in the protected window
	FirstThreeRollsSevenRule bool
}

// ApplyRollOutput contains the result of scoring a roll
type ApplyRollOutput struct {
	// NewPot is the pot after this roll
	NewPot int

	// RoundEnded is true if the roll ended the round
	RoundEnded bool

	// SevenRolled is true only for a round-ending seven
	SevenRolled bool

	// Doubled is true if doubles multiplied the pot
	Doubled bool

	// BonusApplied is true if a protected seven added SevenBonus
	BonusApplied bool
}

// IsProtectedRoll returns true for the first ProtectedRolls rolls of a round
func IsProtectedRoll(rollIndex int) bool {
	return rollIndex <= ProtectedRolls
}

// ApplyRoll scores a single roll. Sevens take precedence over doubles, and
// doubles only multiply once the protected window has passed.
func ApplyRoll(input *ApplyRollInput) *ApplyRollOutput {
	if input.Roll.IsSeven() {
		if input.FirstThreeRollsSevenRule && IsProtectedRoll(input.RollIndex) {
			return &ApplyRollOutput{
				NewPot:       input.CurrentPot + SevenBonus,
				BonusApplied: true,
			}
		}

		return &ApplyRollOutput{
			NewPot:      input.CurrentPot,
			RoundEnded:  true,
			SevenRolled: true,
		}
	}

	if input.Roll.IsDoubles && !IsProtectedRoll(input.RollIndex) {
		// pip sum is ignored once doubling applies
		return &ApplyRollOutput{
			NewPot:  input.CurrentPot * 2,
			Doubled: true,
		}
	}

	return &ApplyRollOutput{
		NewPot: input.CurrentPot + input.Roll.Sum,
	}
}
