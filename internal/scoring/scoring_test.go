package scoring

import (
	"testing"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/stretchr/testify/suite"
)

type ScoringTestSuite struct {
	suite.Suite
}

func TestScoringTestSuite(t *testing.T) {
	suite.Run(t, new(ScoringTestSuite))
}

func (s *ScoringTestSuite) TestNormalRollAddsSum() {
	out := ApplyRoll(&ApplyRollInput{CurrentPot: 0, Roll: models.Roll{Die1: 2, Die2: 3, Sum: 5}, RollIndex: 1})

	s.Equal(5, out.NewPot)
	s.False(out.RoundEnded)
	s.False(out.SevenRolled)
}

func (s *ScoringTestSuite) TestDoublesAfterWindowDoublePot() {
	out := ApplyRoll(&ApplyRollInput{
		CurrentPot: 16,
		Roll:       models.Roll{Die1: 4, Die2: 4, Sum: 8, IsDoubles: true},
		RollIndex:  4,
	})

	s.Equal(32, out.NewPot)
	s.True(out.Doubled)
	s.False(out.RoundEnded)
}

func (s *ScoringTestSuite) TestDoublesInsideWindowAddSum() {
	for rollIndex := 1; rollIndex <= ProtectedRolls; rollIndex++ {
		out := ApplyRoll(&ApplyRollInput{
			CurrentPot: 10,
			Roll:       models.Roll{Die1: 3, Die2: 3, Sum: 6, IsDoubles: true},
			RollIndex:  rollIndex,
		})

		s.Equal(16, out.NewPot, "roll %d", rollIndex)
		s.False(out.Doubled)
	}
}

func (s *ScoringTestSuite) TestSevenInsideWindowWithRuleAddsBonus() {
	out := ApplyRoll(&ApplyRollInput{
		CurrentPot:               20,
		Roll:                     models.Roll{Die1: 3, Die2: 4, Sum: 7},
		RollIndex:                2,
		FirstThreeRollsSevenRule: true,
	})

	s.Equal(90, out.NewPot)
	s.False(out.RoundEnded)
	s.False(out.SevenRolled)
	s.True(out.BonusApplied)
}

func (s *ScoringTestSuite) TestSevenOnThirdRollIsStillProtected() {
	out := ApplyRoll(&ApplyRollInput{
		CurrentPot:               12,
		Roll:                     models.Roll{Die1: 3, Die2: 4, Sum: 7},
		RollIndex:                3,
		FirstThreeRollsSevenRule: true,
	})

	s.Equal(82, out.NewPot)
	s.False(out.RoundEnded)
}

func (s *ScoringTestSuite) TestSevenAfterWindowEndsRound() {
	out := ApplyRoll(&ApplyRollInput{
		CurrentPot:               50,
		Roll:                     models.Roll{Die1: 3, Die2: 4, Sum: 7},
		RollIndex:                4,
		FirstThreeRollsSevenRule: true,
	})

	s.Equal(50, out.NewPot)
	s.True(out.RoundEnded)
	s.True(out.SevenRolled)
}

func (s *ScoringTestSuite) TestSevenWithRuleDisabledEndsRoundImmediately() {
	out := ApplyRoll(&ApplyRollInput{
		CurrentPot: 0,
		Roll:       models.Roll{Die1: 1, Die2: 6, Sum: 7},
		RollIndex:  1,
	})

	s.Equal(0, out.NewPot)
	s.True(out.RoundEnded)
	s.True(out.SevenRolled)
	s.False(out.BonusApplied)
}

func (s *ScoringTestSuite) TestPotNeverDecreases() {
	for pot := 0; pot <= 100; pot += 25 {
		for sum := 2; sum <= 12; sum++ {
			for rollIndex := 1; rollIndex <= 6; rollIndex++ {
				for _, doubles := range []bool{false, true} {
					for _, rule := range []bool{false, true} {
						out := ApplyRoll(&ApplyRollInput{
							CurrentPot:               pot,
							Roll:                     models.Roll{Sum: sum, IsDoubles: doubles},
							RollIndex:                rollIndex,
							FirstThreeRollsSevenRule: rule,
						})
						s.GreaterOrEqual(out.NewPot, pot)
						if out.RoundEnded {
							s.Equal(pot, out.NewPot)
						}
					}
				}
			}
		}
	}
}
