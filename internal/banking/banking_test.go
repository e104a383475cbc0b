package banking

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/stretchr/testify/suite"
)

type BankingTestSuite struct {
	suite.Suite
	player models.Player
}

func (s *BankingTestSuite) SetupTest() {
	s.player = models.Player{
		ID:          "player-1",
		Name:        "Alice",
		TotalScore:  40,
		BanksCount:  2,
		BiggestBank: 30,
		StreakCount: 1,
	}
}

func TestBankingTestSuite(t *testing.T) {
	suite.Run(t, new(BankingTestSuite))
}

func (s *BankingTestSuite) TestCanBank() {
	s.True(CanBank(s.player, 10))
	s.False(CanBank(s.player, 0))
	s.False(CanBank(s.player, -5))

	banked := s.player
	banked.BankedThisRound = true
	s.False(CanBank(banked, 10))
}

func (s *BankingTestSuite) TestBank_HappyPath() {
	banked, err := Bank(s.player, 25)
	s.Require().NoError(err)

	s.Equal(65, banked.TotalScore)
	s.True(banked.BankedThisRound)
	s.Equal(3, banked.BanksCount)
	s.Equal(30, banked.BiggestBank)

	// the argument is a value and must be untouched
	s.Equal(40, s.player.TotalScore)
	s.False(s.player.BankedThisRound)
}

func (s *BankingTestSuite) TestBank_NewBiggestBank() {
	banked, err := Bank(s.player, 75)
	s.Require().NoError(err)
	s.Equal(75, banked.BiggestBank)
}

func (s *BankingTestSuite) TestBank_AlreadyBanked() {
	banked, err := Bank(s.player, 10)
	s.Require().NoError(err)

	again, err := Bank(banked, 10)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrAlreadyBanked))
	s.Equal(banked.TotalScore, again.TotalScore)
	s.Equal(banked.BanksCount, again.BanksCount)
}

func (s *BankingTestSuite) TestBank_InvalidAmount() {
	for _, pot := range []int{0, -1} {
		_, err := Bank(s.player, pot)
		s.Require().Error(err)
		s.True(errors.Is(err, ErrInvalidAmount))
	}
}

func (s *BankingTestSuite) TestUpdateStreak() {
	up := UpdateStreak(s.player, true)
	s.Equal(2, up.StreakCount)

	reset := UpdateStreak(up, false)
	s.Equal(0, reset.StreakCount)
	s.Equal(2, up.StreakCount)
}
