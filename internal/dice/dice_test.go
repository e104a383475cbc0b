package dice

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/bank/internal/dice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockRoller *mocks.MockRoller
}

func (s *DiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoller = mocks.NewMockRoller(s.mockCtrl)
}

func (s *DiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiceTestSuite(t *testing.T) {
	suite.Run(t, new(DiceTestSuite))
}

func (s *DiceTestSuite) TestClassify_AllValidPairs() {
	for die1 := MinFace; die1 <= MaxFace; die1++ {
		for die2 := MinFace; die2 <= MaxFace; die2++ {
			roll, err := Classify(die1, die2)
			s.Require().NoError(err)
			s.Equal(die1+die2, roll.Sum)
			s.Equal(die1 == die2, roll.IsDoubles)
			s.Equal(die1, roll.Die1)
			s.Equal(die2, roll.Die2)
		}
	}
}

func (s *DiceTestSuite) TestClassify_OutOfRange() {
	cases := [][2]int{{0, 3}, {3, 0}, {7, 1}, {1, 7}, {-1, -1}}
	for _, c := range cases {
		_, err := Classify(c[0], c[1])
		s.Require().Error(err)
		s.True(errors.Is(err, ErrInvalidDice), "pair %v", c)
	}
}

func (s *DiceTestSuite) TestPairForSum_NonDoubles() {
	for sum := 2; sum <= 12; sum++ {
		die1, die2, err := PairForSum(sum, false)
		s.Require().NoError(err)
		s.Equal(sum, die1+die2)

		roll, err := Classify(die1, die2)
		s.Require().NoError(err)
		s.Equal(sum, roll.Sum)

		// 2 and 12 are only reachable as doubles
		if sum != 2 && sum != 12 {
			s.False(roll.IsDoubles, "sum %d", sum)
		}
	}
}

func (s *DiceTestSuite) TestPairForSum_Doubles() {
	die1, die2, err := PairForSum(8, true)
	s.Require().NoError(err)
	s.Equal(4, die1)
	s.Equal(4, die2)

	_, _, err = PairForSum(7, true)
	s.True(errors.Is(err, ErrOddDoubles))
}

func (s *DiceTestSuite) TestPairForSum_OutOfRange() {
	_, _, err := PairForSum(1, false)
	s.True(errors.Is(err, ErrInvalidSum))

	_, _, err = PairForSum(13, true)
	s.True(errors.Is(err, ErrInvalidSum))
}

func (s *DiceTestSuite) TestRollPair() {
	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(MaxFace).Return(3),
		s.mockRoller.EXPECT().Roll(MaxFace).Return(3),
	)

	roll := RollPair(s.mockRoller)
	s.Equal(6, roll.Sum)
	s.True(roll.IsDoubles)
}

func (s *DiceTestSuite) TestRollPair_ClampsBadFaces() {
	gomock.InOrder(
		s.mockRoller.EXPECT().Roll(MaxFace).Return(0),
		s.mockRoller.EXPECT().Roll(MaxFace).Return(9),
	)

	roll := RollPair(s.mockRoller)
	s.Equal(MinFace, roll.Die1)
	s.Equal(MaxFace, roll.Die2)
}

func (s *DiceTestSuite) TestRandomRoller_SeededIsDeterministic() {
	a := New(&Config{Seed: 42})
	b := New(&Config{Seed: 42})

	for i := 0; i < 50; i++ {
		v := a.Roll(MaxFace)
		s.Equal(v, b.Roll(MaxFace))
		s.GreaterOrEqual(v, MinFace)
		s.LessOrEqual(v, MaxFace)
	}
}
