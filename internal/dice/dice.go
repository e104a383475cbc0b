package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/bank/internal/dice Roller

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/KirkDiggler/bank/internal/models"
)

// Die faces
const (
	MinFace = 1
	MaxFace = 6
)

// Roller rolls a single die
type Roller interface {
	Roll(sides int) int
}

// RandomRoller provides dice rolling functionality
type RandomRoller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *RandomRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &RandomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *RandomRoller) Roll(sides int) int {
	if sides < 1 {
		sides = MaxFace
	}
	return r.random.Intn(sides) + 1
}

// RollPair rolls two six-sided dice and classifies the result
func RollPair(r Roller) models.Roll {
	die1 := clampFace(r.Roll(MaxFace))
	die2 := clampFace(r.Roll(MaxFace))

	return models.Roll{
		Die1:      die1,
		Die2:      die2,
		Sum:       die1 + die2,
		IsDoubles: die1 == die2,
	}
}

// Classify validates a die pair and returns its sum and doubles flag
func Classify(die1, die2 int) (models.Roll, error) {
	if !validFace(die1) || !validFace(die2) {
		return models.Roll{}, fmt.Errorf("%w: %d, %d must be between %d and %d",
			ErrInvalidDice, die1, die2, MinFace, MaxFace)
	}

	return models.Roll{
		Die1:      die1,
		Die2:      die2,
		Sum:       die1 + die2,
		IsDoubles: die1 == die2,
	}, nil
}

// nonDoublesPairs maps a sum to a fixed die pair. Only the sum and the doubles
// flag matter to scoring, so any fixed pair will do.
var nonDoublesPairs = map[int][2]int{
	2:  {1, 1},
	3:  {1, 2},
	4:  {1, 3},
	5:  {2, 3},
	6:  {2, 4},
	7:  {3, 4},
	8:  {3, 5},
	9:  {4, 5},
	10: {4, 6},
	11: {5, 6},
	12: {6, 6},
}

// PairForSum converts a "sum + doubles" entry into a die pair.
// Sums 2 and 12 can only be rolled as doubles, so they map to doubles either way.
func PairForSum(sum int, isDoubles bool) (int, int, error) {
	if sum < 2*MinFace || sum > 2*MaxFace {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidSum, sum)
	}

	if isDoubles {
		if sum%2 != 0 {
			return 0, 0, fmt.Errorf("%w: got %d", ErrOddDoubles, sum)
		}
		return sum / 2, sum / 2, nil
	}

	pair := nonDoublesPairs[sum]
	return pair[0], pair[1], nil
}

func validFace(v int) bool {
	return v >= MinFace && v <= MaxFace
}

func clampFace(v int) int {
	if v < MinFace {
		return MinFace
	}
	if v > MaxFace {
		return MaxFace
	}
	return v
}
