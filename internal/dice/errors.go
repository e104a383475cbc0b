package dice

// DiceError is a custom error type for dice errors
type DiceError string

// Error implements the error interface
func (e DiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidDice DiceError = "dice values must be between 1 and 6"
	ErrInvalidSum  DiceError = "dice sum must be between 2 and 12"
	ErrOddDoubles  DiceError = "doubles must have an even sum"
)
