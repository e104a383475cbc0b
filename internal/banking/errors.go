package banking

// BankingError is a custom error type for banking errors
type BankingError string

// Error implements the error interface
func (e BankingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrAlreadyBanked BankingError = "player has already banked this round"
	ErrInvalidAmount BankingError = "bank total must be positive"
)
