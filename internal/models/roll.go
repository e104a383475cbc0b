package models

// Roll is a classified two-die roll
type Roll struct {
	// Die1 is the value of the first die
	Die1 int `json:"die1"`

	// Die2 is the value of the second die
	Die2 int `json:"die2"`

	// Sum is Die1 + Die2
	Sum int `json:"sum"`

	// IsDoubles is true if both dice show the same value
	IsDoubles bool `json:"isDoubles"`
}

// IsSeven returns true if the roll adds up to seven
func (r Roll) IsSeven() bool {
	return r.Sum == 7
}
