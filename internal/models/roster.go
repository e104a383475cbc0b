package models

import (
	"time"
)

// Roster is the list of player names last used at a table
type Roster struct {
	// TableID is the table (Discord channel or CLI table) the roster belongs to
	TableID string

	// PlayerNames in turn order
	PlayerNames []string

	// UpdatedAt is when the roster was last saved
	UpdatedAt time.Time
}
