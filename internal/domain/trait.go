package domain

import "time"

// Trait is a named quality students are evaluated on (e.g. "Fluency").
type Trait struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
