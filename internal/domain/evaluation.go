package domain

import "time"

// Evaluation scores a student on a trait, integer 0-10.
type Evaluation struct {
	ID        int64
	StudentID int64
	TraitID   int64
	Score     int
	Notes     string
	CreatedAt time.Time
}
