package domain

import "time"

// Plan is a subscription plan students can be enrolled on.
type Plan struct {
	ID             int64
	Name           string
	Description    string
	PriceCents     int64
	LessonsPerWeek int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
